package apperr

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Stable wire codes.
const (
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTaskNotFound       = "TASK_NOT_FOUND"
	CodeTaskForbidden      = "TASK_FORBIDDEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeValidation         = "VALIDATION_ERROR"
	CodeDatabase           = "DATABASE_ERROR"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeHTTP               = "HTTP_ERROR"
)

// Messages of 5xx responses never carry internals.
const (
	msgDatabase = "Something went wrong. Try again later."
	msgInternal = "Unexpected error. Try again later."
)

func UserNotFound(username string) *goerrors.Error {
	return goerrors.New(fmt.Sprintf("User '%s' not found", username), goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(CodeUserNotFound).
		WithMetadata(map[string]any{"username": username})
}

func UsernameTaken(username string) *goerrors.Error {
	return goerrors.New(fmt.Sprintf("Username '%s' already taken", username), goerrors.CategoryConflict).
		WithCode(http.StatusConflict).
		WithTextCode(CodeUsernameTaken)
}

// InvalidCredentials is deliberately identical for unknown users and wrong
// passwords.
func InvalidCredentials() *goerrors.Error {
	return goerrors.New("Invalid username or password", goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(CodeInvalidCredentials)
}

func TaskNotFound(taskID int64) *goerrors.Error {
	return goerrors.New(fmt.Sprintf("Task %d not found", taskID), goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(CodeTaskNotFound).
		WithMetadata(map[string]any{"task_id": taskID})
}

func TaskForbidden() *goerrors.Error {
	return goerrors.New("You are not allowed to access this task", goerrors.CategoryAuthz).
		WithCode(http.StatusForbidden).
		WithTextCode(CodeTaskForbidden)
}

// InvalidToken covers missing, malformed, expired and orphaned tokens. cause
// is kept for logs only.
func InvalidToken(cause error) *goerrors.Error {
	e := goerrors.New("Could not validate credentials", goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(CodeInvalidToken)
	e.Source = cause
	return e
}

// Validation builds a 422 from a field -> messages map.
func Validation(fields map[string][]string) *goerrors.Error {
	return goerrors.NewValidationFromGroups("Invalid input.", fields).
		WithCode(http.StatusUnprocessableEntity).
		WithTextCode(CodeValidation)
}

// Database wraps a storage failure.
func Database(cause error) *goerrors.Error {
	e := goerrors.New(msgDatabase, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(CodeDatabase).
		WithSeverity(goerrors.SeverityCritical)
	e.Source = cause
	return e
}

// Internal wraps anything unclassified.
func Internal(cause error) *goerrors.Error {
	e := goerrors.New(msgInternal, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(CodeInternal).
		WithSeverity(goerrors.SeverityCritical)
	e.Source = cause
	return e
}

// HTTP covers transport-level rejections (unknown route, wrong method,
// oversized body) that never reach a domain service.
func HTTP(status int, message string) *goerrors.Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return goerrors.New(message, goerrors.HTTPStatusToCategory(status)).
		WithCode(status).
		WithTextCode(CodeHTTP)
}

// CodeOf returns the wire code carried by err, or "" when err is not one of
// ours.
func CodeOf(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode
	}
	return ""
}
