package apperr

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Body is the uniform error envelope written for every failed request.
type Body struct {
	Error Detail `json:"error"`
}

type Detail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string]any      `json:"details,omitempty"`
	Fields  map[string][]string `json:"fields,omitempty"`
	ErrorID string              `json:"errorId,omitempty"`
}

// Resolution is the outcome of mapping an error: what to send and what to
// log.
type Resolution struct {
	Status int
	Header http.Header
	Body   Body
	// Err is the envelope the body was built from, including the source
	// error for logs.
	Err *goerrors.Error
}

// Internal reports whether the failure is a server-side one that must be
// logged under its correlation id.
func (r Resolution) Internal() bool {
	return r.Status >= http.StatusInternalServerError
}

// NewErrorID generates correlation ids. It is a variable so tests can pin it.
var NewErrorID = uuid.NewString

// Resolve maps err to its wire representation. Errors that do not carry a
// status and code of their own are classified as INTERNAL_SERVER_ERROR.
func Resolve(err error) Resolution {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Code == 0 || rich.TextCode == "" {
		rich = Internal(err)
	}

	res := Resolution{
		Status: rich.Code,
		Header: http.Header{},
		Body:   Body{Error: Detail{Code: rich.TextCode, Message: rich.Message}},
		Err:    rich,
	}

	if res.Internal() {
		res.Body.Error.ErrorID = NewErrorID()
		return res
	}

	if fields := fieldMap(rich.ValidationErrors); len(fields) > 0 {
		res.Body.Error.Fields = fields
	}
	if len(rich.Metadata) > 0 {
		res.Body.Error.Details = rich.Metadata
	}
	if rich.TextCode == CodeInvalidToken {
		res.Header.Set("WWW-Authenticate", "Bearer")
	}

	return res
}

// fieldMap regroups field errors by field, keeping the message order within
// each field.
func fieldMap(errs goerrors.ValidationErrors) map[string][]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, fe := range errs {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}
