package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/dmitrijs2005/tasktracker/internal/apperr"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
)

// Password bounds; bcrypt refuses input past 72 bytes, so the upper bound is
// in bytes rather than characters.
const (
	minUsernameLen   = 3
	minPasswordLen   = 4
	maxPasswordBytes = 72
)

var passwordTooLong = validation.Length(0, maxPasswordBytes).
	Error("must be no more than " + strconv.Itoa(maxPasswordBytes) + " bytes")

type registerRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (r *registerRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, validation.Length(minUsernameLen, 0)),
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLen, 0), passwordTooLong),
	)
}

type loginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (r *loginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type createTaskRequest struct {
	Description *string `json:"description"`
}

func (r *createTaskRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Description, validation.Required),
	)
}

type updateTaskRequest struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (r *updateTaskRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Description, validation.NilOrNotEmpty),
	)
}

// decode reads the JSON body into dst and validates it. Fields are decoded
// one at a time so that a type error in one field does not hide problems in
// the others; every problem is reported per field as VALIDATION_ERROR.
func decode(c echo.Context, dst validation.Validatable) error {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return bodyError(err)
	}

	fields := make(map[string][]string)
	for name, value := range raw {
		one, err := json.Marshal(map[string]json.RawMessage{name: value})
		if err != nil {
			return apperr.Internal(err)
		}
		if err := json.Unmarshal(one, dst); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return apperr.Internal(err)
			}
			field := typeErr.Field
			if field == "" {
				field = name
			}
			fields[field] = []string{"must be a " + jsonKind(typeErr.Type.Kind().String())}
		}
	}

	if err := dst.Validate(); err != nil {
		var verrs validation.Errors
		if !errors.As(err, &verrs) {
			return apperr.Internal(err)
		}
		for field, fe := range verrs {
			// A field with the wrong JSON type already has its message.
			if _, ok := fields[field]; ok {
				continue
			}
			fields[field] = append(fields[field], fe.Error())
		}
	}

	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

func bodyError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	if errors.Is(err, io.EOF) {
		return apperr.Validation(map[string][]string{"body": {"cannot be blank"}})
	}
	return apperr.Validation(map[string][]string{"body": {"must be a valid JSON object"}})
}

func jsonKind(goKind string) string {
	switch goKind {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "int", "int64", "float64":
		return "number"
	}
	return "JSON " + goKind
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.Validation(map[string][]string{"id": {"must be an integer"}})
	}
	return id, nil
}
