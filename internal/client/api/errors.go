package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnavailable signals that the server could not be reached.
var ErrUnavailable = errors.New("server unavailable")

// ErrNotLoggedIn is returned by task calls made before Login.
var ErrNotLoggedIn = errors.New("not logged in")

// Error is a failure reported by the server in its error envelope.
type Error struct {
	Status  int                 `json:"-"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string]any      `json:"details,omitempty"`
	Fields  map[string][]string `json:"fields,omitempty"`
	ErrorID string              `json:"errorId,omitempty"`
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %s: %s", name, strings.Join(e.Fields[name], "; "))
	}

	if e.ErrorID != "" {
		fmt.Fprintf(&b, " (error id %s)", e.ErrorID)
	}
	return b.String()
}

// IsCode reports whether err is a server error with the given code.
func IsCode(err error, code string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}
