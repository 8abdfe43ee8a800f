// Package services contains server-side business logic: user registration
// and authentication (UserService) and owner-scoped task management
// (TaskService).
//
// Services return *goerrors.Error values built by package apperr for every
// failure, so the transport layer maps them without inspecting causes.
// Storage failures are reported as DATABASE_ERROR with the original error
// kept as the source for logging.
package services

import (
	"github.com/dmitrijs2005/tasktracker/internal/apperr"
)

// domainErr passes our own errors through and classifies anything else
// (driver errors, failed begin/commit) as a storage failure.
func domainErr(err error) error {
	if err == nil || apperr.CodeOf(err) != "" {
		return err
	}
	return apperr.Database(err)
}
