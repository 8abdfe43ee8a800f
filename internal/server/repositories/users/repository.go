// Package users stores user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in its ID. A taken username yields
	// common.ErrAlreadyExists and never a second row.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// Delete removes the user; its tasks go with it through the FK cascade.
	Delete(ctx context.Context, id int64) error
}
