// Package tasks stores to-do items. Every row belongs to one user.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// ListByUser returns the user's tasks in insertion order. The slice is
	// empty, not nil, when there are none.
	ListByUser(ctx context.Context, userID int64) ([]*models.Task, error)
	// GetByID loads a task regardless of its owner.
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	// Update applies the non-nil fields to the task if it belongs to userID.
	Update(ctx context.Context, id, userID int64, description *string, completed *bool) (*models.Task, error)
	// Delete removes the task if it belongs to userID.
	Delete(ctx context.Context, id, userID int64) error
}
