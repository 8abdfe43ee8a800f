package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/tasktracker/internal/apperr"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
)

// TaskAccessChecker decides whether user may touch a task.
type TaskAccessChecker interface {
	AuthorizeTaskAccess(ctx context.Context, db dbx.DBTX, user *models.User, taskID int64) (*models.Task, error)
}

// TaskPatch is a partial update. Nil fields are left as they are.
type TaskPatch struct {
	Description *string
	Completed   *bool
}

func (p TaskPatch) empty() bool {
	return p.Description == nil && p.Completed == nil
}

// TaskService manages tasks on behalf of their owner. Operations on a
// single task go through the access checker first.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	access      TaskAccessChecker
	logger      logging.Logger
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, access TaskAccessChecker, logger logging.Logger) *TaskService {
	return &TaskService{
		db:          db,
		repomanager: m,
		access:      access,
		logger:      logger.With("module", "tasks"),
	}
}

var errBlankDescription = map[string][]string{"description": {"cannot be blank"}}

func (s *TaskService) Create(ctx context.Context, owner *models.User, description string) (*models.Task, error) {
	if description == "" {
		return nil, apperr.Validation(errBlankDescription)
	}

	task, err := s.repomanager.Tasks(s.db).Create(ctx, &models.Task{UserID: owner.ID, Description: description})
	if err != nil {
		return nil, apperr.Database(err)
	}

	s.logger.Info(ctx, "task created", "user", owner.UserName, "task_id", task.ID)
	return task, nil
}

// List returns the owner's tasks, oldest first.
func (s *TaskService) List(ctx context.Context, owner *models.User) ([]*models.Task, error) {
	tasks, err := s.repomanager.Tasks(s.db).ListByUser(ctx, owner.ID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, owner *models.User, id int64) (*models.Task, error) {
	return s.access.AuthorizeTaskAccess(ctx, s.db, owner, id)
}

// Update applies patch to task id. The access check and the write run in
// one transaction.
func (s *TaskService) Update(ctx context.Context, owner *models.User, id int64, patch TaskPatch) (*models.Task, error) {
	if patch.Description != nil && *patch.Description == "" {
		return nil, apperr.Validation(errBlankDescription)
	}

	var updated *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		task, err := s.access.AuthorizeTaskAccess(ctx, tx, owner, id)
		if err != nil {
			return err
		}
		if patch.empty() {
			updated = task
			return nil
		}

		updated, err = s.repomanager.Tasks(tx).Update(ctx, id, owner.ID, patch.Description, patch.Completed)
		if errors.Is(err, common.ErrorNotFound) {
			return apperr.TaskNotFound(id)
		}
		return err
	})
	if err != nil {
		return nil, domainErr(err)
	}

	s.logger.Info(ctx, "task updated", "user", owner.UserName, "task_id", id)
	return updated, nil
}

// Delete removes task id. Deleting it again yields TASK_NOT_FOUND.
func (s *TaskService) Delete(ctx context.Context, owner *models.User, id int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.access.AuthorizeTaskAccess(ctx, tx, owner, id); err != nil {
			return err
		}

		err := s.repomanager.Tasks(tx).Delete(ctx, id, owner.ID)
		if errors.Is(err, common.ErrorNotFound) {
			return apperr.TaskNotFound(id)
		}
		return err
	})
	if err != nil {
		return domainErr(err)
	}

	s.logger.Info(ctx, "task deleted", "user", owner.UserName, "task_id", id)
	return nil
}
