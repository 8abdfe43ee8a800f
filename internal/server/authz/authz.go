// Package authz is the authorization core. It turns a bearer credential
// into a user and decides whether that user may touch a given task.
//
// The task check always establishes existence before ownership: a missing
// task is TASK_NOT_FOUND for every caller, and only an existing task owned
// by someone else is TASK_FORBIDDEN.
package authz

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

// TokenVerifier returns the subject of a valid token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type Authorizer struct {
	db          *sql.DB
	repoManager repomanager.RepositoryManager
	tokens      TokenVerifier
	logger      logging.Logger
}

func NewAuthorizer(db *sql.DB, rm repomanager.RepositoryManager, tokens TokenVerifier, logger logging.Logger) *Authorizer {
	return &Authorizer{
		db:          db,
		repoManager: rm,
		tokens:      tokens,
		logger:      logger.With("module", "authz"),
	}
}

// ResolveIdentity verifies token and loads the user it names. A token for a
// user that no longer exists is rejected exactly like a forged one.
func (a *Authorizer) ResolveIdentity(ctx context.Context, token string) (*models.User, error) {
	subject, err := a.tokens.Verify(token)
	if err != nil {
		a.logger.Warn(ctx, "token rejected", "error", err)
		return nil, apperr.InvalidToken(err)
	}

	user, err := a.repoManager.Users(a.db).GetUserByLogin(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.logger.Warn(ctx, "token subject no longer exists", "user", subject)
			return nil, apperr.InvalidToken(err)
		}
		return nil, apperr.Database(err)
	}

	return user, nil
}

// AuthorizeTaskAccess loads task taskID through db and returns it if user
// owns it. Pass a transaction handle to run the check in the same
// transaction as the mutation that follows.
func (a *Authorizer) AuthorizeTaskAccess(ctx context.Context, db dbx.DBTX, user *models.User, taskID int64) (*models.Task, error) {
	task, err := a.repoManager.Tasks(db).GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, apperr.TaskNotFound(taskID)
		}
		return nil, apperr.Database(err)
	}

	if task.UserID != user.ID {
		a.logger.Warn(ctx, "task access denied", "user", user.UserName, "task_id", taskID)
		return nil, apperr.TaskForbidden()
	}

	return task, nil
}
