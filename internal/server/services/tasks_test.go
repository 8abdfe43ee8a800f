package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/apperr"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func registerPair(t *testing.T, env *testEnv) (*models.User, *models.User) {
	t.Helper()
	ctx := context.Background()
	alice, err := env.users.Register(ctx, "alice", "wonderland")
	require.NoError(t, err)
	bob, err := env.users.Register(ctx, "bob", "builder")
	require.NoError(t, err)
	return alice, bob
}

func TestTasks_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	alice, bob := registerPair(t, env)
	ctx := context.Background()

	empty, err := env.tasks.List(ctx, alice)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first, err := env.tasks.Create(ctx, alice, "Buy milk")
	require.NoError(t, err)
	assert.False(t, first.Completed)
	assert.Equal(t, alice.ID, first.UserID)

	_, err = env.tasks.Create(ctx, bob, "Fix roof")
	require.NoError(t, err)
	second, err := env.tasks.Create(ctx, alice, "Walk dog")
	require.NoError(t, err)

	list, err := env.tasks.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	for _, task := range list {
		assert.Equal(t, alice.ID, task.UserID)
	}
}

func TestTasks_CreateBlank(t *testing.T) {
	env := newTestEnv(t)
	alice, _ := registerPair(t, env)

	_, err := env.tasks.Create(context.Background(), alice, "")
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestTasks_GetOwnership(t *testing.T) {
	env := newTestEnv(t)
	alice, bob := registerPair(t, env)
	ctx := context.Background()

	task, err := env.tasks.Create(ctx, alice, "Buy milk")
	require.NoError(t, err)

	got, err := env.tasks.Get(ctx, alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)

	_, err = env.tasks.Get(ctx, bob, task.ID)
	assert.Equal(t, apperr.CodeTaskForbidden, apperr.CodeOf(err))

	_, err = env.tasks.Get(ctx, alice, 999)
	assert.Equal(t, apperr.CodeTaskNotFound, apperr.CodeOf(err))
	_, err = env.tasks.Get(ctx, bob, 999)
	assert.Equal(t, apperr.CodeTaskNotFound, apperr.CodeOf(err))
}

func TestTasks_UpdatePartial(t *testing.T) {
	env := newTestEnv(t)
	alice, _ := registerPair(t, env)
	ctx := context.Background()

	task, err := env.tasks.Create(ctx, alice, "Buy milk")
	require.NoError(t, err)

	done, err := env.tasks.Update(ctx, alice, task.ID, TaskPatch{Completed: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", done.Description)
	assert.True(t, done.Completed)

	renamed, err := env.tasks.Update(ctx, alice, task.ID, TaskPatch{Description: ptr("Buy oat milk")})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", renamed.Description)
	assert.True(t, renamed.Completed, "unspecified fields keep their value")

	same, err := env.tasks.Update(ctx, alice, task.ID, TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, renamed, same)

	_, err = env.tasks.Update(ctx, alice, task.ID, TaskPatch{Description: ptr("")})
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestTasks_UpdateForeignLeavesTaskUntouched(t *testing.T) {
	env := newTestEnv(t)
	alice, bob := registerPair(t, env)
	ctx := context.Background()

	task, err := env.tasks.Create(ctx, alice, "Buy milk")
	require.NoError(t, err)

	_, err = env.tasks.Update(ctx, bob, task.ID, TaskPatch{Description: ptr("hacked"), Completed: ptr(true)})
	assert.Equal(t, apperr.CodeTaskForbidden, apperr.CodeOf(err))

	got, err := env.tasks.Get(ctx, alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)

	_, err = env.tasks.Update(ctx, bob, 12345, TaskPatch{Completed: ptr(true)})
	assert.Equal(t, apperr.CodeTaskNotFound, apperr.CodeOf(err))
}

func TestTasks_Delete(t *testing.T) {
	env := newTestEnv(t)
	alice, bob := registerPair(t, env)
	ctx := context.Background()

	task, err := env.tasks.Create(ctx, alice, "Buy milk")
	require.NoError(t, err)

	err = env.tasks.Delete(ctx, bob, task.ID)
	assert.Equal(t, apperr.CodeTaskForbidden, apperr.CodeOf(err))

	require.NoError(t, env.tasks.Delete(ctx, alice, task.ID))

	err = env.tasks.Delete(ctx, alice, task.ID)
	assert.Equal(t, apperr.CodeTaskNotFound, apperr.CodeOf(err), "delete is not idempotent")

	list, err := env.tasks.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// --- storage failures ---

type failingTasksRepo struct {
	tasks.Repository
	err error
}

func (f failingTasksRepo) Create(context.Context, *models.Task) (*models.Task, error) {
	return nil, f.err
}
func (f failingTasksRepo) ListByUser(context.Context, int64) ([]*models.Task, error) {
	return nil, f.err
}

type failingRepoManager struct {
	err error
}

func (m failingRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m failingRepoManager) Users(dbx.DBTX) users.Repository               { return nil }
func (m failingRepoManager) Tasks(dbx.DBTX) tasks.Repository {
	return failingTasksRepo{err: m.err}
}

func TestTasks_StorageFailureIsDatabaseError(t *testing.T) {
	cause := errors.New("db error: connection reset")
	s := NewTaskService(nil, failingRepoManager{err: cause}, nil, logging.Nop())
	owner := &models.User{ID: 1, UserName: "alice"}

	_, err := s.Create(context.Background(), owner, "x")
	assert.Equal(t, apperr.CodeDatabase, apperr.CodeOf(err))
	assert.NotContains(t, apperr.Resolve(err).Body.Error.Message, "connection reset", "message stays generic")
	assert.ErrorIs(t, err, cause, "cause is kept for logging")

	_, err = s.List(context.Background(), owner)
	assert.Equal(t, apperr.CodeDatabase, apperr.CodeOf(err))
}
