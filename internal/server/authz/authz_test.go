package authz

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/apperr"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeVerifier struct {
	subject string
	err     error
}

func (f fakeVerifier) Verify(string) (string, error) { return f.subject, f.err }

type fakeUsersRepo struct {
	byLogin map[string]*models.User
	err     error
	users.Repository
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byLogin[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeTasksRepo struct {
	byID map[int64]*models.Task
	err  error
	tasks.Repository
}

func (f *fakeTasksRepo) GetByID(_ context.Context, id int64) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTasksRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository               { return m.u }
func (m *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository               { return m.t }

var (
	alice = &models.User{ID: 1, UserName: "alice"}
	bob   = &models.User{ID: 2, UserName: "bob"}
)

func newAuthorizer(v TokenVerifier, rm *fakeRepoManager) *Authorizer {
	return NewAuthorizer(nil, rm, v, logging.Nop())
}

func TestResolveIdentity(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{byLogin: map[string]*models.User{"alice": alice}}}

	tests := []struct {
		name     string
		verifier fakeVerifier
		repoErr  error
		wantUser *models.User
		wantCode string
	}{
		{name: "valid token", verifier: fakeVerifier{subject: "alice"}, wantUser: alice},
		{name: "bad token", verifier: fakeVerifier{err: common.ErrInvalidToken}, wantCode: apperr.CodeInvalidToken},
		{name: "user deleted", verifier: fakeVerifier{subject: "ghost"}, wantCode: apperr.CodeInvalidToken},
		{name: "storage down", verifier: fakeVerifier{subject: "alice"}, repoErr: errors.New("db error: down"), wantCode: apperr.CodeDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm.u.err = tt.repoErr
			a := newAuthorizer(tt.verifier, rm)

			got, err := a.ResolveIdentity(context.Background(), "token")
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, tt.wantCode, apperr.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, got)
		})
	}
}

func TestAuthorizeTaskAccess(t *testing.T) {
	owned := &models.Task{ID: 10, UserID: alice.ID, Description: "mine"}
	rm := &fakeRepoManager{t: &fakeTasksRepo{byID: map[int64]*models.Task{10: owned}}}
	a := newAuthorizer(fakeVerifier{}, rm)
	ctx := context.Background()

	got, err := a.AuthorizeTaskAccess(ctx, nil, alice, 10)
	require.NoError(t, err)
	assert.Equal(t, owned, got)

	_, err = a.AuthorizeTaskAccess(ctx, nil, bob, 10)
	assert.Equal(t, apperr.CodeTaskForbidden, apperr.CodeOf(err))
}

func TestAuthorizeTaskAccess_ExistenceBeforeOwnership(t *testing.T) {
	rm := &fakeRepoManager{t: &fakeTasksRepo{byID: map[int64]*models.Task{}}}
	a := newAuthorizer(fakeVerifier{}, rm)

	// Nobody owns task 999, so every caller gets the same answer.
	for _, u := range []*models.User{alice, bob} {
		_, err := a.AuthorizeTaskAccess(context.Background(), nil, u, 999)
		assert.Equal(t, apperr.CodeTaskNotFound, apperr.CodeOf(err), u.UserName)
	}
}

func TestAuthorizeTaskAccess_StorageError(t *testing.T) {
	rm := &fakeRepoManager{t: &fakeTasksRepo{err: errors.New("db error: gone")}}
	a := newAuthorizer(fakeVerifier{}, rm)

	_, err := a.AuthorizeTaskAccess(context.Background(), nil, alice, 1)
	assert.Equal(t, apperr.CodeDatabase, apperr.CodeOf(err))
}
