package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/cryptox"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/authz"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeIssuer struct {
	err error
}

func (f fakeIssuer) Issue(subject string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + subject, nil
}

type testEnv struct {
	db    *sql.DB
	rm    *repomanager.SQLRepositoryManager
	users *UserService
	tasks *TaskService
}

// newTestEnv opens a private in-memory SQLite database with the real
// migrations applied.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, dialect, err := dbx.Open("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rm := repomanager.NewSQLRepositoryManager(dialect)
	require.NoError(t, rm.RunMigrations(context.Background(), db))

	hasher, err := cryptox.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	az := authz.NewAuthorizer(db, rm, nil, logging.Nop())

	return &testEnv{
		db:    db,
		rm:    rm,
		users: NewUserService(db, rm, hasher, fakeIssuer{}, logging.Nop()),
		tasks: NewTaskService(db, rm, az, logging.Nop()),
	}
}
