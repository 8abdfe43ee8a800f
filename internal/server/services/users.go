package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/tasktracker/internal/apperr"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/cryptox"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
)

// TokenIssuer mints an access token for a username.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// AccessToken is what a successful login hands back to the client.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserService provides account operations:
//   - Register: idempotent account creation
//   - Authenticate / Login: credential checks and token issuing
//   - GetByUsername / Delete: administrative lookups and removal
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.PasswordHasher
	tokens      TokenIssuer
	logger      logging.Logger
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.PasswordHasher, tokens TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "users"),
	}
}

// Register creates username with password. Registering an existing
// username with its correct password returns the existing account
// unchanged; with any other password it fails with USERNAME_TAKEN. A
// concurrent registration that wins the insert race is resolved the same
// way.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	existing, err := repo.GetUserByLogin(ctx, username)
	switch {
	case err == nil:
		return s.matchExisting(ctx, existing, password)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, apperr.Database(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user, err := repo.Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		if !errors.Is(err, common.ErrAlreadyExists) {
			return nil, apperr.Database(err)
		}
		existing, err := repo.GetUserByLogin(ctx, username)
		if err != nil {
			return nil, apperr.Database(err)
		}
		return s.matchExisting(ctx, existing, password)
	}

	s.logger.Info(ctx, "user registered", "user", user.UserName, "user_id", user.ID)
	return user, nil
}

func (s *UserService) matchExisting(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug(ctx, "repeated registration", "user", user.UserName)
		return user, nil
	}
	s.logger.Warn(ctx, "username taken", "user", user.UserName)
	return nil, apperr.UsernameTaken(user.UserName)
}

// Authenticate checks the credentials. Unknown users and wrong passwords
// produce the same INVALID_CREDENTIALS error after comparable work.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyDummy(password)
			s.logger.Warn(ctx, "login failed", "user", username)
			return nil, apperr.InvalidCredentials()
		}
		return nil, apperr.Database(err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Warn(ctx, "login failed", "user", username)
		return nil, apperr.InvalidCredentials()
	}

	return user, nil
}

// Login authenticates and issues a bearer token for the user.
func (s *UserService) Login(ctx context.Context, username, password string) (*AccessToken, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.UserName)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.logger.Info(ctx, "user logged in", "user", user.UserName)
	return &AccessToken{AccessToken: token, TokenType: common.TokenType}, nil
}

// GetByUsername returns the user or USER_NOT_FOUND.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, apperr.UserNotFound(username)
		}
		return nil, apperr.Database(err)
	}
	return user, nil
}

// Delete removes the account and, through the foreign key cascade, all of
// its tasks. Tokens already issued for it stop resolving.
func (s *UserService) Delete(ctx context.Context, username string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetUserByLogin(ctx, username)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return apperr.UserNotFound(username)
			}
			return err
		}

		if err := repo.Delete(ctx, user.ID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return apperr.UserNotFound(username)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domainErr(err)
	}

	s.logger.Info(ctx, "user deleted", "user", username)
	return nil
}
