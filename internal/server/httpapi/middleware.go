package httpapi

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/apperr"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/labstack/echo/v4"
)

const userKey = "user"

var (
	errMissingBearer = errors.New("missing bearer token")
	errBadScheme     = errors.New("authorization scheme is not bearer")
)

// collapseSlashes rewrites "//register" and "/tasks//1" to their single
// slash forms before routing.
func collapseSlashes(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u := c.Request().URL
		u.Path = squeeze(u.Path)
		if u.RawPath != "" {
			u.RawPath = squeeze(u.RawPath)
		}
		return next(c)
	}
}

func squeeze(p string) string {
	if !strings.Contains(p, "//") {
		return p
	}
	var b strings.Builder
	b.Grow(len(p))
	prev := byte(0)
	for i := 0; i < len(p); i++ {
		if p[i] == '/' && prev == '/' {
			continue
		}
		prev = p[i]
		b.WriteByte(p[i])
	}
	return b.String()
}

// bearerToken extracts the credential from an Authorization header value.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingBearer
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", errBadScheme
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingBearer
	}
	return token, nil
}

// requireUser resolves the caller for protected routes and stores the user
// in the echo context.
func (s *HTTPServer) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c.Request().Header.Get(common.AuthorizationHeaderName))
		if err != nil {
			return apperr.InvalidToken(err)
		}

		user, err := s.identity.ResolveIdentity(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(userKey, user)
		return next(c)
	}
}

func currentUser(c echo.Context) *models.User {
	u, _ := c.Get(userKey).(*models.User)
	return u
}
