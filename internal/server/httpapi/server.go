// Package httpapi is the HTTP transport of the task tracker. It routes
// requests with Echo, validates input, resolves the caller's identity for
// protected routes and renders every failure through apperr.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// UserService is the account side of the domain.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.AccessToken, error)
}

// TaskService is the owner-scoped task side of the domain.
type TaskService interface {
	Create(ctx context.Context, owner *models.User, description string) (*models.Task, error)
	List(ctx context.Context, owner *models.User) ([]*models.Task, error)
	Get(ctx context.Context, owner *models.User, id int64) (*models.Task, error)
	Update(ctx context.Context, owner *models.User, id int64, patch services.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, owner *models.User, id int64) error
}

// IdentityResolver turns a bearer token into a user.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*models.User, error)
}

// Options tunes the transport.
type Options struct {
	Address     string
	CORSOrigins []string
	// BodyLimit caps request bodies, e.g. "1M".
	BodyLimit string
}

type HTTPServer struct {
	address  string
	echo     *echo.Echo
	users    UserService
	tasks    TaskService
	identity IdentityResolver
	logger   logging.Logger
}

const shutdownTimeout = 10 * time.Second

func NewHTTPServer(opts Options, l logging.Logger, us UserService, ts TaskService, ir IdentityResolver) *HTTPServer {
	s := &HTTPServer{
		address:  opts.Address,
		echo:     echo.New(),
		users:    us,
		tasks:    ts,
		identity: ir,
		logger:   l.With("module", "http_server"),
	}

	if opts.BodyLimit == "" {
		opts.BodyLimit = "1M"
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Pre(collapseSlashes)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogStatus:     true,
		LogLatency:    true,
		HandleError:   true,
		LogValuesFunc: s.logRequest,
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit(opts.BodyLimit))

	s.routes()
	return s
}

func (s *HTTPServer) routes() {
	e := s.echo

	e.GET("/", s.root)
	e.POST("/register", s.register)
	e.POST("/login", s.login)

	// Route-level rather than group middleware, so unknown paths and methods
	// under /tasks still answer 404/405 instead of 401.
	auth := s.requireUser
	e.GET("/tasks", s.listTasks, auth)
	e.POST("/tasks", s.createTask, auth)
	e.GET("/tasks/:id", s.getTask, auth)
	e.PUT("/tasks/:id", s.updateTask, auth)
	e.DELETE("/tasks/:id", s.deleteTask, auth)
}

// Handler exposes the router, mainly for httptest.
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

func (s *HTTPServer) logRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	s.logger.Info(c.Request().Context(), "request",
		"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
	return nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.echo.Start(s.address)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
