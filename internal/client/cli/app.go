package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/tasktracker/internal/client/api"
	"github.com/dmitrijs2005/tasktracker/internal/client/config"
)

// API is the subset of *api.Client the commands use.
type API interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, password string) (*api.User, error)
	Login(ctx context.Context, username, password string) error
	SetToken(token string)
	ListTasks(ctx context.Context) ([]api.Task, error)
	CreateTask(ctx context.Context, description string) (*api.Task, error)
	UpdateTask(ctx context.Context, id int64, upd api.TaskUpdate) (*api.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type App struct {
	config   *config.Config
	api      API
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Run greets the user, warns when the server cannot be reached and then
// serves the REPL until EOF or "exit".
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to the task tracker CLI (type 'help' for commands)")
	if err := a.api.Ping(ctx); err != nil {
		printlnFn("Warning:", err.Error())
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

// report prints err to the user and returns it unchanged.
func report(err error) error {
	if err != nil {
		printlnFn("Error:", err.Error())
	}
	return err
}
