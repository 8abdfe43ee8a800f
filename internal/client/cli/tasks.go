package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/client/api"
)

var (
	errNoID   = errors.New("task id required")
	errNoText = errors.New("task text required")
)

func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		return report(api.ErrNotLoggedIn)
	}

	tasks, err := a.api.ListTasks(ctx)
	if err != nil {
		return report(err)
	}

	if len(tasks) == 0 {
		printlnFn("No tasks yet")
		return nil
	}
	for _, t := range tasks {
		printlnFn(formatTask(t))
	}
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return report(api.ErrNotLoggedIn)
	}
	text := strings.Join(args, " ")
	if text == "" {
		return report(errNoText)
	}

	t, err := a.api.CreateTask(ctx, text)
	if err != nil {
		return report(err)
	}
	printlnFn("Added", formatTask(*t))
	return nil
}

func (a *App) SetCompleted(ctx context.Context, args []string, completed bool) error {
	if !a.isLoggedIn() {
		return report(api.ErrNotLoggedIn)
	}
	id, err := parseID(args)
	if err != nil {
		return report(err)
	}

	t, err := a.api.UpdateTask(ctx, id, api.TaskUpdate{Completed: &completed})
	if err != nil {
		return report(err)
	}
	printlnFn(formatTask(*t))
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return report(api.ErrNotLoggedIn)
	}
	id, err := parseID(args)
	if err != nil {
		return report(err)
	}
	text := strings.Join(args[1:], " ")
	if text == "" {
		return report(errNoText)
	}

	t, err := a.api.UpdateTask(ctx, id, api.TaskUpdate{Description: &text})
	if err != nil {
		return report(err)
	}
	printlnFn(formatTask(*t))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return report(api.ErrNotLoggedIn)
	}
	id, err := parseID(args)
	if err != nil {
		return report(err)
	}

	if err := a.api.DeleteTask(ctx, id); err != nil {
		return report(err)
	}
	printlnFn("Deleted task", id)
	return nil
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errNoID
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}

func formatTask(t api.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] #%d %s", mark, t.ID, t.Description)
}
