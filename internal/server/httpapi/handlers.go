package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/labstack/echo/v4"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s *HTTPServer) root(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Task API is running"})
}

func (s *HTTPServer) register(c echo.Context) error {
	req := &registerRequest{}
	if err := decode(c, req); err != nil {
		return err
	}

	user, err := s.users.Register(c.Request().Context(), *req.Username, *req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (s *HTTPServer) login(c echo.Context) error {
	req := &loginRequest{}
	if err := decode(c, req); err != nil {
		return err
	}

	token, err := s.users.Login(c.Request().Context(), *req.Username, *req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, token)
}

func (s *HTTPServer) listTasks(c echo.Context) error {
	tasks, err := s.tasks.List(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *HTTPServer) createTask(c echo.Context) error {
	req := &createTaskRequest{}
	if err := decode(c, req); err != nil {
		return err
	}

	task, err := s.tasks.Create(c.Request().Context(), currentUser(c), *req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (s *HTTPServer) getTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := s.tasks.Get(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (s *HTTPServer) updateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	req := &updateTaskRequest{}
	if err := decode(c, req); err != nil {
		return err
	}

	task, err := s.tasks.Update(c.Request().Context(), currentUser(c), id, services.TaskPatch{
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (s *HTTPServer) deleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}
