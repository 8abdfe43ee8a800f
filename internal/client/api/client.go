package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Task struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TaskUpdate is a partial update; nil fields are not sent.
type TaskUpdate struct {
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type accessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken replaces the bearer token; an empty token logs out.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil, false)
}

func (c *Client) Register(ctx context.Context, username, password string) (*User, error) {
	u := &User{}
	if err := c.do(ctx, http.MethodPost, "/register", credentials{username, password}, u, false); err != nil {
		return nil, err
	}
	return u, nil
}

// Login authenticates and keeps the issued token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	tok := &accessToken{}
	if err := c.do(ctx, http.MethodPost, "/login", credentials{username, password}, tok, false); err != nil {
		return err
	}
	c.SetToken(tok.AccessToken)
	return nil
}

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks, true); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, description string) (*Task, error) {
	t := &Task{}
	body := map[string]string{"description": description}
	if err := c.do(ctx, http.MethodPost, "/tasks", body, t, true); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (*Task, error) {
	t := &Task{}
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, t, true); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, upd TaskUpdate) (*Task, error) {
	t := &Task{}
	if err := c.do(ctx, http.MethodPut, taskPath(id), upd, t, true); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, true)
}

func taskPath(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10)
}

// do sends in as JSON, decodes a 2xx body into out and turns anything else
// into *Error.
func (c *Client) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := c.Token()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var envelope struct {
		Error *Error `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == nil {
		return &Error{Status: resp.StatusCode, Code: "HTTP_ERROR", Message: http.StatusText(resp.StatusCode)}
	}
	envelope.Error.Status = resp.StatusCode
	return envelope.Error
}
