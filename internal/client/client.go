package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nhle/todolist/internal/model"
)

// Client is a thin HTTP client for the todolist API. It handles JSON
// marshaling and maps the server's error bodies onto Go errors. Nothing
// is retried; a failed request is reported to the caller as-is.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// errorBody matches both server error shapes: 404 responses carry
// "message", 500 responses carry "error".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// New creates a new API client. The baseURL should be the root URL of
// the server (e.g., http://localhost:3001).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListTodos fetches every todo from the server.
func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, "/api/all-todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo sends a new todo to the server. The id is generated by the
// caller; the server echoes back the inserted record.
func (c *Client) CreateTodo(ctx context.Context, id, text string) (*model.Todo, error) {
	body := map[string]string{"id": id, "data": text}
	var todo model.Todo
	if err := c.do(ctx, http.MethodPost, "/api/new-todos", body, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo applies a partial update to the todo with the given id and
// returns the row after the update.
func (c *Client) UpdateTodo(ctx context.Context, id string, patch model.TodoPatch) (*model.Todo, error) {
	var todo model.Todo
	if err := c.do(ctx, http.MethodPut, "/api/edit-todo/"+id, patch, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// DeleteTodo removes the todo with the given id and returns its prior
// contents.
func (c *Client) DeleteTodo(ctx context.Context, id string) (*model.Todo, error) {
	var todo model.Todo
	if err := c.do(ctx, http.MethodDelete, "/api/all-todos/"+id, nil, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// do is the core HTTP method that builds the request and handles JSON
// (de)serialization.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorBody
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Message != "" {
				return fmt.Errorf(
					"api error (%d) on %s %s: %s",
					resp.StatusCode, method, path, apiErr.Message,
				)
			}
			if apiErr.Error != "" {
				return fmt.Errorf(
					"api error (%d) on %s %s: %s",
					resp.StatusCode, method, path, apiErr.Error,
				)
			}
		}
		return fmt.Errorf(
			"unexpected status %d on %s %s: %s",
			resp.StatusCode, method, path, string(respBody),
		)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf(
			"unmarshaling response from %s %s: %w",
			method, path, err,
		)
	}

	return nil
}
