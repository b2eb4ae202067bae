package store

import (
	"context"
	"errors"

	"github.com/nhle/todolist/internal/model"
)

// ErrNotFound is returned when a todo targeted by id does not exist.
// Every other store failure (connectivity, constraint violation,
// malformed query) is an ordinary wrapped error.
var ErrNotFound = errors.New("todo not found")

// Store defines the persistence interface for todos.
type Store interface {
	// ListTodos returns all todos in whatever order the store yields them.
	ListTodos(ctx context.Context) ([]model.Todo, error)

	// GetTodoByID returns a single todo, or ErrNotFound.
	GetTodoByID(ctx context.Context, id string) (*model.Todo, error)

	// CreateTodo inserts a new todo and returns the inserted row.
	// Inserting a duplicate id fails with the driver's constraint error.
	CreateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error)

	// UpdateTodo applies a partial update to the todo with the given id
	// and returns the row after the update. Fields left nil in the patch
	// keep their existing values. Returns ErrNotFound if no row matches.
	UpdateTodo(ctx context.Context, id string, patch model.TodoPatch) (*model.Todo, error)

	// DeleteTodo removes the todo with the given id and returns the
	// deleted row's prior contents. Returns ErrNotFound if no row matches.
	DeleteTodo(ctx context.Context, id string) (*model.Todo, error)
}
