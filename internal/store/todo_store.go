package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/todolist/internal/model"
)

// ListTodos returns every todo in the table. No ordering is guaranteed.
func (s *SQLiteStore) ListTodos(ctx context.Context) ([]model.Todo, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT id, text, completed FROM todos")
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

// GetTodoByID retrieves a single todo by ID.
func (s *SQLiteStore) GetTodoByID(
	ctx context.Context,
	id string,
) (*model.Todo, error) {
	var todo model.Todo
	var completed int

	err := s.db.QueryRowxContext(ctx,
		"SELECT id, text, completed FROM todos WHERE id = ?", id,
	).Scan(&todo.ID, &todo.Text, &completed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %s: %w", id, err)
	}
	todo.Completed = completed != 0

	return &todo, nil
}

// CreateTodo inserts a new todo. Generates a UUID if ID is empty; the
// deployed client always supplies its own id, so this is a fallback only.
func (s *SQLiteStore) CreateTodo(
	ctx context.Context,
	todo model.Todo,
) (*model.Todo, error) {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO todos (id, text, completed) VALUES (?, ?, ?)",
		todo.ID, todo.Text, boolToInt(todo.Completed),
	)
	if err != nil {
		return nil, fmt.Errorf("creating todo %s: %w", todo.ID, err)
	}

	return &todo, nil
}

// UpdateTodo applies a partial update to an existing todo. Nil patch
// fields keep the stored value; a patch with neither field re-returns
// the unchanged row.
func (s *SQLiteStore) UpdateTodo(
	ctx context.Context,
	id string,
	patch model.TodoPatch,
) (*model.Todo, error) {
	existing, err := s.GetTodoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*existing)

	result, err := s.db.ExecContext(ctx,
		"UPDATE todos SET text = ?, completed = ? WHERE id = ?",
		updated.Text, boolToInt(updated.Completed), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating todo %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}
	return &updated, nil
}

// DeleteTodo removes a todo by ID and returns its prior contents.
func (s *SQLiteStore) DeleteTodo(
	ctx context.Context,
	id string,
) (*model.Todo, error) {
	existing, err := s.GetTodoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("deleting todo %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}
	return existing, nil
}

// scanTodo scans a todo row from a sqlx.Rows result set.
func scanTodo(rows *sqlx.Rows) (model.Todo, error) {
	var todo model.Todo
	var completed int

	if err := rows.Scan(&todo.ID, &todo.Text, &completed); err != nil {
		return model.Todo{}, fmt.Errorf("scanning todo row: %w", err)
	}
	todo.Completed = completed != 0

	return todo, nil
}
