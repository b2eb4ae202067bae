package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todolist/internal/model"
)

// Client is the API surface the UI depends on. *client.Client satisfies it.
type Client interface {
	ListTodos(ctx context.Context) ([]model.Todo, error)
	CreateTodo(ctx context.Context, id, text string) (*model.Todo, error)
	UpdateTodo(ctx context.Context, id string, patch model.TodoPatch) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id string) (*model.Todo, error)
}

// todosLoadedMsg carries the result of the startup List call.
type todosLoadedMsg struct {
	todos []model.Todo
	err   error
}

// todoCreatedResultMsg is sent after a create request completes.
type todoCreatedResultMsg struct{ err error }

// todoUpdatedResultMsg is sent after an update request completes.
type todoUpdatedResultMsg struct{ err error }

// todoDeletedResultMsg is sent after a delete request completes.
type todoDeletedResultMsg struct{ err error }

// newTodoID generates a timestamp-derived id at the moment of submission.
// The client is the only id-generation authority; the store never assigns
// ids for records it receives from here.
func newTodoID() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// fetchTodos loads the full list from the server.
func (m Model) fetchTodos() tea.Cmd {
	c := m.api
	return func() tea.Msg {
		todos, err := c.ListTodos(context.Background())
		return todosLoadedMsg{todos: todos, err: err}
	}
}

// createTodo sends the already-appended todo to the server.
func (m Model) createTodo(id, text string) tea.Cmd {
	c := m.api
	return func() tea.Msg {
		_, err := c.CreateTodo(context.Background(), id, text)
		return todoCreatedResultMsg{err: err}
	}
}

// editTodoText sends an edited text to the server. The payload also
// resets completed to false, matching what the edit flow has always
// sent; the list view does not mirror that part locally.
func (m Model) editTodoText(id, text string) tea.Cmd {
	c := m.api
	completed := false
	return func() tea.Msg {
		_, err := c.UpdateTodo(context.Background(), id, model.TodoPatch{
			Text:      &text,
			Completed: &completed,
		})
		return todoUpdatedResultMsg{err: err}
	}
}

// toggleTodo sends the flipped completion state to the server.
func (m Model) toggleTodo(id string, completed bool) tea.Cmd {
	c := m.api
	return func() tea.Msg {
		_, err := c.UpdateTodo(context.Background(), id, model.TodoPatch{
			Completed: &completed,
		})
		return todoUpdatedResultMsg{err: err}
	}
}

// deleteTodo removes a todo on the server.
func (m Model) deleteTodo(id string) tea.Cmd {
	c := m.api
	return func() tea.Msg {
		_, err := c.DeleteTodo(context.Background(), id)
		return todoDeletedResultMsg{err: err}
	}
}
