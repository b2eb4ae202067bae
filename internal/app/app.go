package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolist/internal/keys"
	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/theme"
	"github.com/nhle/todolist/internal/ui/todoform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewTodoCreate
	ViewTodoEdit
)

// Model is the root Bubble Tea model. Its todos slice is the client-side
// mirror of the server state: loaded once at startup, then mutated
// optimistically alongside each outgoing request. Failed requests only
// set the error line; the local list is never reverted, so it can stay
// ahead of the store until the next full reload.
type Model struct {
	currentView ViewState
	api         Client
	keys        *keys.KeyMap
	todos       []model.Todo
	cursor      int
	form        todoform.Model
	errMessage  string
	width       int
	height      int
	ready       bool
}

// New creates a new root application model backed by the given API client.
func New(c Client) Model {
	return Model{
		currentView: ViewList,
		api:         c,
		keys:        keys.DefaultKeyMap(),
		form:        todoform.New(80, 24),
	}
}

// Init fetches the todo list once. There is no polling; the client can
// go stale relative to the store if mutated elsewhere.
func (m Model) Init() tea.Cmd {
	return m.fetchTodos()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.form.SetSize(msg.Width, msg.Height)
		return m.updateActiveView(msg)

	case todosLoadedMsg:
		if msg.err != nil {
			m.errMessage = "Error loading todos: " + msg.err.Error()
			return m, nil
		}
		m.todos = msg.todos
		return m, nil

	case todoform.TodoSubmittedMsg:
		m.currentView = ViewList
		// Optimistic: append locally before the server confirms.
		todo := model.Todo{ID: newTodoID(), Text: msg.Text, Completed: false}
		m.todos = append(m.todos, todo)
		return m, m.createTodo(todo.ID, todo.Text)

	case todoform.TodoEditedMsg:
		m.currentView = ViewList
		// Optimistic: patch the text locally. The outgoing payload also
		// carries completed=false, which is intentionally not mirrored here.
		for i := range m.todos {
			if m.todos[i].ID == msg.ID {
				m.todos[i].Text = msg.Text
				break
			}
		}
		return m, m.editTodoText(msg.ID, msg.Text)

	case todoform.TodoFormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case todoCreatedResultMsg:
		if msg.err != nil {
			m.errMessage = "Error adding todo: " + msg.err.Error()
		}
		return m, nil

	case todoUpdatedResultMsg:
		if msg.err != nil {
			m.errMessage = "Error updating todo: " + msg.err.Error()
		}
		return m, nil

	case todoDeletedResultMsg:
		if msg.err != nil {
			m.errMessage = "Error deleting todo: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewList {
			return m.handleListKeys(msg)
		}
	}

	return m.updateActiveView(msg)
}

// handleListKeys processes key input while the list view is active.
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.currentView = ViewTodoCreate
		return m, m.form.StartCreate()

	case key.Matches(msg, m.keys.Edit):
		if todo, ok := m.selectedTodo(); ok {
			m.currentView = ViewTodoEdit
			return m, m.form.StartEdit(todo.ID, todo.Text)
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if todo, ok := m.selectedTodo(); ok {
			// Optimistic: flip locally, then tell the server.
			next := !todo.Completed
			m.todos[m.cursor].Completed = next
			return m, m.toggleTodo(todo.ID, next)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if todo, ok := m.selectedTodo(); ok {
			// Optimistic: drop locally, then tell the server.
			m.todos = append(m.todos[:m.cursor], m.todos[m.cursor+1:]...)
			if m.cursor >= len(m.todos) && m.cursor > 0 {
				m.cursor--
			}
			return m, m.deleteTodo(todo.ID)
		}
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	return m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewTodoCreate, ViewTodoEdit:
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}

// selectedTodo returns the todo under the cursor, if any.
func (m Model) selectedTodo() (model.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.todos) {
		return model.Todo{}, false
	}
	return m.todos[m.cursor], true
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := theme.HeaderStyle.Render("Todo List")

	var content string
	switch m.currentView {
	case ViewTodoCreate, ViewTodoEdit:
		content = m.form.View()
	default:
		content = m.renderList()
	}

	sections := []string{header}
	if m.errMessage != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errMessage))
	}
	sections = append(sections, content, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderList draws the todo list with a cursor and completion markers.
func (m Model) renderList() string {
	if len(m.todos) == 0 {
		return theme.HelpStyle.Render("\nNo todos yet. Press n to add one.\n")
	}

	out := "\n"
	for i, todo := range m.todos {
		marker := "○"
		text := todo.Text
		if todo.Completed {
			marker = "✓"
			text = theme.CompletedStyle.Render(text)
		}

		line := fmt.Sprintf("%s %s", marker, text)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		out += line + "\n"
	}
	return out
}

// renderStatusBar draws keyboard hints for the active view.
func (m Model) renderStatusBar() string {
	switch m.currentView {
	case ViewTodoCreate, ViewTodoEdit:
		return theme.StatusBarStyle.Render("enter submit | esc cancel")
	default:
		return theme.StatusBarStyle.Render(
			"q quit | n new | e edit | x toggle | d delete | j/k move",
		)
	}
}
