package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todolist/internal/api"
	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/tests/testutil"
)

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeTodo(t *testing.T, rec *httptest.ResponseRecorder) model.Todo {
	t.Helper()
	var todo model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo))
	return todo
}

func TestListEmpty(t *testing.T) {
	s := testutil.NewTestStore(t)
	h := api.New("", s).Handler()

	rec := doRequest(t, h, http.MethodGet, "/api/all-todos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateForcesCompletedFalse(t *testing.T) {
	s := testutil.NewTestStore(t)
	h := api.New("", s).Handler()

	rec := doRequest(t, h, http.MethodPost, "/api/new-todos",
		map[string]interface{}{"id": "t1", "data": "buy milk", "completed": true})
	require.Equal(t, http.StatusCreated, rec.Code)

	todo := decodeTodo(t, rec)
	assert.Equal(t, model.Todo{ID: "t1", Text: "buy milk", Completed: false}, todo)
}

func TestCreateDuplicateIDIsServerError(t *testing.T) {
	s := testutil.NewTestStore(t)
	h := api.New("", s).Handler()

	rec := doRequest(t, h, http.MethodPost, "/api/new-todos",
		map[string]string{"id": "t1", "data": "first"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/new-todos",
		map[string]string{"id": "t1", "data": "second"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Server error"}`, rec.Body.String())

	// No second row was added.
	todos, err := s.ListTodos(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 1)
}

func TestUpdatePartial(t *testing.T) {
	s := testutil.NewTestStore(t)
	h := api.New("", s).Handler()

	rec := doRequest(t, h, http.MethodPost, "/api/new-todos",
		map[string]string{"id": "t1", "data": "buy milk"})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("completed only", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPut, "/api/edit-todo/t1",
			map[string]bool{"completed": true})
		require.Equal(t, http.StatusOK, rec.Code)
		todo := decodeTodo(t, rec)
		assert.Equal(t, "buy milk", todo.Text)
		assert.True(t, todo.Completed)
	})

	t.Run("text only", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPut, "/api/edit-todo/t1",
			map[string]string{"text": "buy oat milk"})
		require.Equal(t, http.StatusOK, rec.Code)
		todo := decodeTodo(t, rec)
		assert.Equal(t, "buy oat milk", todo.Text)
		assert.True(t, todo.Completed)
	})

	t.Run("neither field re-returns the row unchanged", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPut, "/api/edit-todo/t1",
			map[string]string{})
		require.Equal(t, http.StatusOK, rec.Code)
		todo := decodeTodo(t, rec)
		assert.Equal(t, model.Todo{ID: "t1", Text: "buy oat milk", Completed: true}, todo)
	})
}

func TestUpdateNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)
	h := api.New("", s).Handler()

	rec := doRequest(t, h, http.MethodPut, "/api/edit-todo/missing",
		map[string]string{"text": "ghost"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message": "Todo not found"}`, rec.Body.String())
}

func TestDelete(t *testing.T) {
	s := testutil.NewTestStore(t)
	h := api.New("", s).Handler()

	rec := doRequest(t, h, http.MethodPost, "/api/new-todos",
		map[string]string{"id": "t1", "data": "buy milk"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, http.MethodDelete, "/api/all-todos/t1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	todo := decodeTodo(t, rec)
	assert.Equal(t, model.Todo{ID: "t1", Text: "buy milk", Completed: false}, todo)

	// Second delete of the same id reports not found.
	rec = doRequest(t, h, http.MethodDelete, "/api/all-todos/t1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message": "Todo not found"}`, rec.Body.String())
}

func TestScenarioLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	h := api.New("", s).Handler()

	rec := doRequest(t, h, http.MethodPost, "/api/new-todos",
		map[string]string{"id": "t1", "data": "buy milk"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/all-todos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var todos []model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	require.Equal(t, []model.Todo{{ID: "t1", Text: "buy milk", Completed: false}}, todos)

	rec = doRequest(t, h, http.MethodPut, "/api/edit-todo/t1",
		map[string]bool{"completed": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/all-todos", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	require.Equal(t, []model.Todo{{ID: "t1", Text: "buy milk", Completed: true}}, todos)

	rec = doRequest(t, h, http.MethodDelete, "/api/all-todos/t1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/all-todos", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	assert.Empty(t, todos)
}

// failingStore simulates a disconnected store for the generic-error path.
type failingStore struct{}

var errDown = errors.New("connection refused")

func (failingStore) ListTodos(context.Context) ([]model.Todo, error) { return nil, errDown }
func (failingStore) GetTodoByID(context.Context, string) (*model.Todo, error) {
	return nil, errDown
}
func (failingStore) CreateTodo(context.Context, model.Todo) (*model.Todo, error) {
	return nil, errDown
}
func (failingStore) UpdateTodo(context.Context, string, model.TodoPatch) (*model.Todo, error) {
	return nil, errDown
}
func (failingStore) DeleteTodo(context.Context, string) (*model.Todo, error) {
	return nil, errDown
}

func TestStoreErrorIsOpaque(t *testing.T) {
	h := api.New("", failingStore{}).Handler()

	for _, tc := range []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/api/all-todos", nil},
		{http.MethodPost, "/api/new-todos", map[string]string{"id": "t1", "data": "x"}},
		{http.MethodPut, "/api/edit-todo/t1", map[string]string{"text": "x"}},
		{http.MethodDelete, "/api/all-todos/t1", nil},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := doRequest(t, h, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error": "Server error"}`, rec.Body.String())
		})
	}
}
