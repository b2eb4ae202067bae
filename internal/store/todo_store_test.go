package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/store"
	"github.com/nhle/todolist/tests/testutil"
)

func TestCreateAndList(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTodo(ctx, model.Todo{ID: "t1", Text: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "t1", created.ID)
	assert.Equal(t, "buy milk", created.Text)
	assert.False(t, created.Completed)

	todos, err := s.ListTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, model.Todo{ID: "t1", Text: "buy milk", Completed: false}, todos[0])
}

func TestCreateGeneratesIDWhenEmpty(t *testing.T) {
	s := testutil.NewTestStore(t)

	created, err := s.CreateTodo(context.Background(), model.Todo{Text: "no id"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestCreateDuplicateID(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTodo(ctx, model.Todo{ID: "t1", Text: "first"})
	require.NoError(t, err)

	_, err = s.CreateTodo(ctx, model.Todo{ID: "t1", Text: "second"})
	require.Error(t, err)

	// No second row was added.
	todos, err := s.ListTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "first", todos[0].Text)
}

func TestUpdatePartialPatch(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTodo(ctx, model.Todo{ID: "t1", Text: "buy milk"})
	require.NoError(t, err)

	t.Run("completed only leaves text unchanged", func(t *testing.T) {
		completed := true
		updated, err := s.UpdateTodo(ctx, "t1", model.TodoPatch{Completed: &completed})
		require.NoError(t, err)
		assert.Equal(t, "buy milk", updated.Text)
		assert.True(t, updated.Completed)
	})

	t.Run("text only leaves completed unchanged", func(t *testing.T) {
		text := "buy oat milk"
		updated, err := s.UpdateTodo(ctx, "t1", model.TodoPatch{Text: &text})
		require.NoError(t, err)
		assert.Equal(t, "buy oat milk", updated.Text)
		assert.True(t, updated.Completed)
	})

	t.Run("empty patch is a no-op returning the row", func(t *testing.T) {
		before, err := s.GetTodoByID(ctx, "t1")
		require.NoError(t, err)

		updated, err := s.UpdateTodo(ctx, "t1", model.TodoPatch{})
		require.NoError(t, err)
		assert.Equal(t, *before, *updated)
	})
}

func TestUpdateNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	text := "ghost"
	_, err := s.UpdateTodo(ctx, "missing", model.TodoPatch{Text: &text})
	assert.ErrorIs(t, err, store.ErrNotFound)

	// No row was created.
	todos, err := s.ListTodos(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestDeleteReturnsPriorContents(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTodo(ctx, model.Todo{ID: "t1", Text: "buy milk"})
	require.NoError(t, err)
	_, err = s.CreateTodo(ctx, model.Todo{ID: "t2", Text: "walk dog"})
	require.NoError(t, err)

	deleted, err := s.DeleteTodo(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, model.Todo{ID: "t1", Text: "buy milk", Completed: false}, *deleted)

	// Exactly that row is gone.
	todos, err := s.ListTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "t2", todos[0].ID)
}

func TestDeleteIdempotence(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTodo(ctx, model.Todo{ID: "t1", Text: "buy milk"})
	require.NoError(t, err)

	_, err = s.DeleteTodo(ctx, "t1")
	require.NoError(t, err)

	afterFirst, err := s.ListTodos(ctx)
	require.NoError(t, err)

	_, err = s.DeleteTodo(ctx, "t1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	afterSecond, err := s.ListTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, afterFirst, afterSecond)
}

func TestScenarioLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTodo(ctx, model.Todo{ID: "t1", Text: "buy milk"})
	require.NoError(t, err)

	todos, err := s.ListTodos(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Todo{{ID: "t1", Text: "buy milk", Completed: false}}, todos)

	completed := true
	_, err = s.UpdateTodo(ctx, "t1", model.TodoPatch{Completed: &completed})
	require.NoError(t, err)

	todos, err = s.ListTodos(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Todo{{ID: "t1", Text: "buy milk", Completed: true}}, todos)

	_, err = s.DeleteTodo(ctx, "t1")
	require.NoError(t, err)

	todos, err = s.ListTodos(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}
