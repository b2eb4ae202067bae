package testutil

import (
	"net/http/httptest"
	"testing"

	"github.com/nhle/todolist/internal/api"
	"github.com/nhle/todolist/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestServer starts an httptest server running the full API handler
// against a fresh in-memory store, and returns its base URL.
func NewTestServer(t *testing.T) (string, *store.SQLiteStore) {
	t.Helper()

	s := NewTestStore(t)
	srv := httptest.NewServer(api.New("", s).Handler())
	t.Cleanup(srv.Close)

	return srv.URL, s
}
