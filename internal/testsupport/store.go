package testsupport

import (
	"testing"

	"lepa/internal/config"
	"lepa/internal/store"
)

// MustOpenStore opens a document store for tests and fails fast on error.
// The store is closed automatically when the test finishes.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return st
}
