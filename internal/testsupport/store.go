package testsupport

import (
	"testing"
	"time"

	"matchday/internal/config"
	"matchday/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config, opts ...store.Option) *store.Store {
	t.Helper()

	st, err := store.Open(cfg, opts...)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// Clock returns a clock fixed at t.
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
