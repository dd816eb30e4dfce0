package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"matchday/internal/fetch"
)

func TestGetSendsUserAgentAndReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "matchday-test" {
			t.Errorf("unexpected user agent %q", got)
		}
		_, _ = w.Write([]byte("<html>fixtures</html>"))
	}))
	t.Cleanup(server.Close)

	client := fetch.New("matchday-test", fetch.WithRateLimit(0, 0))
	page, err := client.Get(context.Background(), "fixtures", server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(page.Body) != "<html>fixtures</html>" || page.Name != "fixtures" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Snapshot != "" {
		t.Fatalf("snapshot should be empty when disabled, got %q", page.Snapshot)
	}
}

func TestGetHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := fetch.New("", fetch.WithRateLimit(0, 0))
	_, err := client.Get(context.Background(), "odds", server.URL)
	if !errors.Is(err, fetch.ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
	var statusErr *fetch.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 status error, got %v", err)
	}
}

func TestGetEmptyURL(t *testing.T) {
	client := fetch.New("ua")
	if _, err := client.Get(context.Background(), "odds", "  "); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestGetSavesSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("odds body"))
	}))
	t.Cleanup(server.Close)

	dir := filepath.Join(t.TempDir(), "snapshots")
	clock := func() time.Time { return time.Date(2016, time.August, 13, 9, 0, 0, 0, time.UTC) }
	client := fetch.New("ua", fetch.WithRateLimit(0, 0), fetch.WithSnapshotDir(dir), fetch.WithClock(clock))
	page, err := client.Get(context.Background(), "odds", server.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := filepath.Join(dir, "odds-2016-08-13.html")
	if page.Snapshot != want {
		t.Fatalf("snapshot = %q, want %q", page.Snapshot, want)
	}
	data, err := os.ReadFile(want)
	if err != nil || string(data) != "odds body" {
		t.Fatalf("unexpected snapshot contents %q: %v", data, err)
	}
}

func TestGetHonoursCancelledContextWhileLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(server.Close)

	client := fetch.New("ua", fetch.WithRateLimit(0.001, 1))
	if _, err := client.Get(context.Background(), "first", server.URL); err != nil {
		t.Fatalf("first Get: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.Get(ctx, "second", server.URL); err == nil {
		t.Fatal("expected rate limit wait to fail on a short deadline")
	}
}
