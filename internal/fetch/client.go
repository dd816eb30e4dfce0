// Package fetch retrieves the fixtures, results, and odds pages over HTTP.
//
// Requests share a token-bucket limiter so a run never hits a source faster
// than configured, and fetched bodies can be saved as dated snapshots for
// offline parsing.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"matchday/internal/logging"
)

// MaxBodyBytes caps the size of a fetched page.
const MaxBodyBytes = 8 << 20

// ErrStatus marks a non-200 response.
var ErrStatus = errors.New("unexpected status")

// StatusError reports the status code of a failed request.
type StatusError struct {
	URL     string
	Code    int
	Latency time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s returned %d (latency=%v)", e.URL, e.Code, e.Latency)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// Page is a fetched document.
type Page struct {
	Name      string
	URL       string
	Body      []byte
	FetchedAt time.Time
	// Snapshot is the saved copy, empty when snapshots are disabled.
	Snapshot string
}

// Client fetches pages.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	limiter     *rate.Limiter
	snapshotDir string
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithRateLimit sets the sustained request rate and burst size.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithSnapshotDir saves every fetched body under dir.
func WithSnapshotDir(dir string) Option {
	return func(c *Client) {
		c.snapshotDir = strings.TrimSpace(dir)
	}
}

// WithClock overrides the clock used for fetch and snapshot stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a fetch client.
func New(userAgent string, opts ...Option) *Client {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		userAgent = "matchday"
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
		now:        time.Now,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches rawURL and labels the result with name. The call waits for the
// rate limiter first and honours ctx cancellation while waiting.
func (c *Client) Get(ctx context.Context, name, rawURL string) (*Page, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("fetch %s: url must not be empty", name)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch %s: rate limit wait: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: rawURL, Code: resp.StatusCode, Latency: latency}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s body: %w", name, err)
	}
	if len(body) > MaxBodyBytes {
		return nil, fmt.Errorf("fetch %s: body exceeds %d bytes", name, MaxBodyBytes)
	}

	page := &Page{Name: name, URL: rawURL, Body: body, FetchedAt: c.now()}
	c.logger.Debug("page fetched",
		logging.String(logging.FieldPage, name),
		logging.Int("bytes", len(body)),
		logging.Duration("latency", latency),
	)

	if c.snapshotDir != "" {
		path, err := c.saveSnapshot(page)
		if err != nil {
			logging.WarnWithContext(c.logger, "snapshot not saved", "snapshot_failed",
				logging.String(logging.FieldPage, name),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check snapshot_dir permissions"),
				logging.String(logging.FieldImpact, "page cannot be re-parsed offline"),
			)
		} else {
			page.Snapshot = path
		}
	}
	return page, nil
}

// SnapshotName returns the file name used for a page fetched at t.
func SnapshotName(name string, t time.Time) string {
	return fmt.Sprintf("%s-%s.html", name, t.Format("2006-01-02"))
}

func (c *Client) saveSnapshot(page *Page) (string, error) {
	if err := os.MkdirAll(c.snapshotDir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	path := filepath.Join(c.snapshotDir, SnapshotName(page.Name, page.FetchedAt))
	if err := os.WriteFile(path, page.Body, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}
