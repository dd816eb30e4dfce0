package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"matchday/internal/config"
)

// sourceTimeout bounds each source check.
const sourceTimeout = 5 * time.Second

// CheckSource verifies that a page URL answers with 200 OK.
func CheckSource(ctx context.Context, name, rawURL, userAgent string) Result {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, sourceTimeout)
	defer cancel()

	client := &http.Client{Timeout: sourceTimeout}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("request failed (%v)", err)}
	}
	if ua := strings.TrimSpace(userAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("request failed (%v)", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Name: name, Detail: fmt.Sprintf("%s answered %d", rawURL, resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable in %s", time.Since(start).Round(time.Millisecond))}
}

// CheckSources checks every configured page source.
func CheckSources(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	ua := cfg.Sources.UserAgent
	return []Result{
		CheckSource(ctx, "Fixtures page", cfg.Sources.FixturesURL, ua),
		CheckSource(ctx, "Odds page", cfg.Sources.OddsURL, ua),
		CheckSource(ctx, "Results page", cfg.Sources.ResultsURL, ua),
	}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}
