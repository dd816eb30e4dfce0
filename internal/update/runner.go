package update

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"matchday/internal/config"
	"matchday/internal/extract"
	"matchday/internal/fetch"
	"matchday/internal/fixture"
	"matchday/internal/logging"
	"matchday/internal/oddspage"
	"matchday/internal/preflight"
	"matchday/internal/reconcile"
	"matchday/internal/store"
)

// Page names used for fetching, snapshots and log fields.
const (
	PageFixtures = "fixtures"
	PageOdds     = "odds"
	PageResults  = "results"
)

// ErrLocked indicates another update run holds the lock file.
var ErrLocked = errors.New("another update is already running")

// Options selects the steps of a run.
type Options struct {
	SkipOdds    bool
	SkipResults bool
}

// Summary counts what a run did.
type Summary struct {
	RunID          string `json:"run_id"`
	Extracted      int    `json:"extracted"`
	Inserted       int    `json:"inserted"`
	Duplicates     int    `json:"duplicates"`
	OddsMatched    int    `json:"odds_matched"`
	OddsCreated    int    `json:"odds_created"`
	OddsUpdated    int    `json:"odds_updated"`
	ResultsUpdated int    `json:"results_updated"`
	ResultsMissing int    `json:"results_missing"`
	Rejected       int    `json:"rejected"`
	Pruned         int    `json:"pruned"`
}

// Runner performs update runs against one store.
type Runner struct {
	cfg    *config.Config
	store  *store.Store
	client *fetch.Client
	norm   *fixture.Normalizer
	logger *slog.Logger
	lock   *flock.Flock
	now    func() time.Time
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithClient replaces the fetch client built from the config.
func WithClient(client *fetch.Client) RunnerOption {
	return func(r *Runner) {
		if client != nil {
			r.client = client
		}
	}
}

// WithNormalizer replaces the normalizer built from the config.
func WithNormalizer(norm *fixture.Normalizer) RunnerOption {
	return func(r *Runner) {
		if norm != nil {
			r.norm = norm
		}
	}
}

// WithClock overrides the clock used for pruning.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner wires a Runner from configuration. The fetch client and
// normalizer are derived from cfg unless supplied as options.
func NewRunner(cfg *config.Config, st *store.Store, logger *slog.Logger, opts ...RunnerOption) (*Runner, error) {
	if cfg == nil || st == nil {
		return nil, errors.New("runner requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	r := &Runner{
		cfg:    cfg,
		store:  st,
		logger: logging.NewComponentLogger(logger, "update"),
		lock:   flock.New(cfg.LockPath()),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.norm == nil {
		table, err := cfg.LeagueTable()
		if err != nil {
			return nil, err
		}
		norm, err := fixture.NewNormalizer(table)
		if err != nil {
			return nil, err
		}
		r.norm = norm
	}
	if r.client == nil {
		r.client = NewClient(cfg, logger)
	}
	return r, nil
}

// NewClient builds the fetch client described by cfg.
func NewClient(cfg *config.Config, logger *slog.Logger) *fetch.Client {
	opts := []fetch.Option{
		fetch.WithTimeout(cfg.RequestTimeout()),
		fetch.WithRateLimit(cfg.Sources.RequestsPerSecond, cfg.Sources.Burst),
		fetch.WithLogger(logging.NewComponentLogger(logger, "fetch")),
	}
	if cfg.Sources.SaveSnapshots {
		opts = append(opts, fetch.WithSnapshotDir(cfg.Paths.SnapshotDir))
	}
	return fetch.New(cfg.Sources.UserAgent, opts...)
}

// Run performs one update. Step failures are logged and joined into the
// returned error; the Summary reflects whatever was completed.
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return Summary{}, fmt.Errorf("ensure directories: %w", err)
	}
	if err := preflight.Err(preflight.RunAll(ctx, r.cfg)); err != nil {
		return Summary{}, fmt.Errorf("preflight: %w", err)
	}
	ok, err := r.lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Summary{}, fmt.Errorf("%w (lock %s)", ErrLocked, r.cfg.LockPath())
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Warn("failed to release update lock", logging.Error(err))
		}
	}()

	summary := Summary{RunID: uuid.NewString()}
	ctx = logging.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("update started",
		logging.Bool("skip_odds", opts.SkipOdds),
		logging.Bool("skip_results", opts.SkipResults),
	)
	start := time.Now()

	var errs []error
	if err := r.runFixtures(ctx, opts, &summary); err != nil {
		errs = append(errs, err)
	}
	if !opts.SkipResults {
		if err := r.runResults(ctx, &summary); err != nil {
			errs = append(errs, err)
		}
	}
	summary.Pruned = r.prune(logger)

	runErr := errors.Join(errs...)
	attrs := []logging.Attr{
		logging.Int("inserted", summary.Inserted),
		logging.Int("duplicates", summary.Duplicates),
		logging.Int("odds_updated", summary.OddsUpdated),
		logging.Int("results_updated", summary.ResultsUpdated),
		logging.Int("rejected", summary.Rejected),
		logging.Duration("elapsed", time.Since(start)),
	}
	if runErr != nil {
		logging.WarnWithContext(logger, "update finished with errors", "update_partial",
			append(attrs, logging.Error(runErr))...)
	} else {
		logger.Info("update finished", logging.Args(attrs...)...)
	}
	return summary, runErr
}

// runFixtures fetches the fixtures and odds pages concurrently, builds the
// records, merges in the odds and persists both.
func (r *Runner) runFixtures(ctx context.Context, opts Options, summary *Summary) error {
	logger := logging.WithContext(ctx, r.logger)
	var (
		fixturesPage *fetch.Page
		oddsPage     *fetch.Page
		oddsErr      error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := r.client.Get(gctx, PageFixtures, r.cfg.Sources.FixturesURL)
		if err != nil {
			return err
		}
		fixturesPage = page
		return nil
	})
	if !opts.SkipOdds {
		g.Go(func() error {
			// An odds failure must not cancel the fixtures fetch.
			oddsPage, oddsErr = r.client.Get(gctx, PageOdds, r.cfg.Sources.OddsURL)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.warnStep(ctx, PageFixtures, "fixtures page not fetched", err,
			"check sources.fixtures_url and network access")
		return fmt.Errorf("fixtures: %w", err)
	}

	var errs []error
	batch, err := extract.Parse(bytes.NewReader(fixturesPage.Body), r.cfg.Layout.Fixtures)
	if err != nil {
		r.warnStep(ctx, PageFixtures, "fixtures page not usable", err,
			"check layout.fixtures against the page markup")
		return fmt.Errorf("fixtures: %w", err)
	}
	summary.Extracted = batch.Len()

	built, err := BuildFixtures(r.norm, batch)
	if err != nil {
		return fmt.Errorf("fixtures: %w", err)
	}
	r.reportRejected(ctx, PageFixtures, built.Rejected, summary)
	if err := built.Err(); err != nil {
		errs = append(errs, fmt.Errorf("fixtures: %w", err))
	}
	records := built.Fixtures

	if !opts.SkipOdds {
		merged, err := r.mergeOdds(ctx, oddsPage, oddsErr, records, summary)
		if err != nil {
			errs = append(errs, fmt.Errorf("odds: %w", err))
		}
		records = merged
	}

	entered, err := r.store.EnterFixtures(ctx, records)
	if err != nil {
		r.warnStep(ctx, PageFixtures, "fixtures not stored", err, "run 'matchday db health'")
		return errors.Join(append(errs, err)...)
	}
	summary.Inserted = len(entered.Inserted)
	summary.Duplicates = len(entered.Duplicates)
	if dup := entered.DuplicateErr(); dup != nil {
		logger.Info("fixtures already stored", logging.Int("count", summary.Duplicates))
		logger.Debug("duplicate fixtures", logging.Error(dup))
	}

	if !opts.SkipOdds {
		updated, err := r.store.UpdateOdds(ctx, records)
		if err != nil {
			r.warnStep(ctx, PageOdds, "odds not stored", err, "run 'matchday db health'")
			return errors.Join(append(errs, err)...)
		}
		summary.OddsUpdated = len(updated.Updated)
		if len(updated.Unset) > 0 {
			logger.Info("fixtures without odds", logging.Int("count", len(updated.Unset)))
		}
	}
	return errors.Join(errs...)
}

// mergeOdds parses the odds page and reconciles it into records. On failure
// the records are returned unchanged.
func (r *Runner) mergeOdds(ctx context.Context, page *fetch.Page, fetchErr error, records []*fixture.Fixture, summary *Summary) ([]*fixture.Fixture, error) {
	if fetchErr != nil {
		r.warnStep(ctx, PageOdds, "odds page not fetched", fetchErr,
			"check sources.odds_url and network access")
		return records, fetchErr
	}
	listing, err := oddspage.Parse(bytes.NewReader(page.Body), r.cfg.Layout.Odds)
	if err != nil {
		r.warnStep(ctx, PageOdds, "odds page not usable", err, "check layout.odds selectors")
		return records, err
	}
	outcome, err := reconcile.Reconcile(r.norm, listing, records)
	if err != nil {
		r.warnStep(ctx, PageOdds, "odds not reconciled", err,
			"check layout.odds selectors against the page markup")
		return records, err
	}
	summary.OddsMatched = outcome.Matched
	summary.OddsCreated = len(outcome.Created)
	r.reportRejected(ctx, PageOdds, outcome.Rejected, summary)
	return outcome.Fixtures, outcome.Err()
}

func (r *Runner) runResults(ctx context.Context, summary *Summary) error {
	logger := logging.WithContext(ctx, r.logger)
	page, err := r.client.Get(ctx, PageResults, r.cfg.Sources.ResultsURL)
	if err != nil {
		r.warnStep(ctx, PageResults, "results page not fetched", err,
			"check sources.results_url and network access")
		return fmt.Errorf("results: %w", err)
	}
	batch, err := extract.Parse(bytes.NewReader(page.Body), r.cfg.Layout.Fixtures)
	if err != nil {
		r.warnStep(ctx, PageResults, "results page not usable", err,
			"check layout.fixtures against the page markup")
		return fmt.Errorf("results: %w", err)
	}
	built, err := BuildResults(r.norm, batch)
	if err != nil {
		return fmt.Errorf("results: %w", err)
	}
	r.reportRejected(ctx, PageResults, built.Rejected, summary)

	updated, err := r.store.UpdateResults(ctx, built.Fixtures)
	if err != nil {
		r.warnStep(ctx, PageResults, "results not stored", err, "run 'matchday db health'")
		return errors.Join(built.Err(), fmt.Errorf("results: %w", err))
	}
	summary.ResultsUpdated = len(updated.Updated)
	summary.ResultsMissing = len(updated.Missing)
	if len(updated.Missing) > 0 {
		logger.Info("results for unknown fixtures", logging.Int("count", len(updated.Missing)))
	}
	if err := built.Err(); err != nil {
		return fmt.Errorf("results: %w", err)
	}
	return nil
}

func (r *Runner) reportRejected(ctx context.Context, page string, rejected []error, summary *Summary) {
	summary.Rejected += len(rejected)
	pageLogger := logging.WithContext(logging.WithPage(ctx, page), r.logger)
	for _, err := range rejected {
		logging.WarnWithContext(pageLogger, "record rejected", "record_rejected",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "add the name to the league table or check the page layout"),
			logging.String(logging.FieldImpact, "record skipped for this run"),
		)
	}
}

func (r *Runner) warnStep(ctx context.Context, page, msg string, err error, hint string) {
	pageLogger := logging.WithContext(logging.WithPage(ctx, page), r.logger)
	logging.WarnWithContext(pageLogger, msg, "step_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hint),
	)
}

func (r *Runner) prune(logger *slog.Logger) int {
	now := r.now()
	removed := 0
	if r.cfg.Sources.SaveSnapshots {
		removed += logging.PruneOld(logger, now, r.cfg.Sources.SnapshotRetentionDays, logging.PruneTarget{
			Dir:     r.cfg.Paths.SnapshotDir,
			Pattern: "*.html",
		})
	}
	removed += logging.PruneOld(logger, now, r.cfg.Logging.RetentionDays, logging.PruneTarget{
		Dir:     r.cfg.Paths.LogDir,
		Pattern: "*.log",
		Exclude: []string{filepath.Join(r.cfg.Paths.LogDir, logging.LogFileName)},
	})
	return removed
}
