package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gofrs/flock"
	"github.com/jmoiron/sqlx"

	"leadqual-engine/internal/cachestore"
	"leadqual-engine/internal/domain"
	"leadqual-engine/internal/store"
)

// BatchOptions tune the processor; zero values get sane defaults.
type BatchOptions struct {
	SaveEveryN int           // checkpoint every N processed rows
	JitterMin  time.Duration // pacing between rows, independent of the
	JitterMax  time.Duration // oracle's own rate limiter
	LockPath   string        // data-dir lock file; empty disables locking
	OutputCSV  string        // final export path; empty skips the export
}

// Batch drives the engine over an input table: resumable via the
// checkpoint, deduplicated by URL, periodically persisted, and tolerant
// of single-row failures.
type Batch struct {
	eng    *Engine
	caches *cachestore.Store
	db     *sqlx.DB
	opts   BatchOptions
	log    *slog.Logger
	sleep  func(time.Duration)
}

func NewBatch(eng *Engine, caches *cachestore.Store, db *sqlx.DB, opts BatchOptions, log *slog.Logger) *Batch {
	if opts.SaveEveryN <= 0 {
		opts.SaveEveryN = 50
	}
	if opts.JitterMin <= 0 {
		opts.JitterMin = 50 * time.Millisecond
	}
	if opts.JitterMax < opts.JitterMin {
		opts.JitterMax = opts.JitterMin + 100*time.Millisecond
	}
	return &Batch{
		eng:    eng,
		caches: caches,
		db:     db,
		opts:   opts,
		log:    log,
		sleep:  time.Sleep,
	}
}

// Run processes rows in input order and returns the full result set. A
// single row's failure never aborts the batch; the only fatal paths
// happen before the first row (lock contention, unreadable state).
func (b *Batch) Run(ctx context.Context, rows []domain.JobRecord) ([]domain.QualificationResult, error) {
	if b.opts.LockPath != "" {
		fl := flock.New(b.opts.LockPath)
		locked, err := fl.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire run lock: %w", err)
		}
		if !locked {
			return nil, fmt.Errorf("another run holds %s", b.opts.LockPath)
		}
		defer func() { _ = fl.Unlock() }()
	}

	processed := make(map[int]bool)
	for _, idx := range b.caches.LoadCheckpoint().ProcessedIndices {
		processed[idx] = true
	}

	// Reconcile with the partial-results store: a crash between writes
	// can leave the two out of sync, so take the union.
	stored, err := store.ProcessedIndices(ctx, b.db)
	if err != nil {
		return nil, err
	}
	for _, idx := range stored {
		processed[idx] = true
	}

	seen, err := store.SeenURLs(ctx, b.db)
	if err != nil {
		return nil, err
	}

	total := len(rows)
	for _, rec := range rows {
		if processed[rec.Index] {
			b.log.Debug("already processed", "row", rec.Index)
			continue
		}
		if rec.Title == "" || rec.Company == "" {
			b.log.Debug("missing title/company", "row", rec.Index)
			processed[rec.Index] = true
			continue
		}
		if rec.URL != "" && seen[rec.URL] {
			b.log.Debug("duplicate url", "row", rec.Index, "url", rec.URL)
			processed[rec.Index] = true
			continue
		}

		b.log.Info("processing", "row", rec.Index+1, "total", total,
			"company", rec.Company, "title", rec.Title)

		res := b.eng.Evaluate(ctx, rec)
		if err := store.UpsertResult(ctx, b.db, res); err != nil {
			// Crash-safety point: persist everything we have, skip the
			// row, keep going.
			b.log.Error("row failed", "row", rec.Index, "error", err)
			b.persist(processed)
			continue
		}

		processed[rec.Index] = true
		if rec.URL != "" {
			seen[rec.URL] = true
		}

		if len(processed)%b.opts.SaveEveryN == 0 || len(processed) == total {
			b.persist(processed)
			b.log.Debug("checkpoint saved", "processed", len(processed), "total", total)
		}

		b.sleep(b.jitter())
	}

	results, err := store.LoadResults(ctx, b.db)
	if err != nil {
		return nil, err
	}

	if b.opts.OutputCSV != "" {
		if err := store.ExportCSV(ctx, b.db, b.opts.OutputCSV); err != nil {
			return nil, fmt.Errorf("final export: %w", err)
		}
	}
	b.persist(processed)

	b.log.Info("batch complete", "rows", len(results), "output", b.opts.OutputCSV)
	return results, nil
}

func (b *Batch) persist(processed map[int]bool) {
	if err := b.caches.SaveCheckpoint(processed); err != nil {
		b.log.Warn("checkpoint write failed", "error", err)
	}
	if err := b.caches.Flush(); err != nil {
		b.log.Warn("cache flush failed", "error", err)
	}
}

func (b *Batch) jitter() time.Duration {
	span := b.opts.JitterMax - b.opts.JitterMin
	if span <= 0 {
		return b.opts.JitterMin
	}
	return b.opts.JitterMin + rand.N(span)
}
