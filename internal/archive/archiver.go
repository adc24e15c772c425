package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pagearchiver/internal/progress"
)

// Config holds the settings that influence a single run.
type Config struct {
	// Delay is the politeness pause inserted between consecutive fetch
	// attempts. Skipped tasks do not pause.
	Delay time.Duration
}

// Archiver walks the URL list in order, skipping completed identifiers,
// fetching the rest one at a time, and committing each success to the page
// store and then the ledger. One fetch is in flight at any instant.
type Archiver struct {
	cfg     Config
	source  Source
	ledger  Ledger
	fetcher Fetcher
	store   PageStore
	clock   Clock
	emitter progress.Emitter
	logger  *zap.Logger
	pauser  pauseController
}

// New constructs an Archiver. The emitter may be nil if no observer is
// wanted; logger may be nil to disable logging.
func New(
	cfg Config,
	source Source,
	ledger Ledger,
	fetcher Fetcher,
	store PageStore,
	clock Clock,
	emitter progress.Emitter,
	logger *zap.Logger,
) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archiver{
		cfg:     cfg,
		source:  source,
		ledger:  ledger,
		fetcher: fetcher,
		store:   store,
		clock:   clock,
		emitter: emitter,
		logger:  logger,
		pauser:  &timerPauseController{},
	}
}

// Run executes one pass over the URL list and returns the accumulated
// statistics. Per-task failures never abort the run; the only aborting
// conditions are an unreadable or empty URL list and context cancellation
// between tasks.
func (a *Archiver) Run(ctx context.Context) (Stats, error) {
	runID := uuid.New()

	urls, err := a.source.Load()
	if err != nil {
		return Stats{}, fmt.Errorf("load url list: %w", err)
	}
	if len(urls) == 0 {
		return Stats{}, ErrEmptySource
	}

	completed, err := a.ledger.LoadCompleted()
	if err != nil {
		return Stats{}, fmt.Errorf("load progress ledger: %w", err)
	}

	stats := Stats{Total: len(urls)}
	started := a.clock.Now()
	a.logger.Info("Starting archive run",
		zap.String("run_id", runID.String()),
		zap.Int("urls", len(urls)),
		zap.Int("already_completed", len(completed)),
	)
	a.emit(progress.Event{RunID: runID, TS: started, Stage: progress.StageRunStart, Total: len(urls)})

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		id := i + 1
		if _, done := completed[id]; done {
			stats.Skipped++
			a.logger.Info("Skipping already fetched page",
				zap.Int("seq", id),
				zap.Int("total", len(urls)),
				zap.String("url", url),
			)
			a.emit(progress.Event{
				RunID: runID, TS: a.clock.Now(), Stage: progress.StageTaskSkip,
				Seq: id, Total: len(urls), URL: url,
			})
			continue
		}

		a.logger.Info("Fetching page",
			zap.Int("seq", id),
			zap.Int("total", len(urls)),
			zap.String("url", url),
		)
		a.runTask(ctx, runID, id, url, &stats)

		if id < len(urls) {
			a.pauser.Pause(ctx, a.cfg.Delay)
		}
	}

	elapsed := a.clock.Now().Sub(started)
	a.logger.Info("Archive run finished",
		zap.String("run_id", runID.String()),
		zap.Int("total", stats.Total),
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
		zap.Duration("elapsed", elapsed),
	)
	a.emit(progress.Event{
		RunID: runID, TS: a.clock.Now(), Stage: progress.StageRunDone,
		Total: stats.Total, Dur: elapsed,
		Succeeded: stats.Succeeded, Skipped: stats.Skipped, Failed: stats.Failed,
	})
	return stats, nil
}

// runTask performs the fetch/store/append sequence for one URL. The store
// write happens strictly before the ledger append so an interruption never
// leaves a ledger entry pointing at a missing file.
func (a *Archiver) runTask(ctx context.Context, runID uuid.UUID, id int, url string, stats *Stats) {
	page, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		a.failTask(runID, id, url, string(ClassifyFetchError(err)), err, stats)
		return
	}

	path, err := a.store.Save(id, page.Body)
	if err != nil {
		a.failTask(runID, id, url, "storage_write_failure", err, stats)
		return
	}
	if err := a.ledger.Append(id, url); err != nil {
		// The page file exists without a ledger entry; the next run
		// re-fetches and silently overwrites it.
		a.failTask(runID, id, url, "storage_write_failure", err, stats)
		return
	}

	stats.Succeeded++
	a.logger.Info("Saved page",
		zap.Int("seq", id),
		zap.String("url", url),
		zap.String("path", path),
		zap.Int("bytes", len(page.Body)),
		zap.Duration("fetch_dur", page.Duration),
	)
	a.emit(progress.Event{
		RunID: runID, TS: a.clock.Now(), Stage: progress.StageTaskDone,
		Seq: id, URL: url, Path: path,
		Bytes: int64(len(page.Body)), Dur: page.Duration,
	})
}

func (a *Archiver) failTask(runID uuid.UUID, id int, url, reason string, err error, stats *Stats) {
	stats.Failed++
	a.logger.Warn("Page fetch failed",
		zap.Int("seq", id),
		zap.String("url", url),
		zap.String("reason", reason),
		zap.Error(err),
	)
	a.emit(progress.Event{
		RunID: runID, TS: a.clock.Now(), Stage: progress.StageTaskError,
		Seq: id, URL: url, Reason: reason,
	})
}

func (a *Archiver) emit(evt progress.Event) {
	if a.emitter == nil {
		return
	}
	a.emitter.Emit(evt)
}
