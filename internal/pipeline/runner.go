package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/backmassage/jpgfromraw/internal/config"
	"github.com/backmassage/jpgfromraw/internal/display"
	"github.com/backmassage/jpgfromraw/internal/logging"
	"github.com/backmassage/jpgfromraw/internal/storage"
)

// Run is the top-level batch entry point: it resolves the layout, discovers
// matching files, creates their mirrored directories, and extracts every
// preview with at most cfg.Transfers files in flight. The returned error
// covers setup only; per-file failures are reported in RunStats.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	return RunWith(ctx, cfg, log, storage.Default())
}

// RunWith is Run reading inputs through opener.
func RunWith(ctx context.Context, cfg *config.Config, log *logging.Logger, opener storage.Opener) (RunStats, error) {
	layout, err := NewLayout(cfg.InputDir, cfg.OutputDir)
	if err != nil {
		return RunStats{}, err
	}
	tasks, err := Discover(layout, cfg.Extensions())
	if err != nil {
		return RunStats{}, err
	}
	log.Info("Found %d files", len(tasks))
	log.Debug(cfg.Verbose, "Input root:  %s", layout.InputRoot)
	log.Debug(cfg.Verbose, "Output root: %s", layout.OutputRoot)

	if !cfg.DryRun {
		if err := CreateOutputDirs(tasks); err != nil {
			return RunStats{}, err
		}
	}

	x := &Extractor{
		Opener:       opener,
		Select:       cfg.Select,
		SkipExisting: cfg.SkipExisting,
		DryRun:       cfg.DryRun,
	}
	stats := Execute(ctx, tasks, x, cfg.Transfers, log, cfg.Verbose)
	logSummary(cfg, log, &stats)
	return stats, nil
}

// Execute runs x over tasks with one goroutine per task, gated by a
// semaphore of size transfers. Every task is attempted; a failure never
// stops the others. Once ctx is done, tasks still waiting for a slot are
// recorded as skipped while running tasks finish normally.
func Execute(ctx context.Context, tasks []FileTask, x *Extractor, transfers int, log *logging.Logger, verbose bool) RunStats {
	if transfers < 1 {
		transfers = 1
	}
	sem := semaphore.NewWeighted(int64(transfers))
	progress := display.NewProgress("Extracting", len(tasks), log)

	var (
		mu    sync.Mutex
		stats = RunStats{Total: len(tasks)}
		wg    sync.WaitGroup
	)
	finish := func(t FileTask, o Outcome) {
		mu.Lock()
		stats.record(o)
		mu.Unlock()
		progress.Advance(t.RelPath, o.Failed())
	}

	for _, task := range tasks {
		wg.Add(1)
		go func(t FileTask) {
			defer wg.Done()
			var o Outcome
			if err := sem.Acquire(ctx, 1); err != nil {
				o = Outcome{Path: t.InputPath, Err: err, Skipped: true}
			} else {
				o = x.Extract(t)
				sem.Release(1)
			}
			logOutcome(log, verbose, x.DryRun, t, o)
			finish(t, o)
		}(task)
	}
	wg.Wait()
	log.ClearStatus()
	return stats
}

func logOutcome(log *logging.Logger, verbose, dryRun bool, t FileTask, o Outcome) {
	switch {
	case o.Skipped && o.Err != nil:
		log.Warn("Not started (interrupted): %s", t.RelPath)
	case o.Skipped:
		log.Debug(verbose, "Skip (exists): %s", o.Output)
	case o.Err != nil:
		log.Error("%s: %v", t.RelPath, o.Err)
	case dryRun:
		log.Success("[DRY] %s -> %s (%s, orientation %d)", t.RelPath, t.OutputPath,
			display.FormatBytes(o.Bytes), o.Image.OrientationOrDefault())
	default:
		log.Debug(verbose, "%s: preview at %d+%d, orientation %d -> %s",
			t.RelPath, o.Image.Offset, o.Image.Length, o.Image.OrientationOrDefault(), o.Output)
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d extracted, %d skipped, %d failed", stats.Succeeded, stats.Skipped, stats.Failed)
	if cfg.DryRun {
		log.Info("  Total written: n/a (dry run)")
		return
	}
	if stats.Failed > 0 {
		log.Warn("  Total written: %s (%d of %d files)",
			display.FormatBytes(stats.BytesWritten), stats.Succeeded, stats.Total)
		return
	}
	log.Success("  Total written: %s", display.FormatBytes(stats.BytesWritten))
}
