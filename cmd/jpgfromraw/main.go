// Command jpgfromraw extracts the embedded JPEG preview from every RAW file
// under an input directory into a mirrored tree of .jpg files.
//
// It parses flags, validates configuration and paths, and then runs system
// diagnostics (--check), the preview inventory (--list), or the extraction
// pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/jpgfromraw/internal/check"
	"github.com/backmassage/jpgfromraw/internal/config"
	"github.com/backmassage/jpgfromraw/internal/display"
	"github.com/backmassage/jpgfromraw/internal/logging"
	"github.com/backmassage/jpgfromraw/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "jpgfromraw: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "jpgfromraw: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpgfromraw: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner(os.Stdout)

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	if err := check.CheckPaths(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("=== jpgfromraw v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputDir)
	log.Info("Transfers: %d, selection: %s", cfg.Transfers, cfg.Select)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}
	log.Info("")

	// Phase 3: Signal handling. Cancelling the context stops queued files
	// from starting; files already being written are finished.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing files in progress…")
		cancel()
	}()

	if cfg.ListOnly {
		if err := pipeline.Inventory(ctx, &cfg, log, os.Stdout); err != nil {
			log.Error("%v", err)
			return 1
		}
		return 0
	}

	// Phase 4: Run pipeline (discover → mirror dirs → extract).
	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Error("Cannot create output directory: %s", cfg.OutputDir)
			return 1
		}
	}
	stats, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	if err := stats.Err(); err != nil {
		log.Debug(cfg.Verbose, "%v", err)
		return 1
	}
	if ctx.Err() != nil {
		return 130
	}
	return 0
}
