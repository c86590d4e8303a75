// Command m4bmerge merges audio files into a single output file with one
// chapter per input.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or the merge pipeline.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/robinjoseph08/golib/signals"

	"github.com/backmassage/m4bmerge/internal/check"
	"github.com/backmassage/m4bmerge/internal/config"
	"github.com/backmassage/m4bmerge/internal/display"
	"github.com/backmassage/m4bmerge/internal/logging"
	"github.com/backmassage/m4bmerge/internal/pipeline"
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
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "m4bmerge: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "m4bmerge: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "m4bmerge: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available; all output goes through log from here on.
	display.PrintBanner()

	// Cancel the context on SIGINT/SIGTERM so the running tool is killed.
	// A second signal exits immediately.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := signals.Setup()
	go func() {
		select {
		case <-stop:
			log.Warn("Received interrupt, stopping…")
			cancel()
		case <-ctx.Done():
		}
	}()

	if cfg.CheckOnly {
		check.RunCheck(ctx, &cfg, log)
		return 0
	}

	log.Info("=== m4bmerge v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.InputPath)
	for _, in := range cfg.MoreInputs {
		log.Info("     %s", in)
	}
	log.Info("Out: %s", cfg.OutputFile)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}

	// Fail fast if a tool the run needs is unavailable.
	if !cfg.DryRun {
		if err := check.CheckDeps(&cfg); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	// Phase 3: Run pipeline (collect → probe → merge → chapters → tags).
	if _, err := pipeline.Run(ctx, &cfg, log, pipeline.DefaultDeps(&cfg)); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}
