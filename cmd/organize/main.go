// Command organize prepares an unpacked anime release for muxing: it gathers
// font attachments into one fonts directory and shortens subtitle names to
// their episode token.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/haifuri/organize/internal/check"
	"github.com/haifuri/organize/internal/config"
	"github.com/haifuri/organize/internal/display"
	"github.com/haifuri/organize/internal/logging"
	"github.com/haifuri/organize/internal/naming"
	"github.com/haifuri/organize/internal/pipeline"
	"github.com/haifuri/organize/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

const exitInterrupted = 130

func main() {
	os.Exit(run())
}

func run() int {
	// Bootstrap: no logger yet, errors go straight to stderr.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		if errors.Is(err, config.ErrHelpShown) || errors.Is(err, config.ErrVersionShown) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "organize: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "organize: %v\n", err)
		return 1
	}
	if _, err := naming.ParseEpisodes(cfg.Episodes); err != nil {
		fmt.Fprintf(os.Stderr, "organize: --episodes: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "organize: %v\n", err)
		return 1
	}
	defer log.Close()

	code := organize(&cfg, log, os.Stdout)

	if term.ShouldPause(cfg.Pause) {
		term.Pause(os.Stdin, os.Stdout, "Press Enter to exit...")
	}
	return code
}

// organize runs diagnostics or the pipeline and returns the process exit code.
func organize(cfg *config.Config, log *logging.Logger, out io.Writer) int {
	display.PrintBanner(out)

	if cfg.CheckOnly {
		if !check.RunCheck(cfg, log) {
			return 1
		}
		return 0
	}

	if err := check.CheckDeps(cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("=== organize v%s (%s) ===", version, commit)
	log.Info("Dir: %s", cfg.WorkDir)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be moved or renamed")
	}
	if path := log.FilePath(); path != "" {
		log.Info("Log: %s", path)
	}
	log.Info("")

	// SIGINT/SIGTERM stop the run after the current file.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, finishing current file...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return exitCode(pipeline.Run(ctx, cfg, log), cfg.StrictMode)
}

// exitCode maps a finished run to the process exit status.
func exitCode(stats pipeline.RunStats, strict bool) int {
	switch {
	case stats.Interrupted:
		return exitInterrupted
	case strict && stats.Failed() > 0:
		return 1
	}
	return 0
}
