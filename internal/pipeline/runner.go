package pipeline

import (
	"context"
	"strings"

	"github.com/haifuri/organize/internal/config"
	"github.com/haifuri/organize/internal/display"
	"github.com/haifuri/organize/internal/fonts"
	"github.com/haifuri/organize/internal/naming"
	"github.com/haifuri/organize/internal/subtitle"
)

// Logger is the logging surface shared by every step.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Run is the top-level entry point. It collects fonts, then renames
// subtitles, and returns aggregate stats. Per-file failures are counted and
// logged; nothing aborts the run. Callers should reject an invalid episode
// selection before calling Run; if one slips through, the subtitle step is
// skipped with an error.
func Run(ctx context.Context, cfg *config.Config, log Logger) RunStats {
	var stats RunStats

	resolver := naming.NewCollisionResolver(cfg.Collision)

	var renamer *subtitle.Renamer
	if cfg.RenameSubs {
		r, err := subtitle.NewRenamer(cfg, log, resolver)
		if err != nil {
			log.Error("Invalid episode selection %q: %v", cfg.Episodes, err)
		}
		renamer = r
	}

	logBatchHeader(cfg, log, resolver)

	if cfg.CollectFonts {
		log.Info("--- Fonts ---")
		stats.Fonts = fonts.NewCollector(cfg, log, resolver).Run(ctx)
		log.Info("")
	}

	if renamer != nil && ctx.Err() == nil {
		log.Info("--- Subtitles ---")
		stats.Subtitles = renamer.Run(ctx)
		log.Info("")
	}

	stats.Interrupted = ctx.Err() != nil
	logSummary(cfg, log, &stats)
	return stats
}

func logBatchHeader(cfg *config.Config, log Logger, resolver *naming.CollisionResolver) {
	log.Info("Fonts: *%s/{%s} -> %s", cfg.AttachmentsSuffix, strings.Join(cfg.FontExtensions, ","), cfg.FontsPath())
	log.Info("Subtitles: %s - <token>%s -> <token>%s", cfg.ShowName, cfg.SubtitleExt, cfg.SubtitleExt)
	if set, err := naming.ParseEpisodes(cfg.Episodes); err == nil && !set.All() {
		log.Info("Episodes: %s", naming.FormatEpisodes(set.Sorted()))
	}
	log.Info("On collision: %s", resolver.Policy())
	if !cfg.CollectFonts {
		log.Info("Font collection disabled")
	}
	if !cfg.RenameSubs {
		log.Info("Subtitle renaming disabled")
	}
	log.Info("")
}

func logSummary(cfg *config.Config, log Logger, stats *RunStats) {
	log.Info("==============================")
	if stats.Interrupted {
		log.Warn("Run interrupted before completion")
	}

	if cfg.CollectFonts {
		f := stats.Fonts
		log.Info("Fonts: %s moved (%s), %d skipped, %d failed, from %s",
			display.Plural(f.Moved, "font"), display.FormatBytes(f.Bytes),
			f.Skipped, f.Failed, display.Plural(f.Dirs, "folder"))
	}
	if cfg.RenameSubs {
		s := stats.Subtitles
		log.Info("Subtitles: %d renamed, %d skipped, %d failed, %d unmatched, %d already named",
			s.Renamed, s.Skipped, s.Failed, s.Unmatched, s.Unchanged)
		if s.Filtered > 0 {
			log.Info("  %d outside the episode selection", s.Filtered)
		}
		log.Info("Episodes ready: %s", naming.FormatEpisodes(s.Ready))
	}

	switch {
	case cfg.DryRun:
		log.Warn("Dry run: nothing was changed (%s planned)", display.Plural(stats.Changed(), "change"))
	case stats.Failed() > 0:
		log.Warn("Done with %s, %s", display.Plural(stats.Failed(), "failure"), display.Plural(stats.Changed(), "change"))
	default:
		log.Success("Done, %s", display.Plural(stats.Changed(), "change"))
	}
}
