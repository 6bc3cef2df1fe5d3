// Package subtitle implements the subtitle renamer: release subtitles named
// "<show> - <token> ...<ext>" are shortened to "<token><ext>", which is the
// name the mux step looks for.
package subtitle

import (
	"context"
	"path/filepath"

	"github.com/haifuri/organize/internal/config"
	"github.com/haifuri/organize/internal/fileops"
	"github.com/haifuri/organize/internal/naming"
)

// Logger is the minimal logging interface needed by the renamer.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Outcome is the per-file result of a rename attempt.
type Outcome int

const (
	Renamed   Outcome = iota // Renamed (or would be, in a dry run).
	Unmatched                // Name does not contain the show pattern.
	Filtered                 // Token not in the episode selection.
	Unchanged                // Already carries the short name.
	Skipped                  // Target exists and the policy is skip.
	Failed                   // The rename itself failed.
)

// Result counts what a renamer run did.
type Result struct {
	Scanned   int
	Renamed   int
	Unmatched int
	Filtered  int
	Unchanged int
	Skipped   int
	Failed    int
	Ready     []int // Episode numbers present as NN<ext> after the run.
}

func (r *Result) count(o Outcome) {
	switch o {
	case Renamed:
		r.Renamed++
	case Unmatched:
		r.Unmatched++
	case Filtered:
		r.Filtered++
	case Unchanged:
		r.Unchanged++
	case Skipped:
		r.Skipped++
	case Failed:
		r.Failed++
	}
}

// Renamer shortens subtitle filenames in the working directory.
type Renamer struct {
	cfg      *config.Config
	log      Logger
	resolver *naming.CollisionResolver
	pattern  *naming.TokenPattern
	episodes naming.EpisodeSet
}

// NewRenamer builds a renamer for cfg. It fails only when cfg.Episodes is
// not a valid selection.
func NewRenamer(cfg *config.Config, log Logger, resolver *naming.CollisionResolver) (*Renamer, error) {
	episodes, err := naming.ParseEpisodes(cfg.Episodes)
	if err != nil {
		return nil, err
	}
	return &Renamer{
		cfg:      cfg,
		log:      log,
		resolver: resolver,
		pattern:  naming.NewTokenPattern(cfg.ShowName),
		episodes: episodes,
	}, nil
}

// Run renames every matching subtitle file. Each file is handled on its own;
// a failure is logged and the run moves on.
func (r *Renamer) Run(ctx context.Context) Result {
	var res Result

	files, err := Files(r.cfg.WorkDir, r.cfg.SubtitleExt)
	if err != nil {
		r.log.Warn("Cannot read %s: %v", r.cfg.WorkDir, err)
		return res
	}
	if len(files) == 0 {
		r.log.Info("No *%s files found", r.cfg.SubtitleExt)
		return res
	}
	r.log.Info("Matching %d %s files against %q", len(files), r.cfg.SubtitleExt, r.pattern.String())

	final := make([]string, 0, len(files))
	for _, path := range files {
		if ctx.Err() != nil {
			r.log.Warn("Interrupted")
			break
		}
		res.Scanned++
		outcome, name := r.RenameFile(path)
		res.count(outcome)
		final = append(final, name)
	}

	res.Ready = naming.ReadyEpisodes(final, r.cfg.SubtitleExt)
	return res
}

// RenameFile processes one subtitle and returns the outcome along with the
// file's basename after the attempt.
func (r *Renamer) RenameFile(path string) (Outcome, string) {
	name := filepath.Base(path)

	token, ok := r.pattern.Extract(name)
	if !ok {
		r.log.Debug(r.cfg.Verbose, "  No match: %s", name)
		return Unmatched, name
	}
	if !r.episodes.Allows(token) {
		r.log.Debug(r.cfg.Verbose, "  Not selected (%s): %s", token, name)
		return Filtered, name
	}

	newName := token + r.cfg.SubtitleExt
	if newName == name {
		return Unchanged, name
	}

	dest := r.resolver.Resolve(path, filepath.Join(filepath.Dir(path), newName))
	if dest.Skip {
		r.log.Warn("  Skip (exists): %s -> %s", name, newName)
		return Skipped, name
	}
	newName = filepath.Base(dest.Path)

	if r.cfg.DryRun {
		r.log.Success("  [DRY] Would rename %s -> %s", name, newName)
		return Renamed, newName
	}

	if err := fileops.Move(path, dest.Path, dest.Overwrite); err != nil {
		r.resolver.Release(path, dest.Path)
		r.log.Warn("  Rename failed for %s: %v", name, err)
		return Failed, name
	}
	r.log.Success("  Renamed %s -> %s", name, newName)
	return Renamed, newName
}
