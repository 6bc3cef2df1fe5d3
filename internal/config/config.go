// Package config holds runtime configuration: defaults, CLI flag parsing,
// the optional config file, and validation. Defaults match the layout the
// release's extraction step produces.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// CollisionPolicy decides what happens when a move or rename target exists.
type CollisionPolicy string

const (
	CollisionSkip      CollisionPolicy = "skip"      // Warn and leave the source in place (default).
	CollisionOverwrite CollisionPolicy = "overwrite" // Replace the existing target.
	CollisionSuffix    CollisionPolicy = "suffix"    // Use "<stem> - dupN<ext>".
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// PauseMode controls the "Press Enter" prompt at the end of a run.
type PauseMode string

const (
	PauseAuto   PauseMode = "auto"   // Pause when stdin and stdout are terminals (default).
	PauseAlways PauseMode = "always" // Always wait for Enter.
	PauseNever  PauseMode = "never"  // Exit immediately.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by the optional config file, then by [ParseFlags].
type Config struct {
	// Paths.
	WorkDir    string // Default: "." (set from the optional positional arg).
	FontsDir   string // Default: "fonts", relative to WorkDir.
	ConfigFile string // Optional YAML/JSON/TOML file.

	// Matching rules.
	AttachmentsSuffix string   // Default: "_Attachments" (case-insensitive).
	FontExtensions    []string // Default: ".ttf", ".otf".
	SubtitleExt       string   // Default: ".ass".
	ShowName          string   // Default: "High School Fleet".
	Episodes          string   // Episode selection for renames ("" or "all" means every token).

	// Behavior flags.
	Collision    CollisionPolicy // Default: "skip".
	DryRun       bool
	StrictMode   bool // Exit non-zero when any move or rename failed.
	CollectFonts bool // Default: true. Cleared by --no-fonts.
	RenameSubs   bool // Default: true. Cleared by --no-subs.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	Pause     PauseMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with the defaults for a High School Fleet
// release. Used as the base before the config file and [ParseFlags].
func DefaultConfig() Config {
	return Config{
		WorkDir:           ".",
		FontsDir:          "fonts",
		AttachmentsSuffix: "_Attachments",
		FontExtensions:    []string{".ttf", ".otf"},
		SubtitleExt:       ".ass",
		ShowName:          "High School Fleet",
		Collision:         CollisionSkip,
		CollectFonts:      true,
		RenameSubs:        true,
		ColorMode:         ColorAuto,
		Pause:             PauseAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// NormalizeExt lower-cases ext and ensures a leading dot ("TTF" -> ".ttf").
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// FontsPath returns the fonts directory joined onto WorkDir unless it is
// already absolute.
func (c *Config) FontsPath() string {
	if filepath.IsAbs(c.FontsDir) {
		return c.FontsDir
	}
	return filepath.Join(c.WorkDir, c.FontsDir)
}

// Validate checks enum fields and the matching rules. It also normalizes
// extensions in place.
func (c *Config) Validate() error {
	switch c.Collision {
	case CollisionSkip, CollisionOverwrite, CollisionSuffix:
		// valid
	default:
		return errors.New("invalid collision policy (use 'skip', 'overwrite' or 'suffix')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	switch c.Pause {
	case PauseAuto, PauseAlways, PauseNever:
		// valid
	default:
		return errors.New("invalid pause mode (use 'auto', 'always' or 'never')")
	}

	if c.WorkDir == "" {
		return errors.New("working directory must not be empty")
	}
	if strings.TrimSpace(c.FontsDir) == "" {
		return errors.New("fonts directory must not be empty")
	}
	if strings.TrimSpace(c.AttachmentsSuffix) == "" {
		return errors.New("attachments suffix must not be empty")
	}
	if strings.TrimSpace(c.ShowName) == "" {
		return errors.New("show name must not be empty")
	}

	exts := make([]string, 0, len(c.FontExtensions))
	for _, e := range c.FontExtensions {
		if n := NormalizeExt(e); n != "" {
			exts = append(exts, n)
		}
	}
	if len(exts) == 0 {
		return errors.New("need at least one font extension")
	}
	c.FontExtensions = exts

	c.SubtitleExt = NormalizeExt(c.SubtitleExt)
	if c.SubtitleExt == "" {
		return errors.New("subtitle extension must not be empty")
	}
	if !c.CollectFonts && !c.RenameSubs && !c.CheckOnly {
		return fmt.Errorf("nothing to do: both --no-fonts and --no-subs were given")
	}
	return nil
}
