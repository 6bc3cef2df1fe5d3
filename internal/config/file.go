package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
)

// FileConfig is the subset of Config that can be supplied by a config file
// or ORGANIZE_* environment variables. Empty strings and false booleans mean
// "not set"; booleans can only switch a behavior on.
type FileConfig struct {
	WorkDir           string   `yaml:"work_dir" json:"work_dir" toml:"work_dir" env:"ORGANIZE_WORK_DIR"`
	FontsDir          string   `yaml:"fonts_dir" json:"fonts_dir" toml:"fonts_dir" env:"ORGANIZE_FONTS_DIR"`
	AttachmentsSuffix string   `yaml:"attachments_suffix" json:"attachments_suffix" toml:"attachments_suffix" env:"ORGANIZE_ATTACHMENTS_SUFFIX"`
	FontExtensions    []string `yaml:"font_extensions" json:"font_extensions" toml:"font_extensions" env:"ORGANIZE_FONT_EXTENSIONS" env-separator:","`
	SubtitleExt       string   `yaml:"subtitle_ext" json:"subtitle_ext" toml:"subtitle_ext" env:"ORGANIZE_SUBTITLE_EXT"`
	ShowName          string   `yaml:"show_name" json:"show_name" toml:"show_name" env:"ORGANIZE_SHOW_NAME"`
	Episodes          string   `yaml:"episodes" json:"episodes" toml:"episodes" env:"ORGANIZE_EPISODES"`
	Collision         string   `yaml:"collision" json:"collision" toml:"collision" env:"ORGANIZE_COLLISION"`
	Color             string   `yaml:"color" json:"color" toml:"color" env:"ORGANIZE_COLOR"`
	Pause             string   `yaml:"pause" json:"pause" toml:"pause" env:"ORGANIZE_PAUSE"`
	LogFile           string   `yaml:"log_file" json:"log_file" toml:"log_file" env:"ORGANIZE_LOG_FILE"`
	DryRun            bool     `yaml:"dry_run" json:"dry_run" toml:"dry_run" env:"ORGANIZE_DRY_RUN"`
	Strict            bool     `yaml:"strict" json:"strict" toml:"strict" env:"ORGANIZE_STRICT"`
	Verbose           bool     `yaml:"verbose" json:"verbose" toml:"verbose" env:"ORGANIZE_VERBOSE"`
	NoFonts           bool     `yaml:"no_fonts" json:"no_fonts" toml:"no_fonts" env:"ORGANIZE_NO_FONTS"`
	NoSubs            bool     `yaml:"no_subs" json:"no_subs" toml:"no_subs" env:"ORGANIZE_NO_SUBS"`
}

// LoadFile reads path (YAML, JSON or TOML, chosen by extension) and then the
// environment on top of it. With an empty path only the environment is read.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	if path == "" {
		if err := cleanenv.ReadEnv(&fc); err != nil {
			return fc, fmt.Errorf("failed to read environment - %w", err)
		}
		return fc, nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return fc, fmt.Errorf("expand %q: %w", path, err)
	}
	if err := cleanenv.ReadConfig(expanded, &fc); err != nil {
		return fc, fmt.Errorf("failed to load configuration %s - %w", expanded, err)
	}
	return fc, nil
}

// apply copies set fields into cfg unless the matching flag was given on the
// command line. explicit holds flag names as reported by flag.FlagSet.Visit,
// plus "work_dir" when the positional argument was given.
func (fc FileConfig) apply(cfg *Config, explicit map[string]bool) {
	set := func(names ...string) bool {
		for _, n := range names {
			if explicit[n] {
				return true
			}
		}
		return false
	}

	if fc.WorkDir != "" && !set("work_dir") {
		cfg.WorkDir = NormalizeDirArg(fc.WorkDir)
	}
	if fc.FontsDir != "" && !set("fonts-dir") {
		cfg.FontsDir = fc.FontsDir
	}
	if fc.AttachmentsSuffix != "" && !set("suffix") {
		cfg.AttachmentsSuffix = fc.AttachmentsSuffix
	}
	if len(fc.FontExtensions) > 0 && !set("font-ext") {
		cfg.FontExtensions = append([]string(nil), fc.FontExtensions...)
	}
	if fc.SubtitleExt != "" && !set("sub-ext") {
		cfg.SubtitleExt = fc.SubtitleExt
	}
	if fc.ShowName != "" && !set("show") {
		cfg.ShowName = fc.ShowName
	}
	if fc.Episodes != "" && !set("episodes", "e") {
		cfg.Episodes = fc.Episodes
	}
	if fc.Collision != "" && !set("collision") {
		cfg.Collision = CollisionPolicy(strings.ToLower(fc.Collision))
	}
	if fc.Color != "" && !set("color", "no-color") {
		cfg.ColorMode = ColorMode(strings.ToLower(fc.Color))
	}
	if fc.Pause != "" && !set("pause", "no-pause") {
		cfg.Pause = PauseMode(strings.ToLower(fc.Pause))
	}
	if fc.LogFile != "" && !set("log", "l") {
		cfg.LogFile = fc.LogFile
	}
	if fc.DryRun {
		cfg.DryRun = true
	}
	if fc.Strict {
		cfg.StrictMode = true
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
	if fc.NoFonts {
		cfg.CollectFonts = false
	}
	if fc.NoSubs {
		cfg.RenameSubs = false
	}
}
