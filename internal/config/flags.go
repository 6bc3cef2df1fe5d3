package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into matching, behavior, display, and utility.
// Negated flags (e.g. --no-fonts) are applied after Parse so Config defaults hold unless set.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ErrHelpShown and ErrVersionShown are returned by ParseFlags after it has
// printed help or version text. Callers exit 0 on either.
var (
	ErrHelpShown    = errors.New("help shown")
	ErrVersionShown = errors.New("version shown")
)

// ConfigEnvVar names the environment variable that points at a config file
// when --config is not given.
const ConfigEnvVar = "ORGANIZE_CONFIG"

// ParseFlags parses args (without the program name) into cfg, then layers the
// optional config file and ORGANIZE_* environment underneath any flag the
// user set explicitly.
func ParseFlags(cfg *Config, args []string, version string) error {
	return parseFlags(cfg, args, version, os.Stdout, os.Stderr)
}

func parseFlags(cfg *Config, args []string, version string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("organize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, version) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineMatchingFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(stdout, version)
		return ErrHelpShown
	}
	if negated.showVersion {
		fmt.Fprintln(stdout, "organize v"+version)
		return ErrVersionShown
	}

	if err := parsePositionalArgs(fs, cfg); err != nil {
		return err
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if fs.NArg() > 0 {
		explicit["work_dir"] = true
	}

	path := cfg.ConfigFile
	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	fc, err := LoadFile(path)
	if err != nil {
		return err
	}
	fc.apply(cfg, explicit)
	if path != "" {
		cfg.ConfigFile = path
	}

	return expandPaths(cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. noFonts -> CollectFonts=false) or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	noFonts     bool
	noSubs      bool
	noPause     bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineMatchingFlags registers the directory, extension and show-name rules.
func defineMatchingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.FontsDir, "fonts-dir", cfg.FontsDir, "Destination directory for fonts")
	fs.StringVar(&cfg.AttachmentsSuffix, "suffix", cfg.AttachmentsSuffix, "Suffix of attachment directories")
	fs.Var(&extListValue{&cfg.FontExtensions}, "font-ext", "Comma-separated font extensions")
	fs.StringVar(&cfg.SubtitleExt, "sub-ext", cfg.SubtitleExt, "Subtitle file extension")
	fs.StringVar(&cfg.ShowName, "show", cfg.ShowName, "Show name preceding \" - <token>\" in subtitle names")
	fs.StringVar(&cfg.Episodes, "episodes", cfg.Episodes, "Only rename these episodes (e.g. 1-5,8 or all)")
	fs.StringVar(&cfg.Episodes, "e", cfg.Episodes, "Same as --episodes")
}

// defineBehaviorFlags registers dry-run, strict, collision policy and the step toggles.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not move or rename")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.StrictMode, "strict", false, "Exit 1 when any move or rename failed")
	fs.Var(&collisionValue{&cfg.Collision}, "collision", "Existing target policy: skip | overwrite | suffix")
	fs.BoolVar(&n.noFonts, "no-fonts", false, "Do not collect fonts")
	fs.BoolVar(&n.noSubs, "no-subs", false, "Do not rename subtitles")
}

// defineDisplayFlags registers --color, --no-color, --pause, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.Var(&pauseValue{&cfg.Pause}, "pause", "Wait for Enter at exit: auto | always | never")
	fs.BoolVar(&n.noPause, "no-pause", false, "Same as --pause never")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --config, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.ConfigFile, "config", "", "Config file (YAML, JSON or TOML)")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noFonts {
		cfg.CollectFonts = false
	}
	if n.noSubs {
		cfg.RenameSubs = false
	}
	if n.noPause {
		cfg.Pause = PauseNever
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets WorkDir from the optional positional arg.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 1:
		cfg.WorkDir = NormalizeDirArg(args[0])
		return nil
	default:
		return fmt.Errorf("expected at most one directory argument, got %d", len(args))
	}
}

// expandPaths resolves a leading "~" in user-supplied paths.
func expandPaths(cfg *Config) error {
	for _, p := range []*string{&cfg.WorkDir, &cfg.FontsDir, &cfg.LogFile, &cfg.ConfigFile} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// printUsage writes the help text. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "organize v" + version + " - collect release fonts and shorten subtitle names"},
		{"", ""},
		{"  organize [OPTIONS] [work_dir]", ""},
		{"", ""},
		{"Matching", ""},
		{"  --fonts-dir <dir>", "Font destination (default: fonts)"},
		{"  --suffix <text>", "Attachment directory suffix (default: _Attachments)"},
		{"  --font-ext <list>", "Font extensions (default: .ttf,.otf)"},
		{"  --sub-ext <ext>", "Subtitle extension (default: .ass)"},
		{"  --show <name>", "Show name in subtitle names (default: High School Fleet)"},
		{"  -e, --episodes <list>", "Only rename these episodes (e.g. 1-5,8)"},
		{"", ""},
		{"Behavior", ""},
		{"  --collision <policy>", "skip | overwrite | suffix (default: skip)"},
		{"  -d, --dry-run", "Preview only; do not move or rename"},
		{"  --strict", "Exit 1 when any move or rename failed"},
		{"  --no-fonts", "Skip the font step"},
		{"  --no-subs", "Skip the subtitle step"},
		{"", ""},
		{"Display", ""},
		{"  --pause <mode>", "auto | always | never (default: auto)"},
		{"  --no-pause", "Do not wait for Enter at exit"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "Config file (also $" + ConfigEnvVar + ")"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Diagnostics for the working directory"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types with flag.Var.

type collisionValue struct{ p *CollisionPolicy }

func (c *collisionValue) String() string {
	if c.p == nil {
		return ""
	}
	return string(*c.p)
}
func (c *collisionValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "skip":
		*c.p = CollisionSkip
	case "overwrite":
		*c.p = CollisionOverwrite
	case "suffix":
		*c.p = CollisionSuffix
	default:
		return fmt.Errorf("invalid collision policy %q (use 'skip', 'overwrite' or 'suffix')", s)
	}
	return nil
}

type pauseValue struct{ p *PauseMode }

func (v *pauseValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}
func (v *pauseValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*v.p = PauseAuto
	case "always":
		*v.p = PauseAlways
	case "never":
		*v.p = PauseNever
	default:
		return fmt.Errorf("invalid pause mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}

type extListValue struct{ p *[]string }

func (e *extListValue) String() string {
	if e.p == nil {
		return ""
	}
	return strings.Join(*e.p, ",")
}
func (e *extListValue) Set(s string) error {
	var exts []string
	for _, part := range strings.Split(s, ",") {
		if n := NormalizeExt(part); n != "" {
			exts = append(exts, n)
		}
	}
	if len(exts) == 0 {
		return fmt.Errorf("invalid extension list %q", s)
	}
	*e.p = exts
	return nil
}
