// Package check provides working-directory diagnostics (--check mode) and the
// pre-run validation (CheckDeps) performed before anything is moved.
package check

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/haifuri/organize/internal/config"
	"github.com/haifuri/organize/internal/fonts"
	"github.com/haifuri/organize/internal/naming"
	"github.com/haifuri/organize/internal/subtitle"
)

// Sentinel errors returned by CheckDeps.
var (
	ErrWorkDirMissing = errors.New("working directory not found")
	ErrNotDirectory   = errors.New("working directory is not a directory")
	ErrFontsDirIsFile = errors.New("fonts path exists and is not a directory")
)

// muxTool is the follow-up mux step's binary. Only reported, never required.
const muxTool = "mkvmerge"

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// stays testable with a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// CheckDeps verifies the working directory exists and is a directory, and
// that the fonts path is not occupied by a regular file.
func CheckDeps(cfg *config.Config) error {
	fi, err := os.Stat(cfg.WorkDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", cfg.WorkDir, ErrWorkDirMissing)
		}
		return fmt.Errorf("%s: %w", cfg.WorkDir, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s: %w", cfg.WorkDir, ErrNotDirectory)
	}

	if cfg.CollectFonts {
		if fi, err := os.Stat(cfg.FontsPath()); err == nil && !fi.IsDir() {
			return fmt.Errorf("%s: %w", cfg.FontsPath(), ErrFontsDirIsFile)
		}
	}
	return nil
}

// RunCheck reports what a run would find in the working directory. It
// returns false when the directory could not be used at all.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Check: %s ===", cfg.WorkDir)

	if err := CheckDeps(cfg); err != nil {
		log.Error("%v", err)
		return false
	}

	ok := checkWritable(cfg.WorkDir, log)
	checkFontsDir(cfg, log)
	checkAttachments(cfg, log)
	checkSubtitles(cfg, log)
	checkMuxTool(log)
	return ok
}

// checkWritable creates and removes a probe file in dir.
func checkWritable(dir string, log Logger) bool {
	f, err := os.CreateTemp(dir, ".organize-check-*")
	if err != nil {
		log.Error("Working directory not writable: %v", err)
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	log.Success("Working directory writable")
	return true
}

func checkFontsDir(cfg *config.Config, log Logger) {
	path := cfg.FontsPath()
	entries, err := os.ReadDir(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Info("Fonts directory %s does not exist yet (will be created)", path)
	case err != nil:
		log.Warn("Fonts directory %s unreadable: %v", path, err)
	default:
		log.Info("Fonts directory %s holds %d entries", path, len(entries))
	}
}

func checkAttachments(cfg *config.Config, log Logger) {
	dirs, err := fonts.AttachmentDirs(cfg.WorkDir, cfg.AttachmentsSuffix, cfg.FontsPath())
	if err != nil {
		log.Warn("Cannot scan for attachments: %v", err)
		return
	}
	if len(dirs) == 0 {
		log.Info("No *%s directories", cfg.AttachmentsSuffix)
		return
	}
	total := 0
	for _, dir := range dirs {
		files, err := fonts.FontFiles(dir, cfg.FontExtensions)
		if err != nil {
			log.Warn("  %s: %v", filepath.Base(dir), err)
			continue
		}
		total += len(files)
		log.Info("  %s: %d fonts", filepath.Base(dir), len(files))
	}
	log.Info("Attachment directories: %d, fonts to collect: %d", len(dirs), total)
}

func checkSubtitles(cfg *config.Config, log Logger) {
	files, err := subtitle.Files(cfg.WorkDir, cfg.SubtitleExt)
	if err != nil {
		log.Warn("Cannot scan for subtitles: %v", err)
		return
	}
	pattern := naming.NewTokenPattern(cfg.ShowName)
	matched := 0
	var names []string
	for _, path := range files {
		name := filepath.Base(path)
		names = append(names, name)
		if token, ok := pattern.Extract(name); ok {
			matched++
			log.Debug(cfg.Verbose, "  %s -> %s%s", name, token, cfg.SubtitleExt)
		}
	}
	log.Info("Subtitles: %d %s files, %d match %q", len(files), cfg.SubtitleExt, matched, pattern.String())
	log.Info("Episodes ready now: %s", naming.FormatEpisodes(naming.ReadyEpisodes(names, cfg.SubtitleExt)))
}

func checkMuxTool(log Logger) {
	if path, err := exec.LookPath(muxTool); err == nil {
		log.Success("%s: %s", muxTool, path)
		return
	}
	log.Warn("%s not found on PATH (needed for the mux step, not for organizing)", muxTool)
}
