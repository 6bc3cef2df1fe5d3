package fonts

import (
	"context"
	"os"
	"path/filepath"

	"github.com/haifuri/organize/internal/config"
	"github.com/haifuri/organize/internal/fileops"
	"github.com/haifuri/organize/internal/naming"
)

// Logger is the minimal logging interface needed by the collector.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Result counts what a collector run did.
type Result struct {
	Dirs    int   // Attachment directories found.
	Moved   int   // Fonts moved (or that would be moved in a dry run).
	Skipped int   // Fonts left in place because the target was taken.
	Failed  int   // Fonts whose move failed.
	Bytes   int64 // Total size of moved fonts.
}

// Collector moves font attachments into the fonts directory.
type Collector struct {
	cfg      *config.Config
	log      Logger
	resolver *naming.CollisionResolver
	ready    bool // fonts directory exists (or dry run)
}

// NewCollector returns a collector sharing resolver with the rest of the run.
func NewCollector(cfg *config.Config, log Logger, resolver *naming.CollisionResolver) *Collector {
	return &Collector{cfg: cfg, log: log, resolver: resolver}
}

// Run ensures the fonts directory exists and moves every font found in the
// attachment directories into it. It never aborts: unreadable directories
// are skipped and failed moves are counted.
func (c *Collector) Run(ctx context.Context) Result {
	var res Result
	fontsPath := c.cfg.FontsPath()

	c.ensureFontsDir(fontsPath)

	dirs, err := AttachmentDirs(c.cfg.WorkDir, c.cfg.AttachmentsSuffix, fontsPath)
	if err != nil {
		c.log.Warn("Cannot read %s: %v", c.cfg.WorkDir, err)
		return res
	}
	res.Dirs = len(dirs)
	if len(dirs) == 0 {
		c.log.Info("No *%s directories found", c.cfg.AttachmentsSuffix)
		return res
	}

	for _, dir := range dirs {
		if ctx.Err() != nil {
			c.log.Warn("Interrupted")
			break
		}
		c.log.Info("Found %s", filepath.Base(dir))

		files, err := FontFiles(dir, c.cfg.FontExtensions)
		if err != nil {
			c.log.Warn("Cannot read %s, skipping: %v", filepath.Base(dir), err)
			continue
		}
		if len(files) == 0 {
			c.log.Debug(c.cfg.Verbose, "  No fonts in %s", filepath.Base(dir))
			continue
		}
		for _, src := range files {
			if ctx.Err() != nil {
				break
			}
			c.moveFont(src, fontsPath, &res)
		}
	}
	return res
}

func (c *Collector) ensureFontsDir(fontsPath string) {
	if c.cfg.DryRun {
		if !fileops.Exists(fontsPath) {
			c.log.Info("[DRY] Would create %s", fontsPath)
		}
		c.ready = true
		return
	}
	if err := os.MkdirAll(fontsPath, 0o755); err != nil {
		c.log.Error("Cannot create fonts directory %s: %v", fontsPath, err)
		c.ready = false
		return
	}
	c.ready = true
}

// moveFont relocates one font file, honoring the collision policy.
func (c *Collector) moveFont(src, fontsPath string, res *Result) {
	name := filepath.Base(src)
	rel := filepath.Join(filepath.Base(filepath.Dir(src)), name)

	if !c.ready {
		c.log.Warn("  Not moved (no fonts directory): %s", rel)
		res.Failed++
		return
	}

	var size int64
	if fi, err := os.Stat(src); err == nil {
		size = fi.Size()
	}

	dest := c.resolver.Resolve(src, filepath.Join(fontsPath, name))
	if dest.Skip {
		c.log.Warn("  Skip (exists): %s", filepath.Join(filepath.Base(fontsPath), name))
		res.Skipped++
		return
	}
	target := filepath.Join(filepath.Base(fontsPath), filepath.Base(dest.Path))

	if c.cfg.DryRun {
		c.log.Success("  [DRY] Would move %s -> %s", rel, target)
		res.Moved++
		res.Bytes += size
		return
	}

	if err := fileops.Move(src, dest.Path, dest.Overwrite); err != nil {
		c.resolver.Release(src, dest.Path)
		c.log.Warn("  Move failed for %s: %v", rel, err)
		res.Failed++
		return
	}

	switch {
	case dest.Overwrite:
		c.log.Success("  Moved %s -> %s (replaced)", rel, target)
	case dest.Suffixed:
		c.log.Success("  Moved %s -> %s (renamed, target existed)", rel, target)
	default:
		c.log.Success("  Moved %s -> %s", rel, target)
	}
	res.Moved++
	res.Bytes += size
}
