package fonts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haifuri/organize/internal/config"
	"github.com/haifuri/organize/internal/naming"
)

// recordLogger captures log lines for assertions.
type recordLogger struct{ lines []string }

func (r *recordLogger) add(level, format string, args ...interface{}) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}
func (r *recordLogger) Info(f string, a ...interface{})    { r.add("INFO", f, a...) }
func (r *recordLogger) Success(f string, a ...interface{}) { r.add("SUCCESS", f, a...) }
func (r *recordLogger) Warn(f string, a ...interface{})    { r.add("WARN", f, a...) }
func (r *recordLogger) Error(f string, a ...interface{})   { r.add("ERROR", f, a...) }
func (r *recordLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		r.add("DEBUG", f, a...)
	}
}

func (r *recordLogger) contains(level, substr string) bool {
	for _, l := range r.lines {
		if strings.HasPrefix(l, level+" ") && strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func runCollector(t *testing.T, cfg config.Config) (Result, *recordLogger) {
	t.Helper()
	require.NoError(t, cfg.Validate())
	log := &recordLogger{}
	c := NewCollector(&cfg, log, naming.NewCollisionResolver(cfg.Collision))
	return c.Run(context.Background()), log
}

func testConfig(dir string) config.Config {
	cfg := config.DefaultConfig()
	cfg.WorkDir = dir
	return cfg
}

func TestCollector_MovesFonts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Episode01_Attachments", "font1.ttf"), "f1")
	writeFile(t, filepath.Join(dir, "Episode01_Attachments", "font2.OTF"), "f2")
	writeFile(t, filepath.Join(dir, "Episode02_Attachments", "font3.otf"), "f3")

	res, log := runCollector(t, testConfig(dir))

	assert.Equal(t, 2, res.Dirs)
	assert.Equal(t, 3, res.Moved)
	assert.Equal(t, int64(6), res.Bytes)
	assert.Zero(t, res.Failed)
	for _, name := range []string{"font1.ttf", "font2.OTF", "font3.otf"} {
		assert.True(t, exists(filepath.Join(dir, "fonts", name)), name)
	}
	assert.False(t, exists(filepath.Join(dir, "Episode01_Attachments", "font1.ttf")))
	assert.True(t, log.contains("INFO", "Found Episode01_Attachments"))
}

func TestCollector_LeavesOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Ep01_Attachments", "cover.jpg"), "img")
	writeFile(t, filepath.Join(dir, "Ep01_Attachments", "nested", "deep.ttf"), "deep")
	writeFile(t, filepath.Join(dir, "Extras", "stray.ttf"), "stray")
	writeFile(t, filepath.Join(dir, "loose.ttf"), "loose")

	res, _ := runCollector(t, testConfig(dir))

	assert.Equal(t, 1, res.Dirs)
	assert.Zero(t, res.Moved)
	assert.True(t, exists(filepath.Join(dir, "Ep01_Attachments", "cover.jpg")))
	assert.True(t, exists(filepath.Join(dir, "Ep01_Attachments", "nested", "deep.ttf")))
	assert.True(t, exists(filepath.Join(dir, "Extras", "stray.ttf")))
	assert.True(t, exists(filepath.Join(dir, "loose.ttf")))
	assert.True(t, exists(filepath.Join(dir, "fonts")), "fonts dir is created even with nothing to move")
}

func TestCollector_NoAttachmentDirs(t *testing.T) {
	dir := t.TempDir()
	res, log := runCollector(t, testConfig(dir))

	assert.Zero(t, res.Dirs)
	assert.True(t, exists(filepath.Join(dir, "fonts")))
	assert.True(t, log.contains("INFO", "No *_Attachments directories found"))
}

func TestCollector_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Ep01_Attachments", "font.ttf"), "f")

	first, _ := runCollector(t, testConfig(dir))
	second, _ := runCollector(t, testConfig(dir))

	assert.Equal(t, 1, first.Moved)
	assert.Zero(t, second.Moved)
	assert.Zero(t, second.Skipped)
	assert.Zero(t, second.Failed)
	assert.True(t, exists(filepath.Join(dir, "fonts", "font.ttf")))
}

func TestCollector_CollisionPolicies(t *testing.T) {
	setup := func(t *testing.T) string {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "Ep01_Attachments", "font.ttf"), "one")
		writeFile(t, filepath.Join(dir, "Ep02_Attachments", "font.ttf"), "two")
		return dir
	}
	remaining := func(dir string) int {
		n := 0
		for _, d := range []string{"Ep01_Attachments", "Ep02_Attachments"} {
			if exists(filepath.Join(dir, d, "font.ttf")) {
				n++
			}
		}
		return n
	}

	t.Run("skip", func(t *testing.T) {
		dir := setup(t)
		cfg := testConfig(dir)
		cfg.Collision = config.CollisionSkip
		res, log := runCollector(t, cfg)

		assert.Equal(t, 1, res.Moved)
		assert.Equal(t, 1, res.Skipped)
		assert.Equal(t, 1, remaining(dir), "skipped font stays in its source directory")
		assert.True(t, log.contains("WARN", "Skip (exists)"))
	})

	t.Run("overwrite", func(t *testing.T) {
		dir := setup(t)
		cfg := testConfig(dir)
		cfg.Collision = config.CollisionOverwrite
		res, _ := runCollector(t, cfg)

		assert.Equal(t, 2, res.Moved)
		assert.Zero(t, remaining(dir))
		assert.True(t, exists(filepath.Join(dir, "fonts", "font.ttf")))
	})

	t.Run("suffix", func(t *testing.T) {
		dir := setup(t)
		cfg := testConfig(dir)
		cfg.Collision = config.CollisionSuffix
		res, _ := runCollector(t, cfg)

		assert.Equal(t, 2, res.Moved)
		assert.Zero(t, remaining(dir))
		assert.True(t, exists(filepath.Join(dir, "fonts", "font.ttf")))
		assert.True(t, exists(filepath.Join(dir, "fonts", "font - dup1.ttf")))
	})
}

func TestCollector_ExistingFontOnDisk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "fonts", "font.ttf"), "old")
	writeFile(t, filepath.Join(dir, "Ep01_Attachments", "font.ttf"), "new")

	res, _ := runCollector(t, testConfig(dir))
	assert.Equal(t, 1, res.Skipped)

	b, err := os.ReadFile(filepath.Join(dir, "fonts", "font.ttf"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(b))
}

func TestCollector_DryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Ep01_Attachments", "font.ttf"), "f")

	cfg := testConfig(dir)
	cfg.DryRun = true
	res, log := runCollector(t, cfg)

	assert.Equal(t, 1, res.Moved)
	assert.False(t, exists(filepath.Join(dir, "fonts")), "dry run creates nothing")
	assert.True(t, exists(filepath.Join(dir, "Ep01_Attachments", "font.ttf")))
	assert.True(t, log.contains("SUCCESS", "[DRY] Would move"))
}

func TestCollector_FontsDirUnavailable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "fonts"), "not a directory")
	writeFile(t, filepath.Join(dir, "Ep01_Attachments", "font.ttf"), "f")

	res, log := runCollector(t, testConfig(dir))

	assert.Equal(t, 1, res.Failed)
	assert.Zero(t, res.Moved)
	assert.True(t, exists(filepath.Join(dir, "Ep01_Attachments", "font.ttf")))
	assert.True(t, log.contains("ERROR", "Cannot create fonts directory"))
}

func TestCollector_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Ep01_Attachments", "font.ttf"), "f")

	cfg := testConfig(dir)
	require.NoError(t, cfg.Validate())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewCollector(&cfg, &recordLogger{}, naming.NewCollisionResolver(cfg.Collision)).Run(ctx)
	assert.Zero(t, res.Moved)
	assert.True(t, exists(filepath.Join(dir, "Ep01_Attachments", "font.ttf")))
}
