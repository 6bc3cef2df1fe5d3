package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haifuri/organize/internal/config"
	"github.com/haifuri/organize/internal/logging"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// release lays out a typical unpacked release directory.
func release(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "E01_Attachments"), "Font.ttf")
	touch(t, filepath.Join(dir, "E01_Attachments"), "cover.jpg")
	touch(t, filepath.Join(dir, "E02_Attachments"), "Other.OTF")
	touch(t, dir, "High School Fleet - 01.ass")
	touch(t, dir, "High School Fleet - NF.ass")
	touch(t, dir, "Random.ass")
	return dir
}

func run(t *testing.T, cfg config.Config) (RunStats, string) {
	t.Helper()
	require.NoError(t, cfg.Validate())
	cfg.ColorMode = config.ColorNever
	var out, errOut bytes.Buffer
	log, err := logging.NewLoggerTo(&cfg, &out, &errOut)
	require.NoError(t, err)
	defer log.Close()
	stats := Run(context.Background(), &cfg, log)
	return stats, out.String() + errOut.String()
}

func testConfig(dir string) config.Config {
	cfg := config.DefaultConfig()
	cfg.WorkDir = dir
	return cfg
}

func TestRun_OrganizesRelease(t *testing.T) {
	dir := release(t)

	stats, out := run(t, testConfig(dir))

	assert.Equal(t, 2, stats.Fonts.Moved)
	assert.Equal(t, 2, stats.Subtitles.Renamed)
	assert.Equal(t, 1, stats.Subtitles.Unmatched)
	assert.Zero(t, stats.Failed())
	assert.Equal(t, 4, stats.Changed())

	assert.True(t, exists(filepath.Join(dir, "fonts", "Font.ttf")))
	assert.True(t, exists(filepath.Join(dir, "fonts", "Other.OTF")))
	assert.True(t, exists(filepath.Join(dir, "E01_Attachments", "cover.jpg")))
	assert.True(t, exists(filepath.Join(dir, "01.ass")))
	assert.True(t, exists(filepath.Join(dir, "NF.ass")))
	assert.True(t, exists(filepath.Join(dir, "Random.ass")))

	assert.Contains(t, out, "Episodes ready: 01")
	assert.Contains(t, out, "[SUCCESS] Done, 4 changes")
}

func TestRun_SecondRunChangesNothing(t *testing.T) {
	dir := release(t)
	_, _ = run(t, testConfig(dir))

	stats, _ := run(t, testConfig(dir))
	assert.Zero(t, stats.Changed())
	assert.Zero(t, stats.Failed())
	assert.Zero(t, stats.Fonts.Skipped)
	assert.Zero(t, stats.Subtitles.Skipped)
}

func TestRun_DryRunTouchesNothing(t *testing.T) {
	dir := release(t)
	cfg := testConfig(dir)
	cfg.DryRun = true

	stats, out := run(t, cfg)

	assert.Equal(t, 2, stats.Fonts.Moved)
	assert.Equal(t, 2, stats.Subtitles.Renamed)
	assert.False(t, exists(filepath.Join(dir, "fonts")))
	assert.True(t, exists(filepath.Join(dir, "E01_Attachments", "Font.ttf")))
	assert.True(t, exists(filepath.Join(dir, "High School Fleet - 01.ass")))
	assert.Contains(t, out, "Dry run: nothing was changed (4 changes planned)")
}

func TestRun_StepsCanBeDisabled(t *testing.T) {
	t.Run("no fonts", func(t *testing.T) {
		dir := release(t)
		cfg := testConfig(dir)
		cfg.CollectFonts = false
		stats, _ := run(t, cfg)

		assert.Zero(t, stats.Fonts.Moved)
		assert.False(t, exists(filepath.Join(dir, "fonts")))
		assert.True(t, exists(filepath.Join(dir, "01.ass")))
	})

	t.Run("no subs", func(t *testing.T) {
		dir := release(t)
		cfg := testConfig(dir)
		cfg.RenameSubs = false
		stats, out := run(t, cfg)

		assert.Zero(t, stats.Subtitles.Scanned)
		assert.True(t, exists(filepath.Join(dir, "fonts", "Font.ttf")))
		assert.True(t, exists(filepath.Join(dir, "High School Fleet - 01.ass")))
		assert.NotContains(t, out, "Episodes ready")
	})
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	dir := release(t)
	cfg := testConfig(dir)
	require.NoError(t, cfg.Validate())
	cfg.ColorMode = config.ColorNever

	var out bytes.Buffer
	log, err := logging.NewLoggerTo(&cfg, &out, &out)
	require.NoError(t, err)
	defer log.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats := Run(ctx, &cfg, log)

	assert.True(t, stats.Interrupted)
	assert.Zero(t, stats.Changed())
	assert.True(t, exists(filepath.Join(dir, "High School Fleet - 01.ass")))
}

func TestRun_FailuresAreCounted(t *testing.T) {
	dir := release(t)
	// A regular file where the fonts directory should be.
	touch(t, dir, "fonts")

	stats, out := run(t, testConfig(dir))

	assert.Equal(t, 2, stats.Fonts.Failed)
	assert.Equal(t, 2, stats.Failed())
	assert.Equal(t, 2, stats.Subtitles.Renamed, "subtitle step still runs")
	assert.Contains(t, out, "Done with 2 failures, 2 changes")
}

func TestRun_HeaderReportsSelection(t *testing.T) {
	dir := release(t)
	cfg := testConfig(dir)
	cfg.Episodes = "3,1-2"
	cfg.Collision = config.CollisionSuffix

	stats, out := run(t, cfg)

	assert.Contains(t, out, "Episodes: 01-03")
	assert.Contains(t, out, "On collision: suffix")
	assert.Equal(t, 1, stats.Subtitles.Renamed)
	assert.Equal(t, 1, stats.Subtitles.Filtered)
}

func TestRunStats(t *testing.T) {
	var s RunStats
	s.Fonts.Failed, s.Subtitles.Failed = 1, 2
	s.Fonts.Moved, s.Subtitles.Renamed = 3, 4
	assert.Equal(t, 3, s.Failed())
	assert.Equal(t, 7, s.Changed())
}
