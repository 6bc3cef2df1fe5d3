package subtitle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01.ass", "")
	writeFile(t, dir, "02.ASS", "")
	writeFile(t, dir, "03.ssa", "")
	writeFile(t, dir, "notes.txt", "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "04.ass"), 0o755))

	files, err := Files(dir, ".ass")
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"01.ass", "02.ASS"}, names)
}

func TestFiles_MissingDir(t *testing.T) {
	_, err := Files(filepath.Join(t.TempDir(), "missing"), ".ass")
	assert.Error(t, err)
}
