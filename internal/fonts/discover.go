package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/haifuri/organize/internal/fileops"
)

// AttachmentDirs returns the immediate subdirectories of workDir whose names
// end with suffix (case-insensitive). fontsPath is excluded even if it
// matches. The result is sorted; callers must not rely on any other order.
func AttachmentDirs(workDir, suffix, fontsPath string) ([]string, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, err
	}

	lowerSuffix := strings.ToLower(suffix)
	var dirs []string
	for _, e := range entries {
		if !strings.HasSuffix(strings.ToLower(e.Name()), lowerSuffix) {
			continue
		}
		path := filepath.Join(workDir, e.Name())
		if !isDir(e, path) {
			continue
		}
		if fileops.SameFile(path, fontsPath) {
			continue
		}
		dirs = append(dirs, path)
	}
	sort.Strings(dirs)
	return dirs, nil
}

// FontFiles returns the regular files directly inside dir whose extension
// (case-insensitive) is one of exts. exts are lower-case with a leading dot.
func FontFiles(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if hasExt(e.Name(), exts) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range exts {
		if ext == want {
			return true
		}
	}
	return false
}

// isDir follows a symlinked entry so linked attachment folders still count.
func isDir(e os.DirEntry, path string) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
