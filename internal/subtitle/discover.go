package subtitle

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Files returns the regular files directly in workDir whose extension
// matches ext case-insensitively. The result is sorted for stable log
// output; nothing depends on the order.
func Files(workDir, ext string) ([]string, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			files = append(files, filepath.Join(workDir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
