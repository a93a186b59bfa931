package downloader

import (
	"os"
	"path/filepath"
	"strings"
)

// findDownloaded picks the produced media file out of a staging directory,
// trying extensions in preference order.
func findDownloaded(dir string, exts []string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, ext := range exts {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if strings.EqualFold(filepath.Ext(e.Name()), ext) {
				return filepath.Join(dir, e.Name())
			}
		}
	}
	return ""
}

// FileSize returns the on-disk size, or 0 when the file is unreadable.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
