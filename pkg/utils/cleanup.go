package utils

import (
	"os"

	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
)

// CleanupDir removes a staging directory and everything in it.
func CleanupDir(path string) {
	if path == "" {
		return
	}
	if err := os.RemoveAll(path); err != nil {
		logger.Warn("Failed to cleanup staging directory", "path", path, "error", err)
	}
}

// RemoveFile deletes a single temporary file, tolerating absence.
func RemoveFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove temporary file", "path", path, "error", err)
	}
}
