package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Locate walks upward from startDir looking for fileName, checking the
// root once before giving up. It returns the absolute path of the first
// match or a NotFoundError.
func Locate(startDir, fileName string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	// filepath.Dir is a fixed point at the root, so the walk is bounded
	// by the depth of the start directory.
	maxDepth := strings.Count(dir, string(filepath.Separator)) + 1

	for i := 0; i < maxDepth; i++ {
		candidate := filepath.Join(dir, fileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", &NotFoundError{FileName: fileName, StartDir: startDir}
}
