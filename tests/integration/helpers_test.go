//go:build integration

package integration

import (
	"os"
	"path/filepath"
)

// findRepoRoot walks up from the working directory to the directory
// containing go.mod.
func findRepoRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}

// fixtureURL returns a file:// URL for a page under tests/assets.
func fixtureURL(name string) string {
	return "file://" + filepath.Join(findRepoRoot(), "tests", "assets", name)
}
