package axecheck

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

//go:generate curl -fsSL -o axe.min.js https://cdn.jsdelivr.net/npm/axe-core@4.10.3/axe.min.js

// bundledScript is the axe-core build shipped with the package. Refresh it
// with go generate and commit the result.
//
//go:embed axe.min.js
var bundledScript string

// ErrScriptEncoding reports a script file that is not valid UTF-8 text.
var ErrScriptEncoding = errors.New("script is not valid UTF-8")

// DefaultScript returns the bundled axe-core source.
func DefaultScript() string { return bundledScript }

// readScriptFile loads an alternative axe-core build from disk.
func readScriptFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading axe script: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("axe script %s: %w", path, ErrScriptEncoding)
	}
	return string(data), nil
}
