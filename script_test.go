package axecheck

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom-axe.js")
	src := "window.axe = { run: function () {} };"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	if r.Script != src {
		t.Errorf("script = %q, want %q", r.Script, src)
	}
}

func TestNewFromFileMissing(t *testing.T) {
	_, err := NewFromFile(filepath.Join(t.TempDir(), "nope.js"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestNewFromFileBadEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.js")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := NewFromFile(path)
	if !errors.Is(err, ErrScriptEncoding) {
		t.Fatalf("expected ErrScriptEncoding, got %v", err)
	}
}

func TestDefaultScriptBundled(t *testing.T) {
	src := DefaultScript()
	if src == "" {
		t.Fatal("bundled script is empty")
	}
	if !strings.Contains(src, "axe") {
		t.Error("bundled script does not define the axe entry point")
	}
}
