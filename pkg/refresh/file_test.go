package refresh

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileSourceFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"a":1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	src := &FileSource{Path: path}

	data, version, err := src.Fetch(context.Background(), "")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("unexpected data: %s", data)
	}
	if version == "" {
		t.Error("expected a non-empty version")
	}

	// Unchanged file reports not modified.
	if _, _, err := src.Fetch(context.Background(), version); !errors.Is(err, ErrNotModified) {
		t.Errorf("expected ErrNotModified for unchanged file, got %v", err)
	}

	// A rewrite with different content changes the version.
	mtime := time.Now().Add(time.Second)
	if err := os.WriteFile(path, []byte(`{"a":22}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	data, next, err := src.Fetch(context.Background(), version)
	if err != nil {
		t.Fatalf("Fetch() after rewrite error: %v", err)
	}
	if string(data) != `{"a":22}` {
		t.Errorf("unexpected data after rewrite: %s", data)
	}
	if next == version {
		t.Error("expected version to change after rewrite")
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src := &FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}
	if _, _, err := src.Fetch(context.Background(), ""); err == nil {
		t.Error("expected error for missing file")
	}
}
