package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/styx-analyse/styx-session/testutil"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := filepath.Join(dir, "nested", "record.json")

	if err := WriteFileAtomic(path, []byte("first"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0600); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite error = %v", err)
	}

	if got := string(testutil.ReadFile(t, path)); got != "second" {
		t.Errorf("content = %q, want second", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestWriteFileAtomic_TargetIsDirectory(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	target := filepath.Join(dir, "taken")
	if err := os.MkdirAll(filepath.Join(target, "child"), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	err := WriteFileAtomic(target, []byte("x"), 0644)
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("WriteFileAtomic() over a directory error = %v, want *StorageError", err)
	}
	if serr.Op != "rename" {
		t.Errorf("Op = %q, want rename", serr.Op)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary file left behind: %d entries", len(entries))
	}
}
