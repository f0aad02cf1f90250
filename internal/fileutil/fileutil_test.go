package fileutil_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"slate/internal/fileutil"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.1001.exr")
	if fileutil.FileExists(path) {
		t.Fatal("expected missing file")
	}
	if err := os.WriteFile(path, []byte("exr"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !fileutil.FileExists(path) {
		t.Fatal("expected existing file")
	}
	if fileutil.FileExists(dir) {
		t.Fatal("directories should not count as files")
	}
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := fileutil.EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir second call: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory, err=%v", err)
	}
}

func TestLinkFileCollisionIsErrExist(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.exr")
	dst := filepath.Join(dir, "dst.exr")
	if err := os.WriteFile(src, []byte("exr"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := fileutil.LinkFile(src, dst); err != nil {
		t.Fatalf("LinkFile: %v", err)
	}
	err := fileutil.LinkFile(src, dst)
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected fs.ErrExist on collision, got %v", err)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		t.Fatalf("stat src: %v", err)
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat dst: %v", err)
	}
	if !os.SameFile(srcInfo, dstInfo) {
		t.Fatal("expected hard link to reference the same file")
	}
}

func TestSameFilesystemWithinTempDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := fileutil.EnsureDir(sub); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	same, err := fileutil.SameFilesystem(dir, sub)
	if err != nil {
		t.Fatalf("SameFilesystem: %v", err)
	}
	if !same {
		t.Fatal("expected same device for nested directories")
	}
	if _, err := fileutil.SameFilesystem(dir, filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing path")
	}
}
