package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path (and parents) with small fixture contents.
func WriteFile(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("fixture"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteFrames materializes the given frames of a %d-style sequence pattern.
func WriteFrames(t testing.TB, pattern string, frames ...int) {
	t.Helper()
	for _, frame := range frames {
		WriteFile(t, fmt.Sprintf(pattern, frame))
	}
}

// SequencePattern returns a frame-path pattern rooted in a fresh temp dir.
func SequencePattern(t testing.TB, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name+".%04d.exr")
}
