package journal

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal", "slate.db")
	store, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := Entry{
		RunID:         "run-1",
		ShotID:        7563,
		Sequence:      "010",
		Shot:          "0010",
		VersionNumber: 11,
		FramesLinked:  3,
		Outcome:       "delivered",
		Message:       "Export finished!",
	}
	second := Entry{
		RunID:    "run-1",
		ShotID:   7564,
		Sequence: "010",
		Shot:     "0020",
		Outcome:  "already_exported",
		Message:  "Files already exist. Has this shot been exported before?",
	}

	if _, err := store.Record(ctx, first); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	id, err := store.Record(ctx, second)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero entry id")
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Shot != "0020" {
		t.Errorf("expected newest entry first, got shot %q", entries[0].Shot)
	}
	if entries[1].FramesLinked != 3 {
		t.Errorf("expected 3 frames linked, got %d", entries[1].FramesLinked)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("expected created_at to round-trip")
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := Entry{
			RunID:   "run-2",
			ShotID:  int64(100 + i),
			Shot:    "0010",
			Outcome: "delivered",
		}
		if _, err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ShotID != 104 {
		t.Errorf("expected newest shot id 104, got %d", entries[0].ShotID)
	}
}

func TestReopenPreservesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slate.db")

	store, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	if _, err := store.Record(context.Background(), Entry{RunID: "run-3", ShotID: 1, Outcome: "delivered"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", len(entries))
	}
}

func TestOpenDisabledJournalReturnsNil(t *testing.T) {
	store, err := Open(nil)
	if err != nil {
		t.Fatalf("Open(nil) failed: %v", err)
	}
	if store != nil {
		t.Fatal("expected nil store for nil config")
	}
}
