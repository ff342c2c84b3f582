package history

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sua/internal/logging"
)

func newTestLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Level:  logging.ErrorLevel,
		Format: logging.JSONFormat,
		Output: io.Discard,
	})
}

func openTestStore(t *testing.T, projectRoot string) *Store {
	t.Helper()
	store, err := Open(projectRoot, newTestLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_CreatesDatabase(t *testing.T) {
	root := t.TempDir()
	openTestStore(t, root)

	if _, err := os.Stat(filepath.Join(root, ".sua", "history.db")); err != nil {
		t.Errorf("Database file missing: %v", err)
	}
}

func TestStore_RecordAndList(t *testing.T) {
	store := openTestStore(t, t.TempDir())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []Run{
		{RunID: "run-1", CreatedAt: base, ElapsedSeconds: 4.5, Analyzed: 40, Unused: 3, Threshold: 0},
		{RunID: "run-2", CreatedAt: base.Add(time.Hour), ElapsedSeconds: 6.25, Analyzed: 41, Unused: 2, Threshold: 1, Group: "billing"},
		{RunID: "run-3", CreatedAt: base.Add(2 * time.Hour), ElapsedSeconds: 5, Analyzed: 42, Unused: 2, Threshold: 0},
	}
	for _, run := range runs {
		if err := store.Record(run); err != nil {
			t.Fatalf("Record(%s) failed: %v", run.RunID, err)
		}
	}

	got, err := store.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List returned %d runs, want 3", len(got))
	}

	// newest first
	if got[0].RunID != "run-3" || got[1].RunID != "run-2" || got[2].RunID != "run-1" {
		t.Errorf("List order = %s, %s, %s", got[0].RunID, got[1].RunID, got[2].RunID)
	}

	second := got[1]
	if second.Analyzed != 41 || second.Unused != 2 || second.Threshold != 1 {
		t.Errorf("Run fields = %+v", second)
	}
	if second.Group != "billing" {
		t.Errorf("Group = %q, want billing", second.Group)
	}
	if second.ElapsedSeconds != 6.25 {
		t.Errorf("ElapsedSeconds = %v, want 6.25", second.ElapsedSeconds)
	}
	if !second.CreatedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("CreatedAt = %v, want %v", second.CreatedAt, base.Add(time.Hour))
	}
}

func TestStore_ListLimit(t *testing.T) {
	store := openTestStore(t, t.TempDir())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := Run{
			RunID:     string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Analyzed:  i,
		}
		if err := store.Record(run); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := store.List(2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d runs, want 2", len(got))
	}
	if got[0].RunID != "e" || got[1].RunID != "d" {
		t.Errorf("List = %s, %s, want e, d", got[0].RunID, got[1].RunID)
	}
}

func TestStore_ListOrdersMixedOffsetsChronologically(t *testing.T) {
	store := openTestStore(t, t.TempDir())

	// later wall-clock string, earlier instant: 01:00+02:00 is 23:00 UTC
	earlier := Run{RunID: "run-early", CreatedAt: time.Date(2026, 3, 31, 1, 0, 0, 0, time.FixedZone("CEST", 2*60*60))}
	later := Run{RunID: "run-late", CreatedAt: time.Date(2026, 3, 30, 23, 30, 0, 0, time.UTC)}
	for _, run := range []Run{earlier, later} {
		if err := store.Record(run); err != nil {
			t.Fatalf("Record(%s) failed: %v", run.RunID, err)
		}
	}

	got, err := store.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d runs, want 2", len(got))
	}
	if got[0].RunID != "run-late" || got[1].RunID != "run-early" {
		t.Errorf("List order = %s, %s, want run-late, run-early", got[0].RunID, got[1].RunID)
	}
	if !got[1].CreatedAt.Equal(earlier.CreatedAt) {
		t.Errorf("CreatedAt = %v, want the same instant as %v", got[1].CreatedAt, earlier.CreatedAt)
	}
}

func TestStore_RecordFillsTimestamp(t *testing.T) {
	store := openTestStore(t, t.TempDir())

	if err := store.Record(Run{RunID: "run-x"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := store.List(1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List returned %d runs, want 1", len(got))
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not filled")
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	root := t.TempDir()

	store := openTestStore(t, root)
	if err := store.Record(Run{RunID: "run-1", CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := openTestStore(t, root)
	got, err := reopened.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].RunID != "run-1" {
		t.Errorf("List after reopen = %+v, want run-1", got)
	}
}

func TestStore_ListEmpty(t *testing.T) {
	store := openTestStore(t, t.TempDir())

	got, err := store.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List = %v, want empty", got)
	}
}
