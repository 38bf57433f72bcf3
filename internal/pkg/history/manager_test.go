package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestManager(t *testing.T, maxEntries int) *FileManager {
	t.Helper()
	return NewFileManager(filepath.Join(t.TempDir(), "history.json"), maxEntries)
}

func TestFileManagerSave(t *testing.T) {
	t.Run("generates ID and timestamp", func(t *testing.T) {
		m := newTestManager(t, 0)

		entry := &Entry{PromptKey: "commit", Provider: "ollama", Model: "llama3.2", Result: "fix: bug"}
		if err := m.Save(entry); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.ID == "" {
			t.Error("expected generated ID")
		}
		if entry.Timestamp.IsZero() {
			t.Error("expected timestamp to be set")
		}
	})

	t.Run("preserves explicit ID and timestamp", func(t *testing.T) {
		m := newTestManager(t, 0)
		ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

		entry := &Entry{ID: "fixed-id", Timestamp: ts, Result: "msg"}
		if err := m.Save(entry); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.ID != "fixed-id" || !entry.Timestamp.Equal(ts) {
			t.Errorf("expected fields preserved, got %+v", entry)
		}
	})

	t.Run("file has owner-only permissions", func(t *testing.T) {
		m := newTestManager(t, 0)
		if err := m.Save(&Entry{Result: "msg"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(m.filePath)
		if err != nil {
			t.Fatalf("expected file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected 0600, got %o", perm)
		}
	})
}

func TestFileManagerList(t *testing.T) {
	t.Run("missing file yields empty list", func(t *testing.T) {
		m := newTestManager(t, 0)
		entries, err := m.List(10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty list, got %d entries", len(entries))
		}
	})

	t.Run("limit returns most recent", func(t *testing.T) {
		m := newTestManager(t, 0)
		for _, msg := range []string{"first", "second", "third"} {
			if err := m.Save(&Entry{Result: msg}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		entries, err := m.List(2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Result != "second" || entries[1].Result != "third" {
			t.Errorf("expected most recent entries, got %v, %v", entries[0].Result, entries[1].Result)
		}
	})
}

func TestFileManagerMarkCommitted(t *testing.T) {
	t.Run("flags the entry and persists it", func(t *testing.T) {
		m := newTestManager(t, 0)
		entry := &Entry{Result: "feat: add feature"}
		if err := m.Save(entry); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := m.Save(&Entry{Result: "other"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := m.MarkCommitted(entry.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := m.List(0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !entries[0].Committed {
			t.Error("expected first entry to be committed")
		}
		if entries[1].Committed {
			t.Error("expected second entry to stay uncommitted")
		}
	})

	t.Run("unknown id is an error", func(t *testing.T) {
		m := newTestManager(t, 0)
		if err := m.Save(&Entry{Result: "msg"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := m.MarkCommitted("no-such-id"); err == nil {
			t.Error("expected error for unknown id")
		}
	})
}

func TestFileManagerRotation(t *testing.T) {
	m := newTestManager(t, 3)
	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		if err := m.Save(&Entry{Result: msg}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := m.List(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected rotation to 3 entries, got %d", len(entries))
	}
	if entries[0].Result != "c" {
		t.Errorf("expected oldest surviving entry c, got %q", entries[0].Result)
	}
}

func TestFileManagerClear(t *testing.T) {
	m := newTestManager(t, 0)
	if err := m.Save(&Entry{Result: "msg"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := m.List(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history after clear, got %d entries", len(entries))
	}
}
