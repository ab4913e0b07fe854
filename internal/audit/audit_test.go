package audit

import (
	"path/filepath"
	"testing"
	"time"
)

func tmpLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestAppendRecent(t *testing.T) {
	l := tmpLog(t)

	if err := l.Append(Entry{Name: "OPENAI_API_KEY", Action: "store"}); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(Entry{Name: "OPENAI_API_KEY", Action: "read"}); err != nil {
		t.Fatal(err)
	}

	entries, err := l.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.ID == "" {
			t.Fatal("expected generated entry ID")
		}
		if e.CreatedAt.IsZero() {
			t.Fatal("expected created_at to be set")
		}
	}
}

func TestRecent_Limit(t *testing.T) {
	l := tmpLog(t)

	for i := 0; i < 5; i++ {
		if err := l.Append(Entry{Name: "TOKEN", Action: "read"}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := l.Recent(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	l := tmpLog(t)

	old := time.Now().Add(-time.Hour)
	l.Append(Entry{Name: "A", Action: "store", CreatedAt: old})
	l.Append(Entry{Name: "B", Action: "store"})

	entries, err := l.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Name != "B" {
		t.Fatalf("expected newest entry first, got %s", entries[0].Name)
	}
}

func TestRecord_NeverPanics(t *testing.T) {
	l := tmpLog(t)
	l.Record("TOKEN", "read")

	entries, err := l.Recent(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Action != "read" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}
