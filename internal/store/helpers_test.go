package store

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/stepwise/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(MemoryPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// fakeClock is a settable time source for created_at / completed_at.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func withClock(s *SQLiteStore) *fakeClock {
	c := &fakeClock{t: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}
	s.now = c.now
	return c
}

func mustAddTask(t *testing.T, s *SQLiteStore, title string) string {
	t.Helper()

	id, created, err := s.AddTask(context.Background(), title)
	if err != nil {
		t.Fatalf("AddTask(%q): %v", title, err)
	}
	if !created {
		t.Fatalf("AddTask(%q) did not create a task", title)
	}
	return id
}

func steps(actions ...string) []model.NewSubtask {
	out := make([]model.NewSubtask, 0, len(actions))
	for i, a := range actions {
		out = append(out, model.NewSubtask{
			Emoji:       "🔹",
			Action:      a,
			Explanation: a + " explained.",
			Ord:         i,
		})
	}
	return out
}

func countRows(t *testing.T, s *SQLiteStore, table string) int {
	t.Helper()

	var n int
	if err := s.db.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}
