package testutil

import (
	"context"
	"testing"

	"github.com/nhle/stepwise/internal/model"
	"github.com/nhle/stepwise/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with the schema initialized.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(store.MemoryPath)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// SampleDecomposition returns a valid plan with n steps and the given tips.
func SampleDecomposition(title string, n int, tips ...string) model.Decomposition {
	emojis := []string{"📁", "📝", "🔑", "✍️", "🌐", "📖", "⏱️", "✅", "🎉"}
	d := model.Decomposition{Title: title, ActionTips: tips}
	for i := 0; i < n; i++ {
		d.Steps = append(d.Steps, model.Step{
			Emoji:       emojis[i%len(emojis)],
			Action:      "Action " + string(rune('A'+i)),
			Explanation: "Because step " + string(rune('A'+i)) + " matters.",
		})
	}
	return d
}

// MustSavePlan stores d and fails the test if it is not created.
func MustSavePlan(t *testing.T, s store.Store, d model.Decomposition) string {
	t.Helper()

	id, created, err := s.SavePlan(context.Background(), d)
	if err != nil {
		t.Fatalf("SavePlan: %v", err)
	}
	if !created {
		t.Fatalf("SavePlan(%q) did not create a task", d.Title)
	}
	return id
}
