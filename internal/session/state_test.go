package session

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tinkeroneo/cook-go/internal/localstore"
)

func testState(t *testing.T) *State {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "session.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return New(store)
}

func TestStepChecklist(t *testing.T) {
	s := testState(t)
	s.MarkStepDone("r1", 0, true)
	s.MarkStepDone("r1", 2, true)
	s.MarkStepDone("r1", 0, false)

	done := s.DoneSteps("r1")
	if len(done) != 1 || !done[2] {
		t.Fatalf("done = %v", done)
	}
	if len(s.DoneSteps("r2")) != 0 {
		t.Fatal("checklist leaked across recipes")
	}

	s.ResetSteps("r1")
	if len(s.DoneSteps("r1")) != 0 {
		t.Fatal("reset should clear the checklist")
	}
}

func TestIngredientChecklist(t *testing.T) {
	s := testState(t)
	s.MarkIngredientUsed("r1", "400g Spaghetti", true)
	s.MarkIngredientUsed("r1", "Salz", true)
	s.MarkIngredientUsed("r1", "Salz", false)

	used := s.UsedIngredients("r1")
	if len(used) != 1 || !used["400g Spaghetti"] {
		t.Fatalf("used = %v", used)
	}

	s.ResetIngredients("r1")
	if len(s.UsedIngredients("r1")) != 0 {
		t.Fatal("reset should clear the marks")
	}
}

func TestPreferences(t *testing.T) {
	s := testState(t)
	type listPrefs struct {
		Sort     string `json:"sort"`
		Category string `json:"category"`
	}
	s.SetPreference("list", listPrefs{Sort: "createdAt", Category: "Pasta"})

	var got listPrefs
	if !s.GetPreference("list", &got) {
		t.Fatal("expected preference")
	}
	if got.Sort != "createdAt" || got.Category != "Pasta" {
		t.Fatalf("prefs = %+v", got)
	}
	if s.GetPreference("unset", &got) {
		t.Fatal("unset preference should report false")
	}
}
