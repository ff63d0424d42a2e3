package parts

import (
	"reflect"
	"testing"

	"github.com/tinkeroneo/cook-go/internal/types"
)

func menuFixture() (types.Recipe, []types.Recipe, Index) {
	menu := types.Recipe{
		ID:          "menu",
		Title:       "Weihnachtsmenü",
		Ingredients: []string{"Deko:", "Kerzen"},
		Steps:       []string{"Vorbereitung", "Tisch decken."},
	}
	starter := types.Recipe{
		ID:          "starter",
		Title:       "Kürbissuppe",
		Ingredients: []string{"1 Hokkaido", "Salz"},
		Steps:       []string{"Kürbis würfeln.", "Weich kochen."},
	}
	main := types.Recipe{
		ID:          "main",
		Title:       "Gulasch",
		Ingredients: []string{"500g Rind"},
		Steps:       []string{"Anbraten", "Fleisch scharf anbraten."},
	}
	idx := BuildIndex([]types.RecipePart{
		{ParentID: "menu", ChildID: "starter"},
		{ParentID: "menu", ChildID: "main"},
	})
	return menu, []types.Recipe{menu, starter, main}, idx
}

func TestBuildMenuIngredients(t *testing.T) {
	menu, all, idx := menuFixture()
	sections := BuildMenuIngredients(menu, all, idx)
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %+v", sections)
	}
	if sections[0].Title != "Weihnachtsmenü" {
		t.Fatalf("root section first, got %q", sections[0].Title)
	}
	if sections[1].Title != "Kürbissuppe" || sections[2].Title != "Gulasch" {
		t.Fatalf("descendant order wrong: %q, %q", sections[1].Title, sections[2].Title)
	}
	if !reflect.DeepEqual(sections[1].Items, []string{"1 Hokkaido", "Salz"}) {
		t.Fatalf("starter items = %v", sections[1].Items)
	}
}

func TestBuildMenuIngredients_EmptyRootOmitted(t *testing.T) {
	menu, all, idx := menuFixture()
	menu.Ingredients = nil
	sections := BuildMenuIngredients(menu, all, idx)
	if len(sections) != 2 || sections[0].Title != "Kürbissuppe" {
		t.Fatalf("expected only descendant sections, got %+v", sections)
	}
}

func TestBuildMenuIngredients_MissingRecipeSkipped(t *testing.T) {
	menu, all, idx := menuFixture()
	// Drop the starter from the recipe list; its edge remains.
	var trimmed []types.Recipe
	for _, r := range all {
		if r.ID != "starter" {
			trimmed = append(trimmed, r)
		}
	}
	sections := BuildMenuIngredients(menu, trimmed, idx)
	if len(sections) != 2 || sections[1].Title != "Gulasch" {
		t.Fatalf("expected starter to be skipped silently, got %+v", sections)
	}
}

func TestBuildMenuStepSections(t *testing.T) {
	menu, all, idx := menuFixture()
	sections := BuildMenuStepSections(menu, all, idx)
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %+v", sections)
	}
	if sections[0].RecipeID != "menu" {
		t.Fatalf("root steps first, got %q", sections[0].RecipeID)
	}
	// "Anbraten" is short and unpunctuated, so it titles the card.
	mainCards := sections[2].Cards
	if len(mainCards) != 1 || mainCards[0].Title != "Anbraten" {
		t.Fatalf("main cards = %+v", mainCards)
	}
	if !reflect.DeepEqual(mainCards[0].Body, []string{"Fleisch scharf anbraten."}) {
		t.Fatalf("main card body = %v", mainCards[0].Body)
	}
}
