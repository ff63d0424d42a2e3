package parts

import (
	"reflect"
	"testing"
)

func TestSplitStepCards_TitleGrouping(t *testing.T) {
	cards := SplitStepCards([]string{"Sauce", "Zwiebel schneiden.", "In Öl braten."})
	if len(cards) != 1 {
		t.Fatalf("cards = %+v", cards)
	}
	if cards[0].Title != "Sauce" {
		t.Fatalf("title = %q", cards[0].Title)
	}
	if !reflect.DeepEqual(cards[0].Body, []string{"Zwiebel schneiden.", "In Öl braten."}) {
		t.Fatalf("body = %v", cards[0].Body)
	}
}

func TestSplitStepCards_MultipleTitles(t *testing.T) {
	cards := SplitStepCards([]string{
		"Teig",
		"Mehl und Wasser verkneten.",
		"Belag",
		"Tomaten schneiden.",
		"Alles belegen.",
	})
	if len(cards) != 2 {
		t.Fatalf("cards = %+v", cards)
	}
	if cards[0].Title != "Teig" || cards[1].Title != "Belag" {
		t.Fatalf("titles = %q, %q", cards[0].Title, cards[1].Title)
	}
	if len(cards[1].Body) != 2 {
		t.Fatalf("second card body = %v", cards[1].Body)
	}
}

func TestSplitStepCards_FallbackNumbering(t *testing.T) {
	cards := SplitStepCards([]string{
		"Zwiebel schneiden.",
		"",
		"In Öl braten.",
	})
	if len(cards) != 2 {
		t.Fatalf("cards = %+v", cards)
	}
	if cards[0].Title != "Schritt 1" || cards[1].Title != "Schritt 2" {
		t.Fatalf("titles = %q, %q", cards[0].Title, cards[1].Title)
	}
	if !reflect.DeepEqual(cards[1].Body, []string{"In Öl braten."}) {
		t.Fatalf("body = %v", cards[1].Body)
	}
}

func TestIsTitleLine(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"Sauce", true},
		{"Sauce anbraten", true},
		{"Zwiebel schneiden.", false},
		{"Fertig!", false},
		{"Schon gar?", false},
		{"- 200g Mehl", false},
		{"• Salz", false},
		{"Dies ist ein sehr langer Satz der niemals als Titel durchgehen würde", false},
	}
	for _, c := range cases {
		if got := isTitleLine(c.line); got != c.want {
			t.Errorf("isTitleLine(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestIsSectionHeader(t *testing.T) {
	if !IsSectionHeader("Sauce anbraten:") {
		t.Fatal("trailing colon marks a section header")
	}
	if IsSectionHeader("400g Spaghetti") {
		t.Fatal("plain line is not a header")
	}
}
