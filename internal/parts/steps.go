package parts

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// StepCard is one display card of a recipe's steps.
type StepCard struct {
	Title string   `json:"title"`
	Body  []string `json:"body"`
}

const (
	maxTitleLen      = 40
	fallbackCardName = "Schritt"
)

// SplitStepCards groups step lines into cards. A line counts as a card
// title when it is short, carries no terminal punctuation and is not a
// bullet; the non-title lines that follow become that card's body.
//
// When no line qualifies as a title the grouping degenerates to a single
// unnamed card; in that case every non-empty line becomes its own numbered
// card instead.
func SplitStepCards(lines []string) []StepCard {
	var cards []StepCard
	sawTitle := false
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if isTitleLine(line) {
			cards = append(cards, StepCard{Title: line})
			sawTitle = true
			continue
		}
		if len(cards) == 0 {
			cards = append(cards, StepCard{Title: fallbackCardName})
		}
		cards[len(cards)-1].Body = append(cards[len(cards)-1].Body, line)
	}

	if !sawTitle && len(cards) == 1 {
		var out []StepCard
		for _, raw := range lines {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			out = append(out, StepCard{
				Title: fmt.Sprintf("%s %d", fallbackCardName, len(out)+1),
				Body:  []string{line},
			})
		}
		return out
	}
	return cards
}

func isTitleLine(line string) bool {
	if utf8.RuneCountInString(line) > maxTitleLen {
		return false
	}
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, "!") || strings.HasSuffix(line, "?") {
		return false
	}
	for _, bullet := range []string{"-", "*", "•"} {
		if strings.HasPrefix(line, bullet) {
			return false
		}
	}
	return true
}

// IsSectionHeader reports whether an ingredient line is a section header
// rather than an ingredient.
func IsSectionHeader(line string) bool {
	return strings.HasSuffix(strings.TrimSpace(line), ":")
}
