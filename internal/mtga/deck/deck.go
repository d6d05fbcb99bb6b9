// Package deck models constructed Arena decks and the roster that
// tracks them.
package deck

import (
	"fmt"
	"strings"
)

// wishboardTrigger marks decks whose sideboard is effectively part of
// the mainboard: the card tutors sideboard artifacts during play, so
// the first seven sideboard slots must be owned even when sideboards
// are otherwise ignored.
const wishboardTrigger = "Karn, the Great Creator"

// wishboardSlots is the number of leading sideboard entries a
// wishboard deck depends on.
const wishboardSlots = 7

// Entry is one decklist line: a card name and how many copies the deck
// plays. File order is preserved because the wishboard rule depends on
// it.
type Entry struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// Deck is a constructed deck: a named mainboard and sideboard, plus an
// optional companion.
type Deck struct {
	Name      string  `json:"name"`
	Companion string  `json:"companion,omitempty"`
	Mainboard []Entry `json:"mainboard"`
	Sideboard []Entry `json:"sideboard"`
}

// Cards returns the deck's aggregated card requirements as a map from
// card name to total copies. Mainboard copies always count. Sideboard
// copies count unless ignoreSideboard is set, except that a wishboard
// deck keeps its first seven sideboard entries either way.
func (d *Deck) Cards(ignoreSideboard bool) map[string]int {
	amounts := make(map[string]int, len(d.Mainboard)+len(d.Sideboard))
	hasWishboard := false
	for _, e := range d.Mainboard {
		amounts[e.Name] += e.Amount
		if e.Name == wishboardTrigger {
			hasWishboard = true
		}
	}
	switch {
	case !ignoreSideboard:
		for _, e := range d.Sideboard {
			amounts[e.Name] += e.Amount
		}
	case hasWishboard:
		for i, e := range d.Sideboard {
			if i >= wishboardSlots {
				break
			}
			amounts[e.Name] += e.Amount
		}
	}
	return amounts
}

// Contains reports whether the deck plays the named card.
func (d *Deck) Contains(name string, ignoreSideboard bool) bool {
	_, ok := d.Cards(ignoreSideboard)[name]
	return ok
}

// String renders the deck in Arena export format, suitable for
// re-importing or sharing.
func (d *Deck) String() string {
	var b strings.Builder
	if d.Companion != "" {
		fmt.Fprintf(&b, "Companion\n1 %s\n\n", d.Companion)
	}
	b.WriteString("Deck\n")
	for _, e := range d.Mainboard {
		fmt.Fprintf(&b, "%d %s\n", e.Amount, e.Name)
	}
	if len(d.Sideboard) > 0 {
		b.WriteString("\nSideboard\n")
		for _, e := range d.Sideboard {
			fmt.Fprintf(&b, "%d %s\n", e.Amount, e.Name)
		}
	}
	return b.String()
}
