package deck

import (
	"errors"
	"fmt"
)

// ErrParse reports a malformed decklist. It is fatal to the single
// import operation, never to the process.
var ErrParse = errors.New("decklist parse error")

// ErrNotFound reports a deck name absent from the roster.
var ErrNotFound = errors.New("deck not found")

// Roster is the ordered set of tracked decks, unique by name. It is
// loaded as a whole snapshot at startup and persisted as a whole by the
// storage layer at shutdown.
type Roster struct {
	decks []*Deck
}

// NewRoster builds a roster from already-loaded decks.
func NewRoster(decks []*Deck) *Roster {
	return &Roster{decks: decks}
}

// Decks returns the decks in roster order. The slice is shared; callers
// must not reorder it.
func (r *Roster) Decks() []*Deck {
	return r.decks
}

// Names lists the deck names in roster order.
func (r *Roster) Names() []string {
	names := make([]string, len(r.decks))
	for i, d := range r.decks {
		names[i] = d.Name
	}
	return names
}

// Add appends a deck. Adding a name that already exists is an error;
// use Replace to overwrite.
func (r *Roster) Add(d *Deck) error {
	if _, err := r.Find(d.Name); err == nil {
		return fmt.Errorf("deck %q already in roster", d.Name)
	}
	r.decks = append(r.decks, d)
	return nil
}

// Remove deletes the named deck.
func (r *Roster) Remove(name string) error {
	for i, d := range r.decks {
		if d.Name == name {
			r.decks = append(r.decks[:i], r.decks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove deck %q: %w", name, ErrNotFound)
}

// Find returns the named deck.
func (r *Roster) Find(name string) (*Deck, error) {
	for _, d := range r.decks {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("deck %q: %w", name, ErrNotFound)
}

// Replace swaps the named deck's list for a new one, keeping its
// position in the roster. The replacement inherits the name.
func (r *Roster) Replace(name string, d *Deck) error {
	for i, existing := range r.decks {
		if existing.Name == name {
			d.Name = name
			r.decks[i] = d
			return nil
		}
	}
	return fmt.Errorf("replace deck %q: %w", name, ErrNotFound)
}

// Rename changes a deck's name. The new name must be free.
func (r *Roster) Rename(oldName, newName string) error {
	if _, err := r.Find(newName); err == nil {
		return fmt.Errorf("deck %q already in roster", newName)
	}
	d, err := r.Find(oldName)
	if err != nil {
		return err
	}
	d.Name = newName
	return nil
}

// Cards aggregates the card requirements of every deck in the roster.
// Amounts are summed across decks; the result is used to warm the
// collection before cost computations.
func (r *Roster) Cards(ignoreSideboard bool) map[string]int {
	total := make(map[string]int)
	for _, d := range r.decks {
		for name, amount := range d.Cards(ignoreSideboard) {
			total[name] += amount
		}
	}
	return total
}
