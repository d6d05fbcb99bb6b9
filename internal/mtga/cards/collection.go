package cards

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/deck"
)

// ErrUnknownCard reports a card that has no printings in the ledger.
// Resolving it requires the card-database collaborator; the collection
// itself never performs network I/O.
var ErrUnknownCard = errors.New("unknown card")

// Collection is the ownership ledger: card name to owned printings,
// keyed uniquely by set within each card. Cards are stored under both
// their literal and simplified names so lookups succeed whichever form
// a decklist uses.
type Collection struct {
	byName map[string][]Printing
}

// NewCollection returns an empty ledger.
func NewCollection() *Collection {
	return &Collection{byName: make(map[string][]Printing)}
}

// Insert upserts a printing. Re-inserting the same (name, set) pair
// overwrites the stored amount and rarity. Basic lands are always
// recorded as RarityLand regardless of the supplied rarity, so they
// can never consume wildcards in cost math.
func (c *Collection) Insert(card CardData) {
	name := strings.TrimSpace(card.Name)
	rarity := card.Rarity
	if IsBasicLand(name) {
		rarity = RarityLand
	}
	c.insert(name, Printing{Amount: card.Amount, Rarity: rarity, SetCode: card.SetCode})
	if simplified := SimplifiedName(name); simplified != name {
		c.insert(simplified, Printing{Amount: card.Amount, Rarity: rarity, SetCode: card.SetCode})
	}
}

func (c *Collection) insert(name string, p Printing) {
	group := c.byName[name]
	for i := range group {
		if group[i].SetCode == p.SetCode {
			group[i] = p
			return
		}
	}
	c.byName[name] = append(group, p)
}

// Get returns all owned printings of the named card. The name is
// simplified before lookup. Cards with no printings at all yield
// ErrUnknownCard; callers are expected to have warmed the ledger via
// the card database first.
func (c *Collection) Get(name string) ([]Printing, error) {
	name = SimplifiedName(name)
	group, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (run `detr sync` to refresh the ledger)", ErrUnknownCard, name)
	}
	return group, nil
}

// Has reports whether the card is known to the ledger.
func (c *Collection) Has(name string) bool {
	_, ok := c.byName[SimplifiedName(name)]
	return ok
}

// Merge unions another collection into this one. Per (name, set) pair
// the incoming amount and rarity win, mirroring a refresh from source.
func (c *Collection) Merge(other *Collection) {
	for name, group := range other.byName {
		for _, p := range group {
			c.Insert(CardData{Amount: p.Amount, Name: name, Rarity: p.Rarity, SetCode: p.SetCode})
		}
	}
}

// Names returns every ledger key in sorted order.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of distinct ledger keys.
func (c *Collection) Len() int {
	return len(c.byName)
}

// Missing computes, for every card the deck requires, how many copies
// the ledger still lacks. Basic lands are skipped. The reported rarity
// and set come from the owned printing with the lowest rarity ordinal
// (first encountered wins ties); missing amounts saturate at zero.
func (c *Collection) Missing(d *deck.Deck, ignoreSideboard bool) ([]MissingCard, error) {
	required := d.Cards(ignoreSideboard)
	names := make([]string, 0, len(required))
	for name := range required {
		if !IsBasicLand(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	missing := make([]MissingCard, 0, len(names))
	for _, name := range names {
		group, err := c.Get(name)
		if err != nil {
			return nil, err
		}
		owned := 0
		best := group[0]
		for _, p := range group {
			owned += p.Amount
			if p.Rarity < best.Rarity {
				best = p
			}
		}
		amount := required[name] - owned
		if amount < 0 {
			amount = 0
		}
		missing = append(missing, MissingCard{
			Name:    name,
			Amount:  amount,
			Rarity:  best.Rarity,
			SetCode: best.SetCode,
		})
	}
	return missing, nil
}

// CountMissingOfRarity sums the deck's missing copies whose cheapest
// printing has the given rarity.
func (c *Collection) CountMissingOfRarity(d *deck.Deck, ignoreSideboard bool, rarity Rarity) (int, error) {
	missing, err := c.Missing(d, ignoreSideboard)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, m := range missing {
		if m.Rarity == rarity {
			count += m.Amount
		}
	}
	return count, nil
}

// All returns every (name, printing) row of the ledger in a
// deterministic order, for snapshot persistence.
func (c *Collection) All() []CardData {
	rows := make([]CardData, 0, len(c.byName))
	for _, name := range c.Names() {
		for _, p := range c.byName[name] {
			rows = append(rows, CardData{Amount: p.Amount, Name: name, Rarity: p.Rarity, SetCode: p.SetCode})
		}
	}
	return rows
}
