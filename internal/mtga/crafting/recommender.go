// Package crafting implements the wildcard-budget recommendation
// engine: given a roster, the ledger and a rare/mythic crafting budget,
// it finds the largest subset of decks that can all be completed at
// once, accounting for missing copies shared between decks.
package crafting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
	"sort"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/cards"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/deck"
)

// maxCandidates bounds the subset search; deck selections are encoded
// as a uint64 bitmask.
const maxCandidates = 64

// ErrTooManyDecks is returned when the relevant-deck filter leaves more
// candidate decks than the selection mask can address. Tightening the
// budget shrinks the candidate set.
var ErrTooManyDecks = errors.New("too many candidate decks for search")

// Options configures a recommendation run.
type Options struct {
	// RaresLimit and MythicsLimit are the wildcard budgets: how many
	// rare and mythic crafts the plan may spend in total.
	RaresLimit   int
	MythicsLimit int

	// IgnoreSideboard drops sideboard requirements, except for the
	// wishboard carve-out handled by deck.Cards.
	IgnoreSideboard bool

	// StartingSelection biases the search toward the named decks by
	// pre-selecting them. Names that are not candidates are ignored; a
	// pre-selection that already busts the budget falls back to an
	// empty start.
	StartingSelection []string

	// SkipUnresolved switches the run to degraded mode: decks whose
	// missing-card computation fails (unknown cards) are skipped with a
	// warning instead of aborting the whole recommendation.
	SkipUnresolved bool
}

// Recommender performs one recommendation over an immutable roster and
// collection snapshot.
type Recommender struct {
	opts       Options
	roster     *deck.Roster
	collection *cards.Collection
}

// New builds a recommender. The collection is read-only for the
// duration of the search.
func New(opts Options, roster *deck.Roster, collection *cards.Collection) *Recommender {
	return &Recommender{opts: opts, roster: roster, collection: collection}
}

// candidate is one relevant deck reduced to its requirement bitsets.
type candidate struct {
	deck    *deck.Deck
	rares   bitset
	mythics bitset
}

// rowKey identifies one physical missing copy: crafting a card once
// satisfies one unit of demand, so each copy index is its own row,
// shared across every deck that needs it.
type rowKey struct {
	name string
	copy int
}

// Recommend returns every deck-name set achieving the maximum number
// of simultaneously completable decks within the budget. The sets are
// sorted lexicographically for deterministic output. The search is
// exponential in the number of candidate decks and blocks the calling
// goroutine; ctx cancellation is checked between expansions.
func (r *Recommender) Recommend(ctx context.Context) ([][]string, error) {
	decks, err := r.relevantDecks()
	if err != nil {
		return nil, err
	}
	if len(decks) == 0 {
		return nil, nil
	}
	if len(decks) > maxCandidates {
		return nil, fmt.Errorf("%w: %d candidates (limit %d)", ErrTooManyDecks, len(decks), maxCandidates)
	}

	rareRows, err := r.rowIndex(decks, cards.RarityRare)
	if err != nil {
		return nil, err
	}
	mythicRows, err := r.rowIndex(decks, cards.RarityMythic)
	if err != nil {
		return nil, err
	}

	cand := make([]candidate, len(decks))
	for i, d := range decks {
		rares, mythics, err := r.deckRows(d, rareRows, mythicRows)
		if err != nil {
			return nil, err
		}
		cand[i] = candidate{deck: d, rares: rares, mythics: mythics}
	}

	seed := r.seedSelection(cand)

	memo := make(map[uint64]int)
	best, err := r.search(ctx, memo, cand, seed)
	if err != nil {
		return nil, err
	}

	// Winners are the selections whose own size equals the best
	// reachable value; those are exactly the maximal terminal states.
	var winners [][]string
	for sel, value := range memo {
		if value != best || bits.OnesCount64(sel) != best {
			continue
		}
		names := make([]string, 0, best)
		for i := range cand {
			if sel&(1<<i) != 0 {
				names = append(names, cand[i].deck.Name)
			}
		}
		sort.Strings(names)
		winners = append(winners, names)
	}
	sort.Slice(winners, func(i, j int) bool {
		a, b := winners[i], winners[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return winners, nil
}

// relevantDecks keeps only decks that are missing at least one rare or
// mythic copy and are individually completable within the budget.
// Decks that bust either bound alone can never appear in a feasible
// subset.
func (r *Recommender) relevantDecks() ([]*deck.Deck, error) {
	var relevant []*deck.Deck
	for _, d := range r.roster.Decks() {
		missingRares, err := r.collection.CountMissingOfRarity(d, r.opts.IgnoreSideboard, cards.RarityRare)
		if err == nil {
			var missingMythics int
			missingMythics, err = r.collection.CountMissingOfRarity(d, r.opts.IgnoreSideboard, cards.RarityMythic)
			if err == nil {
				if missingRares+missingMythics > 0 &&
					missingRares <= r.opts.RaresLimit &&
					missingMythics <= r.opts.MythicsLimit {
					relevant = append(relevant, d)
				}
				continue
			}
		}
		if r.opts.SkipUnresolved {
			slog.Warn("skipping deck with unresolved cards", "deck", d.Name, "error", err)
			continue
		}
		return nil, fmt.Errorf("deck %q: %w", d.Name, err)
	}
	return relevant, nil
}

// rowIndex assigns a stable index to every (card, copy-index) pair
// missing at the target rarity across the candidate decks. Rows are
// deduplicated by identity, not by card name: a deck missing three
// copies contributes three rows, and two decks missing the same single
// copy share one.
func (r *Recommender) rowIndex(decks []*deck.Deck, target cards.Rarity) (map[rowKey]int, error) {
	seen := make(map[rowKey]bool)
	for _, d := range decks {
		missing, err := r.collection.Missing(d, r.opts.IgnoreSideboard)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", d.Name, err)
		}
		for _, m := range missing {
			if m.Rarity != target {
				continue
			}
			for n := 1; n <= m.Amount; n++ {
				seen[rowKey{name: m.Name, copy: n}] = true
			}
		}
	}

	keys := make([]rowKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return keys[i].name < keys[j].name
		}
		return keys[i].copy < keys[j].copy
	})

	index := make(map[rowKey]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}
	return index, nil
}

// deckRows builds one requirement bitset per rarity for a deck,
// setting only the rows for the deck's own missing copy indices.
func (r *Recommender) deckRows(d *deck.Deck, rareRows, mythicRows map[rowKey]int) (bitset, bitset, error) {
	rares := newBitset(len(rareRows))
	mythics := newBitset(len(mythicRows))
	missing, err := r.collection.Missing(d, r.opts.IgnoreSideboard)
	if err != nil {
		return nil, nil, fmt.Errorf("deck %q: %w", d.Name, err)
	}
	for _, m := range missing {
		var rows map[rowKey]int
		var bs bitset
		switch m.Rarity {
		case cards.RarityRare:
			rows, bs = rareRows, rares
		case cards.RarityMythic:
			rows, bs = mythicRows, mythics
		default:
			continue
		}
		for n := 1; n <= m.Amount; n++ {
			bs.set(rows[rowKey{name: m.Name, copy: n}])
		}
	}
	return rares, mythics, nil
}

// seedSelection converts the starting deck names into a selection
// mask. A seed that already busts the budget is discarded so the
// search always starts from a feasible state.
func (r *Recommender) seedSelection(cand []candidate) uint64 {
	var seed uint64
	for i := range cand {
		for _, name := range r.opts.StartingSelection {
			if cand[i].deck.Name == name {
				seed |= 1 << i
			}
		}
	}
	if seed != 0 && !r.feasible(cand, seed) {
		slog.Warn("starting selection exceeds the wildcard budget, ignoring it")
		return 0
	}
	return seed
}

// feasible checks the budget against the column-wise union of the
// selected decks' requirements. The union matters: overlapping missing
// copies are crafted once, never double-counted.
func (r *Recommender) feasible(cand []candidate, sel uint64) bool {
	if sel == 0 {
		return true
	}
	var rareUnion, mythicUnion bitset
	for i := range cand {
		if sel&(1<<i) == 0 {
			continue
		}
		if rareUnion == nil {
			rareUnion = newBitset(len(cand[i].rares) * 64)
			mythicUnion = newBitset(len(cand[i].mythics) * 64)
		}
		rareUnion.orInto(cand[i].rares)
		mythicUnion.orInto(cand[i].mythics)
	}
	return rareUnion.popcount() <= r.opts.RaresLimit &&
		mythicUnion.popcount() <= r.opts.MythicsLimit
}

// search is the memoized subset walk. State is the selection mask;
// from each state every feasible single-deck addition is explored, and
// a state with no feasible addition scores its own deck count. The
// memo collapses the many addition orders that reach the same subset.
func (r *Recommender) search(ctx context.Context, memo map[uint64]int, cand []candidate, sel uint64) (int, error) {
	if value, ok := memo[sel]; ok {
		return value, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	best := -1
	for i := range cand {
		next := sel | 1<<i
		if next == sel || !r.feasible(cand, next) {
			continue
		}
		value, err := r.search(ctx, memo, cand, next)
		if err != nil {
			return 0, err
		}
		if value > best {
			best = value
		}
	}
	if best < 0 {
		// Terminal: nothing more fits in the budget.
		best = bits.OnesCount64(sel)
	}
	memo[sel] = best
	return best, nil
}
