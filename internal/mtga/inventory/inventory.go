// Package inventory composes the card ledger with the wildcard economy
// to answer what completing a deck costs and which version of a card is
// cheapest to own.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/cards"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/deck"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/wildcards"
)

// playsetSize is the most copies of a non-land card a deck can play,
// so owned amounts beyond it never matter.
const playsetSize = 4

// CardDatabase is the external card-database collaborator. It returns
// the printings of a card that are legal in the Arena ecosystem, or an
// empty slice when the card does not exist there.
type CardDatabase interface {
	CardPrintings(ctx context.Context, name string) ([]cards.CardData, error)
}

// Inventory pairs a collection snapshot with the session's wildcard
// coefficients. It holds no I/O; persistence belongs to the storage
// layer.
type Inventory struct {
	collection *cards.Collection
	coeffs     wildcards.Coefficients
}

// New builds an inventory over a loaded collection and wallet.
func New(collection *cards.Collection, wallet wildcards.Wallet) *Inventory {
	return &Inventory{
		collection: collection,
		coeffs:     wallet.Coefficients(),
	}
}

// Collection exposes the underlying ledger.
func (inv *Inventory) Collection() *cards.Collection {
	return inv.collection
}

// Coefficients returns the session's wildcard cost coefficients.
func (inv *Inventory) Coefficients() wildcards.Coefficients {
	return inv.coeffs
}

// CardAmount sums the owned copies across all printings of a card,
// clamped to a playset of four.
func (inv *Inventory) CardAmount(name string) (int, error) {
	group, err := inv.collection.Get(name)
	if err != nil {
		return 0, err
	}
	owned := 0
	for _, p := range group {
		owned += p.Amount
	}
	if owned > playsetSize {
		owned = playsetSize
	}
	return owned, nil
}

// CheapestRarity returns the cheapest rarity among the card's owned
// printings, using the wallet's cost-ascending rarity order.
func (inv *Inventory) CheapestRarity(name string) (cards.Rarity, error) {
	group, err := inv.collection.Get(name)
	if err != nil {
		return cards.RarityUnknown, err
	}
	for _, rarity := range inv.coeffs.Order() {
		for _, p := range group {
			if p.Rarity == rarity {
				return rarity, nil
			}
		}
	}
	// Only printings of unknown rarity remain.
	return cards.RarityUnknown, nil
}

// CheapestVersion returns the printing whose rarity is cheapest under
// the current wallet.
func (inv *Inventory) CheapestVersion(name string) (cards.CardData, error) {
	rarity, err := inv.CheapestRarity(name)
	if err != nil {
		return cards.CardData{}, err
	}
	group, err := inv.collection.Get(name)
	if err != nil {
		return cards.CardData{}, err
	}
	for _, p := range group {
		if p.Rarity == rarity {
			return cards.CardData{Amount: p.Amount, Name: name, Rarity: p.Rarity, SetCode: p.SetCode}, nil
		}
	}
	return cards.CardData{}, fmt.Errorf("no printing of %s with rarity %s", name, rarity)
}

// CardCost is the wildcard coefficient of the card's cheapest rarity.
func (inv *Inventory) CardCost(name string) (float64, error) {
	rarity, err := inv.CheapestRarity(name)
	if err != nil {
		return 0, err
	}
	return inv.coeffs.Select(rarity), nil
}

// CardCostConsideringDeck ranks a card's craft priority within a deck.
// A requirement already met costs nothing. Otherwise the raw cost is
// scaled by how many copies the deck plays, plus a bonus that rewards
// cards close to completion. The result orders suggestions; it is not
// a true crafting cost.
func (inv *Inventory) CardCostConsideringDeck(name string, inDeckAmount int) (float64, error) {
	owned, err := inv.CardAmount(name)
	if err != nil {
		return 0, err
	}
	missing := inDeckAmount - owned
	if missing <= 0 {
		return 0, nil
	}
	cost, err := inv.CardCost(name)
	if err != nil {
		return 0, err
	}
	return cost*float64(inDeckAmount) + float64(playsetSize)/float64(missing), nil
}

// DeckCost scores how far a deck is from playable: the wildcard cost of
// every missing copy, minus a closeness bound of one playset of rares
// plus a mythic, floored at 1 so complete and nearly-complete decks
// stay comparable when sorting.
func (inv *Inventory) DeckCost(d *deck.Deck, ignoreSideboard bool) (float64, error) {
	total := 0.0
	for name, amount := range d.Cards(ignoreSideboard) {
		if cards.IsBasicLand(name) {
			continue
		}
		owned, err := inv.CardAmount(name)
		if err != nil {
			return 0, err
		}
		missing := amount - owned
		if missing <= 0 {
			continue
		}
		cost, err := inv.CardCost(name)
		if err != nil {
			return 0, err
		}
		total += float64(missing) * cost
	}
	closenessBound := playsetSize*inv.coeffs.Rare + inv.coeffs.Mythic
	if total-closenessBound > 1.0 {
		return total - closenessBound, nil
	}
	return 1.0, nil
}

// MissingCards reports the deck's missing copies per card.
func (inv *Inventory) MissingCards(d *deck.Deck, ignoreSideboard bool) ([]cards.MissingCard, error) {
	return inv.collection.Missing(d, ignoreSideboard)
}

// EnsureKnown fetches printings for every roster card the ledger has
// never seen, so later cost computations cannot hit ErrUnknownCard.
// Cards the database does not know are logged and skipped; they will
// surface as ErrUnknownCard later if a deck really needs them.
// progress, when non-nil, is called after each card with (done, total).
func (inv *Inventory) EnsureKnown(ctx context.Context, db CardDatabase, roster *deck.Roster, progress func(done, total int)) error {
	required := roster.Cards(false)
	unknown := make([]string, 0, len(required))
	for name := range required {
		if !inv.collection.Has(name) && !cards.IsBasicLand(name) {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)

	for i, name := range unknown {
		if err := ctx.Err(); err != nil {
			return err
		}
		printings, err := db.CardPrintings(ctx, cards.SimplifiedName(name))
		if err != nil {
			slog.Warn("failed to fetch unknown card", "card", name, "error", err)
		}
		for _, p := range printings {
			p.Amount = 0
			inv.collection.Insert(p)
		}
		if progress != nil {
			progress(i+1, len(unknown))
		}
	}
	return nil
}

// UpdateCollection refreshes the ledger from freshly fetched data:
// roster cards are warmed first so every deck reference is resolvable,
// then the fresh snapshot is merged in with last-writer-wins per
// (name, set). Persisting the merged ledger is the caller's flush at
// shutdown.
func (inv *Inventory) UpdateCollection(ctx context.Context, db CardDatabase, fresh *cards.Collection, roster *deck.Roster, progress func(done, total int)) error {
	if err := inv.EnsureKnown(ctx, db, roster, progress); err != nil {
		return fmt.Errorf("ensure roster cards known: %w", err)
	}
	inv.collection.Merge(fresh)
	return nil
}
