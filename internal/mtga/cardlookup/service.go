// Package cardlookup resolves card identities against Scryfall,
// backed by the local translation cache. It is the only package that
// talks to both the storage layer and the Scryfall client.
package cardlookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/cards"
	"github.com/ramonehamilton/decklist-tracker/internal/scryfall"
	"github.com/ramonehamilton/decklist-tracker/internal/storage"
)

// Service provides card lookup with caching.
type Service struct {
	store  *storage.Store
	client *scryfall.Client
}

// NewService creates a card lookup service over an open store and a
// Scryfall client.
func NewService(store *storage.Store, client *scryfall.Client) *Service {
	return &Service{store: store, client: client}
}

// Translate resolves an Arena ID to a card identity. It checks the
// cache first and falls back to Scryfall, caching the answer either
// way. IDs Scryfall does not know (tokens, cosmetic variants) are
// cached as not-found and yield (nil, nil) without further network
// traffic.
func (s *Service) Translate(ctx context.Context, arenaID int) (*storage.ArenaCard, error) {
	cached, err := s.store.ArenaCard(ctx, arenaID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		if cached.NotFound {
			return nil, nil
		}
		return cached, nil
	}

	card, err := s.client.CardByArenaID(ctx, arenaID)
	if scryfall.IsNotFound(err) {
		marker := &storage.ArenaCard{ArenaID: arenaID, NotFound: true}
		if saveErr := s.store.SaveArenaCard(ctx, marker); saveErr != nil {
			slog.Warn("failed to cache not-found marker", "arena_id", arenaID, "error", saveErr)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch arena id %d: %w", arenaID, err)
	}

	translated := &storage.ArenaCard{
		ArenaID: arenaID,
		Name:    cards.SimplifiedName(card.Name),
		Rarity:  cards.ParseRarity(card.Rarity),
		SetCode: card.SetCode,
	}
	if err := s.store.SaveArenaCard(ctx, translated); err != nil {
		slog.Warn("failed to cache translation", "arena_id", arenaID, "error", err)
	}
	return translated, nil
}

// CardPrintings returns every Arena-playable printing of a card by
// exact name. It satisfies the card database dependency of the
// inventory package.
func (s *Service) CardPrintings(ctx context.Context, name string) ([]cards.CardData, error) {
	printings, err := s.client.CardPrintings(ctx, name)
	if err != nil {
		return nil, err
	}

	var out []cards.CardData
	for _, p := range printings {
		if !p.OnArena() {
			continue
		}
		out = append(out, cards.CardData{
			Amount:  0,
			Name:    cards.SimplifiedName(p.Name),
			Rarity:  cards.ParseRarity(p.Rarity),
			SetCode: p.SetCode,
		})
	}
	return out, nil
}

// BuildCollection translates a map of arena IDs to owned amounts into
// an ownership ledger. Unresolvable IDs are skipped. progress, when
// non-nil, is called after each ID with (done, total).
func (s *Service) BuildCollection(ctx context.Context, counts map[int]int, progress func(done, total int)) (*cards.Collection, error) {
	collection := cards.NewCollection()
	total := len(counts)
	done := 0
	for arenaID, amount := range counts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := s.Translate(ctx, arenaID)
		if err != nil {
			return nil, err
		}
		done++
		if progress != nil {
			progress(done, total)
		}
		if card == nil {
			continue
		}

		collection.Insert(cards.CardData{
			Amount:  amount,
			Name:    card.Name,
			Rarity:  card.Rarity,
			SetCode: card.SetCode,
		})
	}
	return collection, nil
}
