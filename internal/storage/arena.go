package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/cards"
)

// ArenaCard is one cached arena-ID translation. NotFound marks IDs
// Scryfall does not know, so syncs stop re-fetching them.
type ArenaCard struct {
	ArenaID  int
	Name     string
	Rarity   cards.Rarity
	SetCode  string
	NotFound bool
}

// ArenaCard looks up a cached translation. A cache miss returns
// (nil, nil).
func (s *Store) ArenaCard(ctx context.Context, arenaID int) (*ArenaCard, error) {
	var card ArenaCard
	var rarity string
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT arena_id, name, rarity, set_code, not_found FROM arena_cards WHERE arena_id = ?`,
		arenaID).Scan(&card.ArenaID, &card.Name, &rarity, &card.SetCode, &card.NotFound)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query arena card %d: %w", arenaID, err)
	}
	card.Rarity = cards.ParseRarity(rarity)
	return &card, nil
}

// SaveArenaCard upserts a translation into the cache.
func (s *Store) SaveArenaCard(ctx context.Context, card *ArenaCard) error {
	_, err := s.db.conn.ExecContext(ctx, `
		INSERT INTO arena_cards (arena_id, name, rarity, set_code, not_found, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (arena_id) DO UPDATE SET
			name = excluded.name,
			rarity = excluded.rarity,
			set_code = excluded.set_code,
			not_found = excluded.not_found,
			updated_at = CURRENT_TIMESTAMP`,
		card.ArenaID, card.Name, card.Rarity.String(), card.SetCode, card.NotFound)
	if err != nil {
		return fmt.Errorf("save arena card %d: %w", card.ArenaID, err)
	}
	return nil
}
