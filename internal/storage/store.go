package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/cards"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/deck"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/wildcards"
)

// Store provides whole-document snapshot persistence over a DB.
type Store struct {
	db *DB
}

// NewStore creates a store over an open database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying database handle.
func (s *Store) DB() *DB {
	return s.db
}

// LoadCollection reads the whole ownership ledger.
func (s *Store) LoadCollection(ctx context.Context) (*cards.Collection, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT name, set_code, rarity, amount FROM collection ORDER BY name, set_code`)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	defer func() { _ = rows.Close() }()

	collection := cards.NewCollection()
	for rows.Next() {
		var name, setCode, rarity string
		var amount int
		if err := rows.Scan(&name, &setCode, &rarity, &amount); err != nil {
			return nil, fmt.Errorf("scan collection row: %w", err)
		}
		collection.Insert(cards.CardData{
			Amount:  amount,
			Name:    name,
			Rarity:  cards.ParseRarity(rarity),
			SetCode: setCode,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection rows: %w", err)
	}
	return collection, nil
}

// SaveCollection replaces the stored ledger with the given snapshot.
func (s *Store) SaveCollection(ctx context.Context, collection *cards.Collection) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM collection`); err != nil {
			return fmt.Errorf("clear collection: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO collection (name, set_code, rarity, amount) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare collection insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, row := range collection.All() {
			if _, err := stmt.ExecContext(ctx, row.Name, row.SetCode, row.Rarity.String(), row.Amount); err != nil {
				return fmt.Errorf("insert collection row %q: %w", row.Name, err)
			}
		}
		return nil
	})
}

// LoadRoster reads every tracked deck in roster order.
func (s *Store) LoadRoster(ctx context.Context) (*deck.Roster, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT id, name, companion FROM decks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	type deckRecord struct {
		id   int64
		deck *deck.Deck
	}
	var records []deckRecord
	for rows.Next() {
		var rec deckRecord
		var name, companion string
		if err := rows.Scan(&rec.id, &name, &companion); err != nil {
			return nil, fmt.Errorf("scan deck row: %w", err)
		}
		rec.deck = &deck.Deck{Name: name, Companion: companion}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deck rows: %w", err)
	}

	for _, rec := range records {
		cardRows, err := s.db.conn.QueryContext(ctx,
			`SELECT board, name, amount FROM deck_cards WHERE deck_id = ? ORDER BY board, position`, rec.id)
		if err != nil {
			return nil, fmt.Errorf("query cards of deck %q: %w", rec.deck.Name, err)
		}
		for cardRows.Next() {
			var board, name string
			var amount int
			if err := cardRows.Scan(&board, &name, &amount); err != nil {
				_ = cardRows.Close()
				return nil, fmt.Errorf("scan deck card row: %w", err)
			}
			entry := deck.Entry{Name: name, Amount: amount}
			if board == "side" {
				rec.deck.Sideboard = append(rec.deck.Sideboard, entry)
			} else {
				rec.deck.Mainboard = append(rec.deck.Mainboard, entry)
			}
		}
		if err := cardRows.Err(); err != nil {
			_ = cardRows.Close()
			return nil, fmt.Errorf("iterate deck card rows: %w", err)
		}
		_ = cardRows.Close()
	}

	decks := make([]*deck.Deck, len(records))
	for i, rec := range records {
		decks[i] = rec.deck
	}
	return deck.NewRoster(decks), nil
}

// SaveRoster replaces the stored roster with the given snapshot.
func (s *Store) SaveRoster(ctx context.Context, roster *deck.Roster) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM decks`); err != nil {
			return fmt.Errorf("clear decks: %w", err)
		}
		for position, d := range roster.Decks() {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO decks (name, companion, position) VALUES (?, ?, ?)`,
				d.Name, d.Companion, position)
			if err != nil {
				return fmt.Errorf("insert deck %q: %w", d.Name, err)
			}
			deckID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("deck %q id: %w", d.Name, err)
			}
			if err := insertBoard(ctx, tx, deckID, "main", d.Mainboard); err != nil {
				return fmt.Errorf("deck %q mainboard: %w", d.Name, err)
			}
			if err := insertBoard(ctx, tx, deckID, "side", d.Sideboard); err != nil {
				return fmt.Errorf("deck %q sideboard: %w", d.Name, err)
			}
		}
		return nil
	})
}

func insertBoard(ctx context.Context, tx *sql.Tx, deckID int64, board string, entries []deck.Entry) error {
	for position, e := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO deck_cards (deck_id, board, position, name, amount) VALUES (?, ?, ?, ?, ?)`,
			deckID, board, position, e.Name, e.Amount); err != nil {
			return fmt.Errorf("insert card %q: %w", e.Name, err)
		}
	}
	return nil
}

// LoadWallet reads the wildcard wallet. A fresh database yields a zero
// wallet.
func (s *Store) LoadWallet(ctx context.Context) (wildcards.Wallet, error) {
	var w wildcards.Wallet
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT common, uncommon, rare, mythic FROM wallet WHERE id = 1`).
		Scan(&w.Common, &w.Uncommon, &w.Rare, &w.Mythic)
	if errors.Is(err, sql.ErrNoRows) {
		return wildcards.Wallet{}, nil
	}
	if err != nil {
		return wildcards.Wallet{}, fmt.Errorf("query wallet: %w", err)
	}
	return w, nil
}

// SaveWallet upserts the wildcard wallet.
func (s *Store) SaveWallet(ctx context.Context, w wildcards.Wallet) error {
	_, err := s.db.conn.ExecContext(ctx, `
		INSERT INTO wallet (id, common, uncommon, rare, mythic) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			common = excluded.common,
			uncommon = excluded.uncommon,
			rare = excluded.rare,
			mythic = excluded.mythic`,
		w.Common, w.Uncommon, w.Rare, w.Mythic)
	if err != nil {
		return fmt.Errorf("save wallet: %w", err)
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
