package main

import (
	"context"
	"fmt"

	"github.com/ramonehamilton/decklist-tracker/internal/config"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/cards"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/deck"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/wildcards"
	"github.com/ramonehamilton/decklist-tracker/internal/storage"
)

// initStorage opens the tracker database with migrations applied.
// Callers own the returned store's lifetime.
func initStorage(cfg *config.Config) (*storage.Store, error) {
	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}

	dbConfig := storage.DefaultConfig(path)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("open tracker database: %w", err)
	}
	return storage.NewStore(db), nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// trackerState is everything the read-mostly commands need.
type trackerState struct {
	collection *cards.Collection
	roster     *deck.Roster
	wallet     wildcards.Wallet
}

func loadState(ctx context.Context, store *storage.Store) (*trackerState, error) {
	collection, err := store.LoadCollection(ctx)
	if err != nil {
		return nil, err
	}
	roster, err := store.LoadRoster(ctx)
	if err != nil {
		return nil, err
	}
	wallet, err := store.LoadWallet(ctx)
	if err != nil {
		return nil, err
	}
	return &trackerState{collection: collection, roster: roster, wallet: wallet}, nil
}

func closeStore(store *storage.Store) {
	_ = store.DB().Close()
}
