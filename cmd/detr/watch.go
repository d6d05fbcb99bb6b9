package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/decklist-tracker/internal/deckwatch"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/deck"
	"github.com/ramonehamilton/decklist-tracker/internal/storage"
)

func watchCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory of decklist exports and keep the roster in sync",
		Long: `Monitors a directory for Arena decklist files (.txt or .deck). New
files are added to the roster; changed files replace the deck of the
same name. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Decks.Dir
			}
			if dir == "" {
				return fmt.Errorf("no decklist directory: pass --dir or set decks.dir in the config")
			}

			store, err := initStorage(cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			watcher, err := deckwatch.NewWatcher(dir, func(d *deck.Deck) error {
				return upsertDeck(ctx, store, d)
			})
			if err != nil {
				return err
			}

			err = watcher.Start(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "decklist directory (default from config)")
	return cmd
}

func upsertDeck(ctx context.Context, store *storage.Store, d *deck.Deck) error {
	roster, err := store.LoadRoster(ctx)
	if err != nil {
		return err
	}
	if _, findErr := roster.Find(d.Name); findErr == nil {
		if err := roster.Replace(d.Name, d); err != nil {
			return err
		}
		slog.Info("updated deck from watch directory", "deck", d.Name)
	} else {
		if err := roster.Add(d); err != nil {
			return err
		}
		slog.Info("added deck from watch directory", "deck", d.Name)
	}
	return store.SaveRoster(ctx, roster)
}
