package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ramonehamilton/decklist-tracker/internal/daemon"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/cardlookup"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/inventory"
	"github.com/ramonehamilton/decklist-tracker/internal/scryfall"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync collection and wildcards from the running Arena client",
		Long: `Pulls owned cards and the wildcard wallet from mtga-tracker-daemon,
resolves Arena card IDs through Scryfall, and updates the local
ledger. Arena must be running with the daemon attached.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := initStorage(cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			clientConfig := daemon.DefaultClientConfig(cfg.Daemon.Port)
			if timeout, err := cfg.DaemonTimeout(); err == nil {
				clientConfig.Timeout = timeout
			}
			client := daemon.NewClient(clientConfig)

			status, err := client.GetStatus(ctx)
			if err != nil {
				return fmt.Errorf("daemon not reachable on port %d: %w", cfg.Daemon.Port, err)
			}
			if !status.MTGAConnected {
				return fmt.Errorf("daemon is up but MTG Arena is not running")
			}

			counts, err := client.GetCards(ctx)
			if err != nil {
				return fmt.Errorf("fetch owned cards: %w", err)
			}
			playerInv, err := client.GetInventory(ctx)
			if err != nil {
				return fmt.Errorf("fetch player inventory: %w", err)
			}

			state, err := loadState(ctx, store)
			if err != nil {
				return err
			}

			lookup := cardlookup.NewService(store, scryfall.NewClient())

			fmt.Printf("Resolving %d card IDs...\n", len(counts.Cards))
			bar := progressbar.Default(int64(len(counts.Cards)))
			fresh, err := lookup.BuildCollection(ctx, counts.Cards, func(done, total int) {
				_ = bar.Add(1)
			})
			if err != nil {
				return err
			}
			_ = bar.Finish()

			wallet := playerInv.Wallet()
			inv := inventory.New(state.collection, wallet)
			if err := inv.UpdateCollection(ctx, lookup, fresh, state.roster, nil); err != nil {
				return err
			}

			if err := store.SaveCollection(ctx, inv.Collection()); err != nil {
				return err
			}
			if err := store.SaveWallet(ctx, wallet); err != nil {
				return err
			}

			fmt.Printf("Synced %d cards; wallet: %d common, %d uncommon, %d rare, %d mythic wildcards\n",
				inv.Collection().Len(), wallet.Common, wallet.Uncommon, wallet.Rare, wallet.Mythic)
			return nil
		},
	}
}
