package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/wildcards"
)

func wildcardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wildcards",
		Short: "Show the wildcard wallet and scarcity coefficients",
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

			wallet, err := store.LoadWallet(ctx)
			if err != nil {
				return err
			}
			coeffs := wallet.Coefficients()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "RARITY\tOWNED\tCOEFFICIENT")
			fmt.Fprintf(w, "Common\t%d\t%.2f\n", wallet.Common, coeffs.Common)
			fmt.Fprintf(w, "Uncommon\t%d\t%.2f\n", wallet.Uncommon, coeffs.Uncommon)
			fmt.Fprintf(w, "Rare\t%d\t%.2f\n", wallet.Rare, coeffs.Rare)
			fmt.Fprintf(w, "Mythic\t%d\t%.2f\n", wallet.Mythic, coeffs.Mythic)
			return nil
		},
	}

	cmd.AddCommand(wildcardsSetCmd())
	return cmd
}

func wildcardsSetCmd() *cobra.Command {
	var common, uncommon, rare, mythic int
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the wallet manually (when syncing is not an option)",
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

			wallet, err := store.LoadWallet(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("common") {
				wallet.Common = common
			}
			if cmd.Flags().Changed("uncommon") {
				wallet.Uncommon = uncommon
			}
			if cmd.Flags().Changed("rare") {
				wallet.Rare = rare
			}
			if cmd.Flags().Changed("mythic") {
				wallet.Mythic = mythic
			}
			if wallet != (wildcards.Wallet{}) || anyWalletFlagChanged(cmd) {
				if err := store.SaveWallet(ctx, wallet); err != nil {
					return err
				}
			}

			fmt.Printf("Wallet: %d common, %d uncommon, %d rare, %d mythic\n",
				wallet.Common, wallet.Uncommon, wallet.Rare, wallet.Mythic)
			return nil
		},
	}
	cmd.Flags().IntVar(&common, "common", 0, "common wildcards owned")
	cmd.Flags().IntVar(&uncommon, "uncommon", 0, "uncommon wildcards owned")
	cmd.Flags().IntVar(&rare, "rare", 0, "rare wildcards owned")
	cmd.Flags().IntVar(&mythic, "mythic", 0, "mythic wildcards owned")
	return cmd
}

func anyWalletFlagChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"common", "uncommon", "rare", "mythic"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
