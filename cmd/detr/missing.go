package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/inventory"
)

func missingCmd() *cobra.Command {
	var ignoreSideboard bool
	cmd := &cobra.Command{
		Use:   "missing <deck>",
		Short: "List the cards a deck still needs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			state, err := loadState(ctx, store)
			if err != nil {
				return err
			}
			d, err := state.roster.Find(args[0])
			if err != nil {
				return err
			}

			inv := inventory.New(state.collection, state.wallet)
			missing, err := inv.MissingCards(d, ignoreSideboard)
			if err != nil {
				return err
			}

			if len(missing) == 0 {
				fmt.Printf("Deck %q is complete.\n", d.Name)
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "AMOUNT\tCARD\tRARITY")
			total := 0
			for _, m := range missing {
				fmt.Fprintf(w, "%d\t%s\t%s\n", m.Amount, m.Name, m.Rarity)
				total += m.Amount
			}
			fmt.Fprintf(w, "\t%d cards missing\t\n", total)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ignoreSideboard, "ignore-sideboard", false, "count mainboard (and wishboard) only")
	return cmd
}
