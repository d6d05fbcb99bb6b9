package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/deck"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/inventory"
)

func costCmd() *cobra.Command {
	var (
		ignoreSideboard bool
		suggest         bool
	)
	cmd := &cobra.Command{
		Use:   "cost [deck...]",
		Short: "Show deck completion costs in wildcard-coefficient units",
		Long: `Computes each deck's completion cost: missing copies weighted by the
scarcity of the wildcards they would spend. A complete deck costs the
1.0 floor. Without arguments every tracked deck is listed, cheapest
first.`,
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

			var decks []*deck.Deck
			if len(args) == 0 {
				decks = state.roster.Decks()
			} else {
				for _, name := range args {
					d, err := state.roster.Find(name)
					if err != nil {
						return err
					}
					decks = append(decks, d)
				}
			}
			if len(decks) == 0 {
				fmt.Println("No decks tracked. Use 'detr deck add' to add one.")
				return nil
			}

			inv := inventory.New(state.collection, state.wallet)

			type deckCost struct {
				name string
				cost float64
			}
			costs := make([]deckCost, 0, len(decks))
			for _, d := range decks {
				cost, err := inv.DeckCost(d, ignoreSideboard)
				if err != nil {
					return fmt.Errorf("deck %q: %w", d.Name, err)
				}
				costs = append(costs, deckCost{name: d.Name, cost: cost})
			}
			sort.SliceStable(costs, func(i, j int) bool { return costs[i].cost < costs[j].cost })

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DECK\tCOST")
			for _, c := range costs {
				fmt.Fprintf(w, "%s\t%.2f\n", c.name, c.cost)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if !suggest {
				return nil
			}
			for _, c := range costs {
				d, err := state.roster.Find(c.name)
				if err != nil {
					return err
				}
				if err := printSuggestions(inv, d, ignoreSideboard); err != nil {
					return fmt.Errorf("deck %q: %w", d.Name, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ignoreSideboard, "ignore-sideboard", false, "cost mainboard (and wishboard) only")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "list each deck's missing cards, priciest first")
	return cmd
}

// printSuggestions lists the deck's missing cards ranked by how much
// of the deck's cost they account for, so the most worthwhile crafts
// come first.
func printSuggestions(inv *inventory.Inventory, d *deck.Deck, ignoreSideboard bool) error {
	missing, err := inv.MissingCards(d, ignoreSideboard)
	if err != nil {
		return err
	}
	inDeck := d.Cards(ignoreSideboard)

	type suggestion struct {
		name   string
		amount int
		cost   float64
	}
	suggestions := make([]suggestion, 0, len(missing))
	for _, mc := range missing {
		if mc.Amount == 0 {
			continue
		}
		cost, err := inv.CardCostConsideringDeck(mc.Name, inDeck[mc.Name])
		if err != nil {
			return err
		}
		suggestions = append(suggestions, suggestion{name: mc.Name, amount: mc.Amount, cost: cost})
	}
	if len(suggestions) == 0 {
		return nil
	}
	sort.SliceStable(suggestions, func(i, j int) bool { return suggestions[i].cost > suggestions[j].cost })

	fmt.Printf("\n%s:\n", d.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range suggestions {
		fmt.Fprintf(w, "  %d\t%s\t%.2f\n", s.amount, s.name, s.cost)
	}
	return w.Flush()
}
