package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/decklist-tracker/internal/charts"
	"github.com/ramonehamilton/decklist-tracker/internal/config"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/cards"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/inventory"
)

func statsCmd() *cobra.Command {
	var (
		output          string
		openAfter       bool
		byRarity        bool
		ignoreSideboard bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Render collection statistics as an HTML chart",
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

			state, err := loadState(ctx, store)
			if err != nil {
				return err
			}
			if len(state.roster.Decks()) == 0 {
				fmt.Println("No decks tracked. Use 'detr deck add' to add one.")
				return nil
			}

			if output == "" {
				dir, err := config.Dir()
				if err != nil {
					return err
				}
				output = filepath.Join(dir, "stats.html")
			}

			inv := inventory.New(state.collection, state.wallet)
			chartConfig := charts.DefaultConfig()

			if byRarity {
				if err := renderMissingChart(state, inv, chartConfig, output, ignoreSideboard); err != nil {
					return err
				}
			} else {
				if err := renderCostChart(state, inv, chartConfig, output, ignoreSideboard); err != nil {
					return err
				}
			}

			fmt.Printf("Wrote %s\n", output)
			if openAfter {
				return charts.OpenInBrowser(output)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output HTML file (default: stats.html under the config dir)")
	cmd.Flags().BoolVar(&openAfter, "open", false, "open the chart in the browser")
	cmd.Flags().BoolVar(&byRarity, "by-rarity", false, "chart missing cards per rarity instead of costs")
	cmd.Flags().BoolVar(&ignoreSideboard, "ignore-sideboard", false, "count mainboards (and wishboards) only")
	return cmd
}

func renderCostChart(state *trackerState, inv *inventory.Inventory, chartConfig charts.Config, output string, ignoreSideboard bool) error {
	var costs []charts.DeckCost
	for _, d := range state.roster.Decks() {
		cost, err := inv.DeckCost(d, ignoreSideboard)
		if err != nil {
			return fmt.Errorf("deck %q: %w", d.Name, err)
		}
		costs = append(costs, charts.DeckCost{Name: d.Name, Cost: cost})
	}
	sort.SliceStable(costs, func(i, j int) bool { return costs[i].Cost < costs[j].Cost })

	chartConfig.Title = "Deck completion costs"
	chartConfig.Subtitle = "missing copies weighted by wildcard scarcity"
	return charts.RenderDeckCosts(costs, chartConfig, output)
}

func renderMissingChart(state *trackerState, inv *inventory.Inventory, chartConfig charts.Config, output string, ignoreSideboard bool) error {
	var missing []charts.MissingByRarity
	for _, d := range state.roster.Decks() {
		cardsMissing, err := inv.MissingCards(d, ignoreSideboard)
		if err != nil {
			return fmt.Errorf("deck %q: %w", d.Name, err)
		}
		row := charts.MissingByRarity{Name: d.Name}
		for _, m := range cardsMissing {
			switch m.Rarity {
			case cards.RarityCommon:
				row.Common += m.Amount
			case cards.RarityUncommon:
				row.Uncommon += m.Amount
			case cards.RarityRare:
				row.Rare += m.Amount
			case cards.RarityMythic:
				row.Mythic += m.Amount
			}
		}
		missing = append(missing, row)
	}

	chartConfig.Title = "Missing cards by rarity"
	return charts.RenderMissingByRarity(missing, chartConfig, output)
}
