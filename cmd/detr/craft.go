package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/crafting"
)

func craftCmd() *cobra.Command {
	var (
		rares           int
		mythics         int
		ignoreSideboard bool
		start           []string
		skipUnresolved  bool
	)
	cmd := &cobra.Command{
		Use:   "craft",
		Short: "Recommend which decks to finish with the current budget",
		Long: `Searches the roster for the largest set of decks that can all be
completed at once within a rare/mythic wildcard budget, accounting
for missing copies shared between decks. Prints every equally good
set.`,
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

			if !cmd.Flags().Changed("rares") {
				rares = cfg.Craft.RaresLimit
			}
			if !cmd.Flags().Changed("mythics") {
				mythics = cfg.Craft.MythicsLimit
			}
			if !cmd.Flags().Changed("ignore-sideboard") {
				ignoreSideboard = cfg.Craft.IgnoreSideboard
			}

			recommender := crafting.New(crafting.Options{
				RaresLimit:        rares,
				MythicsLimit:      mythics,
				IgnoreSideboard:   ignoreSideboard,
				StartingSelection: start,
				SkipUnresolved:    skipUnresolved,
			}, state.roster, state.collection)

			recommendations, err := recommender.Recommend(ctx)
			if err != nil {
				return err
			}

			if len(recommendations) == 0 || len(recommendations[0]) == 0 {
				fmt.Printf("No deck can be completed within %d rares and %d mythics.\n", rares, mythics)
				return nil
			}

			fmt.Printf("Best plans completing %d deck(s) within %d rares and %d mythics:\n",
				len(recommendations[0]), rares, mythics)
			for i, set := range recommendations {
				fmt.Printf("  %d. %s\n", i+1, strings.Join(set, ", "))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&rares, "rares", 0, "rare wildcard budget (default from config)")
	cmd.Flags().IntVar(&mythics, "mythics", 0, "mythic wildcard budget (default from config)")
	cmd.Flags().BoolVar(&ignoreSideboard, "ignore-sideboard", false, "plan mainboards (and wishboards) only")
	cmd.Flags().StringSliceVar(&start, "start", nil, "deck names to pre-select in the plan")
	cmd.Flags().BoolVar(&skipUnresolved, "skip-unresolved", false, "skip decks with unknown cards instead of failing")
	return cmd
}
