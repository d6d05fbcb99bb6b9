package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/deck"
)

func deckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Manage the deck roster",
		Long:  `Add, remove, list, rename, replace and export tracked decks.`,
	}

	cmd.AddCommand(deckAddCmd())
	cmd.AddCommand(deckRemoveCmd())
	cmd.AddCommand(deckListCmd())
	cmd.AddCommand(deckShowCmd())
	cmd.AddCommand(deckRenameCmd())
	cmd.AddCommand(deckReplaceCmd())
	cmd.AddCommand(deckExportCmd())

	return cmd
}

func parseDeckFile(path, name string) (*deck.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read decklist: %w", err)
	}
	d, err := deck.Parse(string(data))
	if err != nil {
		return nil, err
	}
	if name != "" {
		d.Name = name
	}
	if d.Name == "" {
		base := filepath.Base(path)
		d.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return d, nil
}

func deckAddCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "add <decklist-file>",
		Short: "Add a deck from an Arena decklist export",
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

			d, err := parseDeckFile(args[0], name)
			if err != nil {
				return err
			}

			roster, err := store.LoadRoster(ctx)
			if err != nil {
				return err
			}
			if err := roster.Add(d); err != nil {
				return err
			}
			if err := store.SaveRoster(ctx, roster); err != nil {
				return err
			}

			fmt.Printf("Added deck %q (%d mainboard, %d sideboard entries)\n",
				d.Name, len(d.Mainboard), len(d.Sideboard))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "deck name (default: file name)")
	return cmd
}

func deckRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a deck from the roster",
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

			roster, err := store.LoadRoster(ctx)
			if err != nil {
				return err
			}
			if err := roster.Remove(args[0]); err != nil {
				return err
			}
			if err := store.SaveRoster(ctx, roster); err != nil {
				return err
			}

			fmt.Printf("Removed deck %q\n", args[0])
			return nil
		},
	}
}

func deckListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked decks",
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

			roster, err := store.LoadRoster(ctx)
			if err != nil {
				return err
			}

			decks := roster.Decks()
			if len(decks) == 0 {
				fmt.Println("No decks tracked. Use 'detr deck add' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "NAME\tMAIN\tSIDE\tCOMPANION")
			for _, d := range decks {
				main, side := 0, 0
				for _, e := range d.Mainboard {
					main += e.Amount
				}
				for _, e := range d.Sideboard {
					side += e.Amount
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", d.Name, main, side, d.Companion)
			}
			return nil
		},
	}
}

func deckShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a deck in Arena export format",
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

			roster, err := store.LoadRoster(ctx)
			if err != nil {
				return err
			}
			d, err := roster.Find(args[0])
			if err != nil {
				return err
			}

			fmt.Print(d.String())
			return nil
		},
	}
}

func deckRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a tracked deck",
		Args:  cobra.ExactArgs(2),
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

			roster, err := store.LoadRoster(ctx)
			if err != nil {
				return err
			}
			if err := roster.Rename(args[0], args[1]); err != nil {
				return err
			}
			if err := store.SaveRoster(ctx, roster); err != nil {
				return err
			}

			fmt.Printf("Renamed deck %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

func deckReplaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replace <name> <decklist-file>",
		Short: "Replace a deck's list, keeping its roster position",
		Args:  cobra.ExactArgs(2),
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

			d, err := parseDeckFile(args[1], args[0])
			if err != nil {
				return err
			}

			roster, err := store.LoadRoster(ctx)
			if err != nil {
				return err
			}
			if err := roster.Replace(args[0], d); err != nil {
				return err
			}
			if err := store.SaveRoster(ctx, roster); err != nil {
				return err
			}

			fmt.Printf("Replaced deck %q\n", args[0])
			return nil
		},
	}
}

func deckExportCmd() *cobra.Command {
	var toClipboard bool
	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export a deck for importing into Arena",
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

			roster, err := store.LoadRoster(ctx)
			if err != nil {
				return err
			}
			d, err := roster.Find(args[0])
			if err != nil {
				return err
			}

			if toClipboard {
				if err := clipboard.WriteAll(d.String()); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Printf("Copied %q to clipboard\n", d.Name)
				return nil
			}
			fmt.Print(d.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copy the list to the system clipboard")
	return cmd
}
