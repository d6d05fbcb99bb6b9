package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/decklist-tracker/internal/storage"
)

func backupCmd() *cobra.Command {
	var (
		dir      string
		password string
	)
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up the tracker database",
		Long: `Creates a point-in-time copy of the tracker database. With
--password the backup is encrypted; the same password is needed to
restore it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := initStorage(cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			if dir == "" {
				dir = cfg.Storage.BackupDir
			}
			path, err := store.Backup(dir, password)
			if err != nil {
				return err
			}
			fmt.Printf("Backup written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "backup directory (default: backups/ next to the database)")
	cmd.Flags().StringVar(&password, "password", "", "encrypt the backup with this password")

	cmd.AddCommand(backupRestoreCmd())
	return cmd
}

func backupRestoreCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dbPath, err := cfg.DatabasePath()
			if err != nil {
				return err
			}

			if err := storage.RestoreBackup(args[0], dbPath, password); err != nil {
				return err
			}
			fmt.Printf("Restored %s from %s\n", dbPath, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password for encrypted backups")
	return cmd
}
