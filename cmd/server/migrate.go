package main

import (
	"context"

	"github.com/spf13/cobra"

	"tour-manager/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

func init() {
	migrateCmd.AddCommand(
		migrationCmd("up", "Apply all pending migrations", (*database.DB).RunMigrations),
		migrationCmd("down", "Roll back the latest migration", (*database.DB).RollbackMigration),
		migrationCmd("status", "Print the applied state of every migration", (*database.DB).MigrationStatus),
	)
}

func migrationCmd(use, short string, run func(*database.DB, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			return run(db, cmd.Context())
		},
	}
}
