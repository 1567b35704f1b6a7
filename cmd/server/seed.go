package main

import "github.com/spf13/cobra"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample clients and guides into an empty database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.RunMigrations(cmd.Context()); err != nil {
			return err
		}
		if err := db.Seed(cmd.Context()); err != nil {
			return err
		}
		log.Info("Sample data seeded")
		return nil
	},
}
