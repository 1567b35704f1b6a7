package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tour-manager/internal/config"
	"tour-manager/internal/database"
	"tour-manager/pkg/logger"
)

var (
	cfg *config.Config
	log *zap.Logger

	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "tour-manager",
	Short: "Tour booking backend for a guide agency",
	Long: `tour-manager serves the booking API for clients, guides and tours.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}

		var err error
		if cfg, err = config.Load(files...); err != nil {
			return err
		}
		if log, err = logger.New(&cfg.Log, logger.DefaultServiceName); err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}
		zap.ReplaceGlobals(log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load settings from this file instead of .env")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// openDB connects to the configured database.
func openDB(ctx context.Context) (*database.DB, error) {
	db, err := database.New(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
