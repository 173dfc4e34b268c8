package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	config "task-service.com/task-service/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the task schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		database, err := config.NewDatabaseClient(cfg.DatabaseDSN, cfg.DatabaseLogLevel)
		if err != nil {
			return err
		}
		if err := config.Migrate(database); err != nil {
			return err
		}

		log.Info("schema migrated", zap.String("dsn", cfg.DatabaseDSN))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
