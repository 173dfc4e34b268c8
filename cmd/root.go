package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	config "task-service.com/task-service/internal/configs"
	"task-service.com/task-service/internal/logger"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "task-service",
	Short:         "Multi-tenant task service",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads .env and the configuration and builds the process logger.
func bootstrap() (config.Config, *zap.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return config.Config{}, nil, err
	}

	if envErr != nil {
		log.Debug(".env file not found, using environment variables")
	}

	return cfg, log, nil
}
