package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/leave-tracker/internal/config"
	appHTTP "github.com/cmlabs-hris/leave-tracker/internal/handler/http"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "leave-tracker",
	Short:        "Leave Tracker",
	Long:         `Employee registry and leave request workflow with per-employee balances.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads configuration and installs the process-wide logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	logger := appHTTP.NewLogger(level, cfg.App.Name, cfg.App.Version, cfg.App.Env)
	slog.SetDefault(logger)

	return cfg, logger, nil
}
