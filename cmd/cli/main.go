package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kitawerk/dienstplan/cmd/cli/commands"
	"github.com/kitawerk/dienstplan/internal/config"
	"github.com/kitawerk/dienstplan/pkg/filestore"
	"github.com/kitawerk/dienstplan/pkg/logging"
)

var (
	envFlag string
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dienstplan",
		Short: "Dienstplan CLI - Generate and manage Kita staff schedules",
		Long:  `A CLI tool for generating, editing and publishing weekly staff schedules for daycare groups.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&envFlag, "env", "e", "", "Environment override (defaults to DIENSTPLAN_ENV)")

	// Add all commands
	rootCmd.AddCommand(commands.GenerateScheduleCmd(app))
	rootCmd.AddCommand(commands.ListSchedulesCmd(app))
	rootCmd.AddCommand(commands.ShowScheduleCmd(app))
	rootCmd.AddCommand(commands.PublishScheduleCmd(app))
	rootCmd.AddCommand(commands.UnpublishScheduleCmd(app))
	rootCmd.AddCommand(commands.ArchiveScheduleCmd(app))
	rootCmd.AddCommand(commands.AddShiftCmd(app))
	rootCmd.AddCommand(commands.RemoveShiftCmd(app))
	rootCmd.AddCommand(commands.RescoreScheduleCmd(app))
	rootCmd.AddCommand(commands.ValidateSnapshotCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the schedule store
func initApp() error {
	appEnv, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	if envFlag != "" {
		appEnv.Environment = envFlag
	}

	logger, err := logging.InitLogger(appEnv.Environment, appEnv.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Starting application", zap.String("environment", appEnv.Environment))

	cfg, err := config.Load()
	switch {
	case errors.Is(err, config.ErrNotFound):
		logger.Debug("No config file found, using defaults")
		cfg = config.Default()
	case err != nil:
		return fmt.Errorf("failed to load config: %w", err)
	default:
		logger.Debug("Configuration loaded successfully")
	}

	store, err := filestore.NewStore(appEnv.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open schedule store: %w", err)
	}
	logger.Debug("Schedule store ready", zap.String("data_dir", appEnv.DataDir))

	app.Cfg = cfg
	app.Env = appEnv
	app.Store = store
	app.Logger = logger
	app.Ctx = context.Background()

	return nil
}
