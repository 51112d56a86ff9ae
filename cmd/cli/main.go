package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/escalas/cmd/cli/commands"
	"github.com/jakechorley/escalas/internal/config"
	"github.com/jakechorley/escalas/pkg/postgres"
	"github.com/jakechorley/escalas/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}

	// publicDB is only opened when a separate read-only credential is configured
	publicDB *postgres.DB
	stop     context.CancelFunc
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "escalas",
		Short: "Escalas - weekly ministry rosters",
		Long:  `A CLI and HTTP server for building, locking and publishing the weekend service rosters.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeApp()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: dev, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.RosterCmd(app))
	rootCmd.AddCommand(commands.ServantsCmd(app))
	rootCmd.AddCommand(commands.WeeksCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.ExportCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))

	if err := rootCmd.Execute(); err != nil {
		closeApp()
		os.Exit(1)
	}
}

// initApp sets up logger, config and database pools
func initApp() error {
	var err error
	app.Ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app.Logger, err = logging.InitLogger(env, logging.Options{Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	app.Postgres, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.Database = app.Postgres
	app.PublicReader = app.Postgres

	if readOnlyURL := app.Cfg.ReadOnlyDatabaseURL(); readOnlyURL != app.Cfg.DatabaseURL {
		app.Logger.Info("Connecting to read-only database")
		publicDB, err = postgres.NewDB(app.Ctx, readOnlyURL)
		if err != nil {
			return fmt.Errorf("failed to initialize read-only database: %w", err)
		}
		app.PublicReader = publicDB
	}
	app.Logger.Debug("Database connected successfully")

	return nil
}

func closeApp() {
	if publicDB != nil {
		publicDB.Close()
		publicDB = nil
	}
	if app.Postgres != nil {
		app.Postgres.Close()
		app.Postgres = nil
	}
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
	if stop != nil {
		stop()
		stop = nil
	}
}
