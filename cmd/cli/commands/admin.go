package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/escalas/pkg/clients/sheetsclient"
	"github.com/jakechorley/escalas/pkg/core/services"
	"github.com/jakechorley/escalas/pkg/httpapi"
)

// WeeksCmd creates the weeks command
func WeeksCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "List the upcoming roster weeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			if count <= 0 {
				count = app.Cfg.UpcomingWeeks
			}

			weeks, err := services.UpcomingWeeks(app.Cfg.ServiceWeeks, time.Now(), count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nUpcoming roster weeks:\n\n")
			for i, week := range weeks {
				fmt.Fprintf(out, "  %2d. %s\n", i+1, week)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().Int("count", 0, "Number of weeks to list (defaults to upcomingWeeks from the config)")
	return cmd
}

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <week_start>",
		Short: "Publish the public roster of a week to the configured spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Cfg.PublishSheetID == "" {
				return fmt.Errorf("publishSheetID is not configured")
			}

			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			publisher := sheetsclient.NewRosterPublisher(client, app.Cfg.PublishSheetID)
			view, err := services.PublishWeek(app.Ctx, app.PublicReader, publisher, app.Logger, args[0])
			if err != nil {
				return err
			}

			title, _ := sheetsclient.TabTitle(view.WeekStart)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Published %d placements to tab %q\n", len(view.Placements()), title)
			return nil
		},
	}
}

// ExportCmd creates the export command
func ExportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <week_start> <file.xlsx>",
		Short: "Write the public roster of a week to an Excel workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := services.GetPublicWeekView(app.Ctx, app.PublicReader, app.Logger, args[0])
			if err != nil {
				return err
			}

			file, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[1], err)
			}
			defer file.Close()

			if err := sheetsclient.WriteXLSX(file, view); err != nil {
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", args[1], err)
			}

			app.Logger.Info("Roster exported", zap.String("week_start", args[0]), zap.String("file", args[1]))
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d placements to %s\n", len(view.Placements()), args[1])
			return nil
		},
	}
}

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the public roster and the authoring API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Cfg.ListenAddr
			}

			server := httpapi.NewServer(app.Database, app.PublicReader, app.Logger, httpapi.Options{
				AuthorToken:    app.Cfg.AuthorToken,
				AllowedOrigins: app.Cfg.AllowedOrigins,
				ServiceWeeks:   app.Cfg.ServiceWeeks,
				UpcomingWeeks:  app.Cfg.UpcomingWeeks,
			})

			app.Logger.Info("Starting server", zap.String("addr", addr))
			return httpapi.ListenAndServe(app.Ctx, addr, server.Handler(), app.Logger, 15*time.Second)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to listenAddr from the config)")
	return cmd
}

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := app.Postgres.RunMigrations(app.Logger)
			if err != nil {
				return err
			}

			if from == to {
				fmt.Fprintf(cmd.OutOrStdout(), "Database is up to date (version %d)\n", to)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Migrated database from version %d to %d\n", from, to)
			return nil
		},
	}
}
