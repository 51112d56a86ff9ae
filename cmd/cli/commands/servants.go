package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/escalas/pkg/clients/sheetsclient"
	"github.com/jakechorley/escalas/pkg/core/services"
)

// ServantsCmd creates the servants command group
func ServantsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "servants",
		Short: "Manage the servant directory",
	}

	cmd.AddCommand(
		listServantsCmd(app),
		addServantCmd(app),
		updateServantCmd(app),
		deactivateServantCmd(app),
		activateServantCmd(app),
		removeServantCmd(app),
		importServantsCmd(app),
	)
	return cmd
}

func listServantsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List servants ordered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			activeOnly, _ := cmd.Flags().GetBool("active")

			servants, err := services.ListServants(app.Ctx, app.Database, app.Logger, activeOnly)
			if err != nil {
				return err
			}

			printServants(cmd.OutOrStdout(), servants)
			return nil
		},
	}

	cmd.Flags().Bool("active", false, "Only list active servants")
	return cmd
}

func servantInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("email", "", "Email address")
}

func servantInputFromFlags(cmd *cobra.Command, name string) services.ServantInput {
	phone, _ := cmd.Flags().GetString("phone")
	email, _ := cmd.Flags().GetString("email")
	return services.ServantInput{Name: name, Phone: phone, Email: email}
}

func addServantCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an active servant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			servant, err := services.CreateServant(app.Ctx, app.Database, app.Logger, servantInputFromFlags(cmd, args[0]))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Servant created: %s (%s)\n", servant.Name, servant.ID)
			return nil
		},
	}

	servantInputFlags(cmd)
	return cmd
}

func updateServantCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <servant_id> <name>",
		Short: "Replace a servant's name and contact details",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			servant, err := services.UpdateServant(app.Ctx, app.Database, app.Logger, args[0], servantInputFromFlags(cmd, args[1]))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Servant updated: %s (%s)\n", servant.Name, servant.ID)
			return nil
		},
	}

	servantInputFlags(cmd)
	return cmd
}

func deactivateServantCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <servant_id>",
		Short: "Mark a servant inactive, keeping their assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			servant, err := services.DeactivateServant(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Servant deactivated: %s\n", servant.Name)
			return nil
		},
	}
}

func activateServantCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <servant_id>",
		Short: "Make an inactive servant available again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			servant, err := services.ActivateServant(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Servant activated: %s\n", servant.Name)
			return nil
		},
	}
}

func removeServantCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <servant_id>",
		Short: "Delete a servant, or deactivate them if they were ever assigned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := services.RemoveServant(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			switch outcome {
			case services.RemovalDeleted:
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Servant deleted\n")
			case services.RemovalDeactivated:
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Servant has assignments and was deactivated instead of deleted\n")
			}
			return nil
		},
	}
}

func importServantsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <spreadsheet_id> <tab>",
		Short: "Import servants from a spreadsheet tab with Nome, Telefone and Email columns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("import servants command",
				zap.String("spreadsheet_id", args[0]),
				zap.String("tab", args[1]))

			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.ImportServants(app.Ctx, app.Database,
				sheetsclient.NewServantSheet(client, args[0], args[1]), app.Logger)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Imported %d servants\n", len(result.Created))
			for _, s := range result.Created {
				fmt.Fprintf(out, "  + %s (%s)\n", s.Name, s.ID)
			}
			if len(result.Skipped) > 0 {
				fmt.Fprintf(out, "\nSkipped %d already in the directory\n", len(result.Skipped))
			}
			if len(result.Invalid) > 0 {
				fmt.Fprintf(out, "\n⚠️  %d rows were invalid:\n", len(result.Invalid))
				for name, reason := range result.Invalid {
					fmt.Fprintf(out, "  ✗ %s: %s\n", name, reason)
				}
			}
			return nil
		},
	}
}
