package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/escalas/pkg/core/catalog"
	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/core/services"
)

// RosterCmd creates the roster command group
func RosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "View and edit the weekly roster",
	}

	cmd.AddCommand(
		weekCmd(app),
		publicWeekCmd(app),
		availableCmd(app),
		addAssignmentCmd(app),
		moveAssignmentCmd(app),
		lockAssignmentCmd(app),
		unlockAssignmentCmd(app),
		deleteAssignmentCmd(app),
	)
	return cmd
}

func weekCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "week <week_start>",
		Short: "Show the authoring view of a week (week_start is its Saturday, YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := services.GetWeekView(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			printWeekView(cmd.OutOrStdout(), view)
			if invalid := view.InvalidPlacements(); len(invalid) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "⚠️  %d assignments reference removed servants\n", len(invalid))
			}
			return nil
		},
	}
}

func publicWeekCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "public <week_start>",
		Short: "Show the public roster of a week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := services.GetPublicWeekView(app.Ctx, app.PublicReader, app.Logger, args[0])
			if err != nil {
				return err
			}

			printWeekView(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func availableCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "available <week_start> <saturday|sunday>",
		Short: "List active servants not yet assigned on a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			exclude, _ := cmd.Flags().GetString("exclude")

			servants, err := services.AvailableServants(app.Ctx, app.Database, app.Logger, args[0], model.Day(args[1]), exclude)
			if err != nil {
				return err
			}

			printServants(cmd.OutOrStdout(), servants)
			return nil
		},
	}

	cmd.Flags().String("exclude", "", "Assignment id whose servant should stay in the list")
	return cmd
}

func addAssignmentCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <week_start> <servant_id> <drop_zone>",
		Short: "Place a servant in a slot, e.g. worship|sunday|bass",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := catalog.ParseDropZone(args[2])
			if err != nil {
				return err
			}
			createdBy, _ := cmd.Flags().GetString("by")

			app.Logger.Debug("roster add command",
				zap.String("week_start", args[0]),
				zap.String("servant_id", args[1]),
				zap.String("slot", slot.String()))

			result, err := services.CreateAssignment(app.Ctx, app.Database, app.Logger, services.CreateAssignmentInput{
				WeekStart: args[0],
				Area:      slot.Area,
				Day:       slot.Day,
				Function:  slot.Function,
				ServantID: args[1],
				CreatedBy: createdBy,
			})
			if err != nil {
				return err
			}

			printMutation(cmd.OutOrStdout(), "created", result)
			return nil
		},
	}

	cmd.Flags().String("by", "cli", "Author recorded on the assignment")
	return cmd
}

func moveAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "move <assignment_id> <drop_zone>",
		Short: "Move an assignment to another slot of the same week",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := catalog.ParseDropZone(args[1])
			if err != nil {
				return err
			}

			result, err := services.MoveAssignment(app.Ctx, app.Database, app.Logger, args[0], slot)
			if err != nil {
				return err
			}

			printMutation(cmd.OutOrStdout(), "moved", result)
			return nil
		},
	}
}

func lockAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lock <assignment_id>",
		Short: "Lock an assignment so it cannot be moved or deleted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.LockAssignment(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			printMutation(cmd.OutOrStdout(), "locked", result)
			return nil
		},
	}
}

func unlockAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <assignment_id>",
		Short: "Unlock an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.UnlockAssignment(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			printMutation(cmd.OutOrStdout(), "unlocked", result)
			return nil
		},
	}
}

func deleteAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <assignment_id>",
		Short: "Delete an unlocked assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.DeleteAssignment(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			printMutation(cmd.OutOrStdout(), "deleted", result)
			return nil
		},
	}
}
