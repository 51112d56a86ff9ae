package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/core/roster"
	"github.com/jakechorley/escalas/pkg/db"
)

// GetWeekView builds the authoring view of a week. Assignments whose servant
// was deactivated or deleted stay on the board, marked as removed.
func GetWeekView(ctx context.Context, reader db.RosterReader, logger *zap.Logger, weekStart string) (*roster.WeekView, error) {
	return buildWeekView(ctx, reader, logger, weekStart, roster.ViewAuthoring)
}

// GetPublicWeekView builds the read-only public roster of a week. Assignments
// whose servant is inactive or missing are left out.
func GetPublicWeekView(ctx context.Context, reader db.RosterReader, logger *zap.Logger, weekStart string) (*roster.WeekView, error) {
	return buildWeekView(ctx, reader, logger, weekStart, roster.ViewPublic)
}

func buildWeekView(ctx context.Context, reader db.RosterReader, logger *zap.Logger, weekStart string, mode roster.ViewMode) (*roster.WeekView, error) {
	if _, err := roster.ParseWeekStart(weekStart); err != nil {
		return nil, err
	}

	logger.Debug("Fetching week", zap.String("week_start", weekStart), zap.Bool("public", mode == roster.ViewPublic))

	assignments, err := reader.GetAssignmentsByWeek(ctx, weekStart)
	if err != nil {
		return nil, roster.StorageError("fetch week assignments", err)
	}

	// The public roster never needs inactive servants: missing ones are hidden either way
	servants, err := reader.GetServants(ctx, mode == roster.ViewPublic)
	if err != nil {
		return nil, roster.StorageError("fetch servants", err)
	}

	view, err := roster.BuildWeekView(weekStart, assignments, servants, mode)
	if err != nil {
		return nil, err
	}

	if mode == roster.ViewAuthoring {
		if invalid := view.InvalidPlacements(); len(invalid) > 0 {
			logger.Debug("Week has assignments for removed servants",
				zap.String("week_start", weekStart),
				zap.Int("count", len(invalid)))
		}
	}

	return view, nil
}

// AvailableServants lists the active servants not yet assigned on the given
// week and day. excludeAssignmentID keeps the servant of that assignment in
// the list, for editing an existing placement. The result is computed from
// fresh reads on every call.
func AvailableServants(ctx context.Context, reader db.RosterReader, logger *zap.Logger, weekStart string, day model.Day, excludeAssignmentID string) ([]model.Servant, error) {
	if _, err := roster.ParseWeekStart(weekStart); err != nil {
		return nil, err
	}
	if !day.IsValid() {
		return nil, fmt.Errorf("%w: %q", roster.ErrInvalidDay, day)
	}

	assignments, err := reader.GetAssignmentsByWeek(ctx, weekStart)
	if err != nil {
		return nil, roster.StorageError("fetch week assignments", err)
	}

	servants, err := reader.GetServants(ctx, true)
	if err != nil {
		return nil, roster.StorageError("fetch servants", err)
	}

	available := roster.Available(servants, assignments, weekStart, day, excludeAssignmentID)

	logger.Debug("Computed availability",
		zap.String("week_start", weekStart),
		zap.String("day", string(day)),
		zap.Int("active", len(servants)),
		zap.Int("available", len(available)))

	return available, nil
}
