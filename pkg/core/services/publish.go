package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/escalas/pkg/core/roster"
	"github.com/jakechorley/escalas/pkg/db"
)

// RosterPublisher writes a public week view to an external destination
type RosterPublisher interface {
	PublishWeek(ctx context.Context, view *roster.WeekView) error
}

// PublishWeek builds the public roster of a week and hands it to the publisher.
// Only the read-only roster interface is used.
func PublishWeek(ctx context.Context, reader db.RosterReader, publisher RosterPublisher, logger *zap.Logger, weekStart string) (*roster.WeekView, error) {
	view, err := GetPublicWeekView(ctx, reader, logger, weekStart)
	if err != nil {
		return nil, err
	}

	logger.Info("Publishing week",
		zap.String("week_start", weekStart),
		zap.Int("placements", len(view.Placements())))

	if err := publisher.PublishWeek(ctx, view); err != nil {
		return nil, fmt.Errorf("failed to publish week %s: %w", weekStart, err)
	}

	logger.Info("Week published", zap.String("week_start", weekStart))
	return view, nil
}
