package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/escalas/pkg/core/catalog"
	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/core/roster"
)

// mockPublisher records the views handed to it
type mockPublisher struct {
	published  []*roster.WeekView
	publishErr error
}

func (m *mockPublisher) PublishWeek(ctx context.Context, view *roster.WeekView) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, view)
	return nil
}

func TestPublishWeek(t *testing.T) {
	store := newMockRosterStore(testServants(),
		model.Assignment{ID: "a1", WeekStart: testWeek, Area: catalog.AreaSound, Day: model.DaySaturday, ServantID: "s1", Position: 1},
		model.Assignment{ID: "a2", WeekStart: testWeek, Area: catalog.AreaMedia, Day: model.DaySunday, ServantID: "s3", Position: 2},
	)
	publisher := &mockPublisher{}

	view, err := PublishWeek(context.Background(), store, publisher, zap.NewNop(), testWeek)
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	assert.Same(t, view, publisher.published[0])
	assert.True(t, view.Public)
	// Inactive servant s3 is not published
	assert.Equal(t, []string{"Ana"}, placementNames(view.Placements()))
}

func TestPublishWeek_PublisherError(t *testing.T) {
	store := newMockRosterStore(testServants())
	publisher := &mockPublisher{publishErr: errors.New("quota exceeded")}

	_, err := PublishWeek(context.Background(), store, publisher, zap.NewNop(), testWeek)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
