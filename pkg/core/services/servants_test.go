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

func TestCreateServant(t *testing.T) {
	store := newMockRosterStore(nil)

	servant, err := CreateServant(context.Background(), store, zap.NewNop(), ServantInput{
		Name:  "  Eva Lima ",
		Phone: "+55 11 99999-0000",
		Email: "eva@example.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, servant.ID)
	assert.Equal(t, "Eva Lima", servant.Name)
	assert.Equal(t, model.StatusActive, servant.Status)
	assert.Contains(t, store.servants, servant.ID)
}

func TestCreateServant_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input ServantInput
	}{
		{"empty name", ServantInput{Name: "   "}},
		{"bad email", ServantInput{Name: "Eva", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockRosterStore(nil)

			_, err := CreateServant(context.Background(), store, zap.NewNop(), tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, roster.ErrInvalidServantInput))
			assert.Empty(t, store.servants)
		})
	}
}

func TestUpdateServant_KeepsStatus(t *testing.T) {
	store := newMockRosterStore(testServants())

	servant, err := UpdateServant(context.Background(), store, zap.NewNop(), "s3", ServantInput{Name: "Carla Souza"})
	require.NoError(t, err)

	assert.Equal(t, "Carla Souza", servant.Name)
	assert.Equal(t, model.StatusInactive, store.servants["s3"].Status)
}

func TestUpdateServant_NotFound(t *testing.T) {
	store := newMockRosterStore(testServants())

	_, err := UpdateServant(context.Background(), store, zap.NewNop(), "missing", ServantInput{Name: "X"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, roster.ErrServantNotFound))
}

func TestDeactivateAndActivateServant(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockRosterStore(testServants())

	servant, err := DeactivateServant(ctx, store, logger, "s1")
	require.NoError(t, err)
	assert.False(t, servant.IsActive())

	active, err := ListServants(ctx, store, logger, true)
	require.NoError(t, err)
	assert.NotContains(t, servantIDs(active), "s1")

	_, err = ActivateServant(ctx, store, logger, "s1")
	require.NoError(t, err)
	assert.True(t, store.servants["s1"].IsActive())
}

func TestRemoveServant(t *testing.T) {
	t.Run("never assigned is deleted", func(t *testing.T) {
		store := newMockRosterStore(testServants())

		outcome, err := RemoveServant(context.Background(), store, zap.NewNop(), "s2")
		require.NoError(t, err)
		assert.Equal(t, RemovalDeleted, outcome)
		assert.NotContains(t, store.servants, "s2")
	})

	t.Run("referenced is deactivated", func(t *testing.T) {
		store := newMockRosterStore(testServants(), model.Assignment{
			ID: "a1", WeekStart: "2024-05-25", Area: catalog.AreaSound, Day: model.DaySunday, ServantID: "s2",
		})

		outcome, err := RemoveServant(context.Background(), store, zap.NewNop(), "s2")
		require.NoError(t, err)
		assert.Equal(t, RemovalDeactivated, outcome)
		require.Contains(t, store.servants, "s2")
		assert.Equal(t, model.StatusInactive, store.servants["s2"].Status)
	})

	t.Run("missing", func(t *testing.T) {
		store := newMockRosterStore(testServants())

		_, err := RemoveServant(context.Background(), store, zap.NewNop(), "missing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, roster.ErrServantNotFound))
	})
}

func TestListServants_StorageFailure(t *testing.T) {
	store := newMockRosterStore(testServants())
	store.getServantsE = errors.New("no route to host")

	_, err := ListServants(context.Background(), store, zap.NewNop(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, roster.ErrStorageUnavailable))
}

func servantIDs(servants []model.Servant) []string {
	ids := make([]string, 0, len(servants))
	for _, s := range servants {
		ids = append(ids, s.ID)
	}
	return ids
}

type mockServantSource struct {
	servants []ServantInput
	listErr  error
}

func (m *mockServantSource) ListServants(ctx context.Context) ([]ServantInput, error) {
	return m.servants, m.listErr
}

func TestImportServants(t *testing.T) {
	store := newMockRosterStore(testServants())
	source := &mockServantSource{servants: []ServantInput{
		{Name: "ana"},   // already present, different case
		{Name: "Carla"}, // inactive servants are not revived
		{Name: "Eva", Email: "eva@example.com"},
		{Name: "Fábio", Email: "broken"},
		{Name: "Eva"}, // duplicate within the sheet
	}}

	result, err := ImportServants(context.Background(), store, source, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, "Eva", result.Created[0].Name)
	assert.ElementsMatch(t, []string{"ana", "Carla", "Eva"}, result.Skipped)
	assert.Contains(t, result.Invalid, "Fábio")
	assert.Len(t, store.servants, 5)
	assert.Equal(t, model.StatusInactive, store.servants["s3"].Status)
}

func TestImportServants_SourceError(t *testing.T) {
	store := newMockRosterStore(testServants())
	source := &mockServantSource{listErr: errors.New("permission denied")}

	_, err := ImportServants(context.Background(), store, source, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestIsServantReferenced(t *testing.T) {
	store := newMockRosterStore(testServants(), model.Assignment{
		ID: "a1", WeekStart: "2024-05-25", Area: catalog.AreaSound, Day: model.DaySunday, ServantID: "s3",
	})

	referenced, err := IsServantReferenced(context.Background(), store, "s3")
	require.NoError(t, err)
	assert.True(t, referenced, "references in past weeks count")

	referenced, err = IsServantReferenced(context.Background(), store, "s1")
	require.NoError(t, err)
	assert.False(t, referenced)
}
