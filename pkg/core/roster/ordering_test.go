package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/escalas/pkg/core/catalog"
	"github.com/jakechorley/escalas/pkg/core/model"
)

func mustArea(t *testing.T, key string) catalog.Area {
	t.Helper()
	area, ok := catalog.Lookup(key)
	require.True(t, ok, "area %s should exist", key)
	return area
}

func functionsOf(groups []FunctionGroup) []string {
	var functions []string
	for _, g := range groups {
		functions = append(functions, g.Function)
	}
	return functions
}

func TestOrderGroup_WorshipCatalogOrder(t *testing.T) {
	// Inserted as voice1, ministro, bass
	assignments := []model.Assignment{
		{ID: "a1", Area: "worship", Day: model.DaySunday, Function: "voice1", Position: 1},
		{ID: "a2", Area: "worship", Day: model.DaySunday, Function: "ministro", Position: 2},
		{ID: "a3", Area: "worship", Day: model.DaySunday, Function: "bass", Position: 3},
	}

	groups := OrderGroup(mustArea(t, "worship"), assignments)

	assert.Equal(t, []string{"ministro", "voice1", "bass"}, functionsOf(groups))

	var ids []string
	for _, a := range Flatten(groups) {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"a2", "a1", "a3"}, ids)
}

func TestOrderGroup_UnknownFunctionsLast(t *testing.T) {
	assignments := []model.Assignment{
		{ID: "a1", Function: "trumpet", Position: 1},
		{ID: "a2", Function: "drums", Position: 2},
		{ID: "a3", Function: "", Position: 3},
		{ID: "a4", Function: "ministro", Position: 4},
	}

	groups := OrderGroup(mustArea(t, "worship"), assignments)

	assert.Equal(t, []string{"ministro", "drums", "trumpet", ""}, functionsOf(groups))
}

func TestOrderGroup_PositionWithinPartition(t *testing.T) {
	assignments := []model.Assignment{
		{ID: "late", Function: "voice1", Position: 9},
		{ID: "early", Function: "voice1", Position: 2},
		{ID: "tie-first", Function: "voice1", Position: 5},
		{ID: "tie-second", Function: "voice1", Position: 5},
	}

	groups := OrderGroup(mustArea(t, "worship"), assignments)
	require.Len(t, groups, 1)

	var ids []string
	for _, a := range groups[0].Assignments {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"early", "tie-first", "tie-second", "late"}, ids)
}

func TestOrderGroup_NoFunctionArea(t *testing.T) {
	assignments := []model.Assignment{
		{ID: "a1", Position: 3},
		{ID: "a2", Position: 1},
	}

	groups := OrderGroup(mustArea(t, "media"), assignments)
	require.Len(t, groups, 1)
	assert.Equal(t, "", groups[0].Function)
	assert.Equal(t, "a2", groups[0].Assignments[0].ID)

	assert.Nil(t, OrderGroup(mustArea(t, "media"), nil))
}

func TestOrderGroup_DoesNotMutateInput(t *testing.T) {
	assignments := []model.Assignment{
		{ID: "a1", Position: 3},
		{ID: "a2", Position: 1},
	}

	OrderGroup(mustArea(t, "sound"), assignments)
	assert.Equal(t, "a1", assignments[0].ID)
}

func TestDesignate(t *testing.T) {
	kids := mustArea(t, "kids_sunday")
	assert.Equal(t, DesignationResponsible, Designate(kids, 0))
	assert.Equal(t, DesignationTeam, Designate(kids, 1))

	media := mustArea(t, "media")
	assert.Equal(t, DesignationNone, Designate(media, 0))
}

func TestNextPosition(t *testing.T) {
	assert.Equal(t, 1, NextPosition(nil))
	assert.Equal(t, 8, NextPosition([]model.Assignment{{Position: 3}, {Position: 7}, {Position: 0}}))
}
