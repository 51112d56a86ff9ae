package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/escalas/pkg/core/model"
)

func findArea(t *testing.T, view *WeekView, area string, day model.Day) AreaDayView {
	t.Helper()
	for _, a := range view.Areas {
		if a.Area == area && a.Day == day {
			return a
		}
	}
	t.Fatalf("area %s on %s not found in view", area, day)
	return AreaDayView{}
}

func TestBuildWeekView_Layout(t *testing.T) {
	view, err := BuildWeekView(testWeek, nil, nil, ViewAuthoring)
	require.NoError(t, err)

	// 5 areas on Saturday (no kids) and 6 on Sunday
	require.Len(t, view.Areas, 11)
	assert.Equal(t, model.DaySaturday, view.Areas[0].Day)
	assert.Equal(t, "2024-06-01", view.Areas[0].Date)
	assert.Equal(t, model.DaySunday, view.Areas[10].Day)
	assert.Equal(t, "2024-06-02", view.Areas[10].Date)

	for _, a := range view.Areas {
		if a.Day == model.DaySaturday {
			assert.NotEqual(t, "kids_sunday", a.Area)
		}
	}

	// Authoring view exposes one drop zone per worship function
	worship := findArea(t, view, "worship", model.DaySunday)
	require.Len(t, worship.Slots, 8)
	assert.Equal(t, "worship|sunday|ministro", worship.Slots[0].DropZone)

	media := findArea(t, view, "media", model.DaySaturday)
	require.Len(t, media.Slots, 1)
	assert.Equal(t, "media|saturday", media.Slots[0].DropZone)
	assert.Equal(t, "Mídia", media.Slots[0].Label)
}

func TestBuildWeekView_InvalidWeekStart(t *testing.T) {
	_, err := BuildWeekView("2024-06-02", nil, nil, ViewAuthoring)
	assert.ErrorIs(t, err, ErrInvalidWeekStart)

	_, err = BuildWeekView("June 1st", nil, nil, ViewPublic)
	assert.ErrorIs(t, err, ErrInvalidWeekStart)
}

func TestBuildWeekView_RemovedServant(t *testing.T) {
	snapshot := []model.Assignment{
		{ID: "a1", WeekStart: testWeek, Area: "media", Day: model.DaySaturday, ServantID: "s1", Position: 1},
		{ID: "a2", WeekStart: testWeek, Area: "media", Day: model.DaySaturday, ServantID: "s3", Position: 2},
		{ID: "a3", WeekStart: testWeek, Area: "sound", Day: model.DaySaturday, ServantID: "gone", Position: 3},
	}

	authoring, err := BuildWeekView(testWeek, snapshot, testServants(), ViewAuthoring)
	require.NoError(t, err)

	media := findArea(t, authoring, "media", model.DaySaturday)
	require.Len(t, media.Slots[0].Placements, 2)
	assert.Equal(t, "Ana", media.Slots[0].Placements[0].ServantName)
	assert.False(t, media.Slots[0].Placements[0].Invalid)
	assert.Equal(t, RemovedServantName, media.Slots[0].Placements[1].ServantName)
	assert.True(t, media.Slots[0].Placements[1].Invalid)
	assert.Len(t, authoring.InvalidPlacements(), 2)

	public, err := BuildWeekView(testWeek, snapshot, testServants(), ViewPublic)
	require.NoError(t, err)
	assert.True(t, public.Public)

	placements := public.Placements()
	require.Len(t, placements, 1)
	assert.Equal(t, "a1", placements[0].AssignmentID)
}

func TestBuildWeekView_Designations(t *testing.T) {
	snapshot := []model.Assignment{
		// Kids: responsible is the earliest placed
		{ID: "k1", WeekStart: testWeek, Area: "kids_sunday", Day: model.DaySunday, ServantID: "s2", Position: 5},
		{ID: "k2", WeekStart: testWeek, Area: "kids_sunday", Day: model.DaySunday, ServantID: "s1", Position: 2},
		// Connection: responsible is the first in function order
		{ID: "c1", WeekStart: testWeek, Area: "connection", Function: "parking", Day: model.DaySaturday, ServantID: "s1", Position: 1},
		{ID: "c2", WeekStart: testWeek, Area: "connection", Function: "main_entrance", Day: model.DaySaturday, ServantID: "s4", Position: 3},
		// Media: no designation
		{ID: "m1", WeekStart: testWeek, Area: "media", Day: model.DaySunday, ServantID: "s4", Position: 4},
	}

	view, err := BuildWeekView(testWeek, snapshot, testServants(), ViewAuthoring)
	require.NoError(t, err)

	designations := make(map[string]Designation)
	for _, p := range view.Placements() {
		designations[p.AssignmentID] = p.Designation
	}

	assert.Equal(t, DesignationResponsible, designations["k2"])
	assert.Equal(t, DesignationTeam, designations["k1"])
	assert.Equal(t, DesignationResponsible, designations["c2"])
	assert.Equal(t, DesignationTeam, designations["c1"])
	assert.Equal(t, DesignationNone, designations["m1"])
}

func TestBuildWeekView_PublicResponsibleSkipsRemoved(t *testing.T) {
	snapshot := []model.Assignment{
		{ID: "k1", WeekStart: testWeek, Area: "kids_sunday", Day: model.DaySunday, ServantID: "s3", Position: 1},
		{ID: "k2", WeekStart: testWeek, Area: "kids_sunday", Day: model.DaySunday, ServantID: "s1", Position: 2},
	}

	view, err := BuildWeekView(testWeek, snapshot, testServants(), ViewPublic)
	require.NoError(t, err)

	placements := view.Placements()
	require.Len(t, placements, 1)
	assert.Equal(t, "k2", placements[0].AssignmentID)
	assert.Equal(t, DesignationResponsible, placements[0].Designation)
}

func TestBuildWeekView_PublicKeepsOnlyFilledFunctions(t *testing.T) {
	snapshot := []model.Assignment{
		{ID: "w1", WeekStart: testWeek, Area: "worship", Function: "bass", Day: model.DaySunday, ServantID: "s1", Position: 1},
	}

	view, err := BuildWeekView(testWeek, snapshot, testServants(), ViewPublic)
	require.NoError(t, err)

	worship := findArea(t, view, "worship", model.DaySunday)
	require.Len(t, worship.Slots, 1)
	assert.Equal(t, "Baixo", worship.Slots[0].Label)
}

func TestBuildWeekView_Unplaced(t *testing.T) {
	snapshot := []model.Assignment{
		{ID: "x1", WeekStart: testWeek, Area: "kids_sunday", Day: model.DaySaturday, ServantID: "s1"},
		{ID: "x2", WeekStart: testWeek, Area: "choir", Day: model.DaySunday, ServantID: "s2"},
		{ID: "other", WeekStart: "2024-06-08", Area: "media", Day: model.DaySunday, ServantID: "s2"},
	}

	authoring, err := BuildWeekView(testWeek, snapshot, testServants(), ViewAuthoring)
	require.NoError(t, err)
	assert.Len(t, authoring.Unplaced, 2)
	assert.Empty(t, authoring.Placements())

	public, err := BuildWeekView(testWeek, snapshot, testServants(), ViewPublic)
	require.NoError(t, err)
	assert.Empty(t, public.Unplaced)
}
