package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/core/roster"
	"github.com/jakechorley/escalas/pkg/core/services"
)

func renderFixture(t *testing.T, mode roster.ViewMode) *roster.WeekView {
	t.Helper()
	servants := []model.Servant{
		{ID: "s1", Name: "Ana", Status: model.StatusActive},
		{ID: "s2", Name: "Bruno", Status: model.StatusInactive},
	}
	snapshot := []model.Assignment{
		{ID: "a1", WeekStart: "2024-06-01", Area: "worship", Day: model.DaySunday, Function: "bass", ServantID: "s1", Locked: true, Position: 1},
		{ID: "a2", WeekStart: "2024-06-01", Area: "media", Day: model.DaySaturday, ServantID: "s2", Position: 2},
	}
	view, err := roster.BuildWeekView("2024-06-01", snapshot, servants, mode)
	require.NoError(t, err)
	return view
}

func TestPrintWeekView_Authoring(t *testing.T) {
	var buf bytes.Buffer
	printWeekView(&buf, renderFixture(t, roster.ViewAuthoring))
	out := buf.String()

	assert.Contains(t, out, "Roster - week of 2024-06-01")
	assert.Contains(t, out, "SATURDAY 2024-06-01")
	assert.Contains(t, out, "SUNDAY 2024-06-02")
	assert.Contains(t, out, "Ana [locked]")
	assert.Contains(t, out, "a1")
	// Empty drop zones are listed so they can be filled
	assert.Contains(t, out, "[worship|sunday|ministro]")
	assert.Contains(t, out, colorRed)
}

func TestPrintWeekView_Public(t *testing.T) {
	var buf bytes.Buffer
	printWeekView(&buf, renderFixture(t, roster.ViewPublic))
	out := buf.String()

	assert.Contains(t, out, "Public roster - week of 2024-06-01")
	assert.Contains(t, out, "Ana")
	assert.NotContains(t, out, "Bruno")
	assert.NotContains(t, out, "[locked]")
	assert.NotContains(t, out, "a1")
	assert.NotContains(t, out, "(empty)")
	// Saturday has nothing public left once the inactive servant is hidden
	assert.NotContains(t, out, "SATURDAY")
}

func TestPrintMutation(t *testing.T) {
	tests := []struct {
		name   string
		result *services.MutationResult
		want   string
	}{
		{
			name:   "no-op",
			result: &services.MutationResult{Changed: false},
			want:   "Nothing to do",
		},
		{
			name:   "deleted",
			result: &services.MutationResult{Changed: true},
			want:   "✓ Assignment deleted",
		},
		{
			name: "moved",
			result: &services.MutationResult{
				Changed: true,
				Assignment: &model.Assignment{
					ID: "a1", WeekStart: "2024-06-01", Area: "worship", Day: model.DaySunday, Function: "keys",
				},
				Week: []model.Assignment{{ID: "a1"}, {ID: "a2"}},
			},
			want: "✓ Assignment moved: a1 2024-06-01 worship|sunday|keys (week now has 2 assignments)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			verb := tt.name
			printMutation(&buf, verb, tt.result)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrintServants(t *testing.T) {
	var buf bytes.Buffer
	printServants(&buf, []model.Servant{
		{ID: "s1", Name: "Ana", Phone: "11 9999", Status: model.StatusActive},
		{ID: "s2", Name: "Bruno", Email: "bruno@example.com", Status: model.StatusInactive},
	})
	out := buf.String()

	assert.Contains(t, out, "Found 2 servants")
	assert.Contains(t, out, "- Ana  11 9999  s1")
	assert.Contains(t, out, "Bruno"+colorDim+" (inactive)"+colorReset+"  bruno@example.com  s2")
}
