package roster

import "github.com/jakechorley/escalas/pkg/core/model"

// Available returns the active servants who hold no assignment on the given
// week and day. The assignment identified by excludeAssignmentID (if any) is
// ignored, so the servant currently in a slot being edited stays selectable.
// Servants are returned in directory order.
func Available(servants []model.Servant, snapshot []model.Assignment, weekStart string, day model.Day, excludeAssignmentID string) []model.Servant {
	busy := make(map[string]bool)
	for _, a := range snapshot {
		if a.WeekStart != weekStart || a.Day != day {
			continue
		}
		if excludeAssignmentID != "" && a.ID == excludeAssignmentID {
			continue
		}
		busy[a.ServantID] = true
	}

	available := make([]model.Servant, 0, len(servants))
	for _, s := range servants {
		if !s.IsActive() || busy[s.ID] {
			continue
		}
		available = append(available, s)
	}
	return available
}
