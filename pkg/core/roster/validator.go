package roster

import (
	"fmt"

	"github.com/jakechorley/escalas/pkg/core/catalog"
	"github.com/jakechorley/escalas/pkg/core/model"
)

// Proposal is a candidate placement checked by Validate.
// AssignmentID is set when an existing assignment is being moved.
type Proposal struct {
	AssignmentID string
	WeekStart    string
	Day          model.Day
	Area         string
	Function     string
	ServantID    string
}

// Validate checks a proposed placement against the week's roster snapshot.
//
// Checks run in order and the first failure is returned:
//   - the area must exist and the day must be a service day
//   - an area that requires a function must be given one (ErrMissingFunction)
//   - an area without functions must not be given one (ErrUnexpectedFunction)
//   - Sunday-only areas cannot be used on Saturday (ErrAreaNotAvailableOnDay)
//   - the servant must not hold another assignment on the same week and day
//     (ErrServantAlreadyScheduledThisDay)
//
// Area/function slots are not exclusive: several servants may share one.
func Validate(p Proposal, snapshot []model.Assignment) error {
	area, ok := catalog.Lookup(p.Area)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownArea, p.Area)
	}
	if !p.Day.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDay, p.Day)
	}

	if area.RequiresFunction && p.Function == "" {
		return fmt.Errorf("%w: %s", ErrMissingFunction, area.Key)
	}
	if !area.RequiresFunction && p.Function != "" {
		return fmt.Errorf("%w: %s given %q", ErrUnexpectedFunction, area.Key, p.Function)
	}
	if !area.AppliesOn(p.Day) {
		return fmt.Errorf("%w: %s on %s", ErrAreaNotAvailableOnDay, area.Key, p.Day)
	}

	if conflict := findDayConflict(p, snapshot); conflict != nil {
		return fmt.Errorf("%w: servant %s already in %s on %s %s",
			ErrServantAlreadyScheduledThisDay, p.ServantID, conflict.Area, p.WeekStart, p.Day)
	}

	return nil
}

// findDayConflict returns the assignment that already places the proposal's
// servant on the same week and day, ignoring the assignment being moved
func findDayConflict(p Proposal, snapshot []model.Assignment) *model.Assignment {
	for i := range snapshot {
		a := &snapshot[i]
		if a.WeekStart != p.WeekStart || a.Day != p.Day || a.ServantID != p.ServantID {
			continue
		}
		if p.AssignmentID != "" && a.ID == p.AssignmentID {
			continue
		}
		return a
	}
	return nil
}
