package roster

import (
	"github.com/jakechorley/escalas/pkg/core/catalog"
	"github.com/jakechorley/escalas/pkg/core/model"
)

// RemovedServantName is shown in place of a servant that was deactivated or deleted
const RemovedServantName = "removed servant"

// ViewMode selects which roster projection BuildWeekView produces
type ViewMode int

const (
	// ViewAuthoring keeps every assignment and flags those with an invalid servant
	ViewAuthoring ViewMode = iota
	// ViewPublic drops assignments whose servant is inactive or missing
	ViewPublic
)

// Placement is an assignment resolved against the servant directory
type Placement struct {
	AssignmentID string
	ServantID    string
	ServantName  string
	Area         string
	Day          model.Day
	Function     string
	Locked       bool
	Position     int
	Invalid      bool // Servant is inactive or missing
	Designation  Designation
}

// SlotView is one drop zone of the board
type SlotView struct {
	DropZone   string
	Function   string
	Label      string
	Placements []Placement
}

// AreaDayView groups the slots of one area on one service day
type AreaDayView struct {
	Area  string
	Label string
	Day   model.Day
	Date  string
	Slots []SlotView
}

// WeekView is the ordered roster of a week
type WeekView struct {
	WeekStart string
	Public    bool
	Areas     []AreaDayView

	// Unplaced holds assignments that fit no group of the catalog
	// (unknown area, invalid day, or a Sunday-only area on Saturday).
	// Always empty in public views.
	Unplaced []Placement
}

// BuildWeekView resolves and orders a week's assignments.
//
// Groups are emitted Saturday first, then Sunday, with areas in catalog order
// and areas that are not staffed on a day omitted. Function areas expose one
// slot per catalog function (public views only keep filled slots), followed
// by any slots for functions unknown to the catalog.
func BuildWeekView(weekStart string, snapshot []model.Assignment, servants []model.Servant, mode ViewMode) (*WeekView, error) {
	start, err := ParseWeekStart(weekStart)
	if err != nil {
		return nil, err
	}

	directory := make(map[string]model.Servant, len(servants))
	for _, s := range servants {
		directory[s.ID] = s
	}

	view := &WeekView{
		WeekStart: weekStart,
		Public:    mode == ViewPublic,
	}

	byAreaDay := make(map[catalog.Slot][]model.Assignment)
	for _, a := range snapshot {
		if a.WeekStart != weekStart {
			continue
		}
		placement := resolve(a, directory)
		if mode == ViewPublic && placement.Invalid {
			continue
		}

		area, ok := catalog.Lookup(a.Area)
		if !ok || !a.Day.IsValid() || !area.AppliesOn(a.Day) {
			if mode == ViewAuthoring {
				view.Unplaced = append(view.Unplaced, placement)
			}
			continue
		}

		key := catalog.Slot{Area: a.Area, Day: a.Day}
		byAreaDay[key] = append(byAreaDay[key], a)
	}

	for _, day := range model.Days {
		date := ServiceDate(start, day).Format(DateFormat)
		for _, area := range catalog.AreasOn(day) {
			areaView := AreaDayView{
				Area:  area.Key,
				Label: area.Label,
				Day:   day,
				Date:  date,
			}

			groups := OrderGroup(area, byAreaDay[catalog.Slot{Area: area.Key, Day: day}])
			areaView.Slots = buildSlots(area, day, groups, directory, mode)
			view.Areas = append(view.Areas, areaView)
		}
	}

	return view, nil
}

func buildSlots(area catalog.Area, day model.Day, groups []FunctionGroup, directory map[string]model.Servant, mode ViewMode) []SlotView {
	filled := make(map[string]FunctionGroup, len(groups))
	for _, g := range groups {
		filled[g.Function] = g
	}

	var functions []string
	if area.RequiresFunction {
		for _, f := range area.Functions {
			if _, ok := filled[f.Key]; ok || mode == ViewAuthoring {
				functions = append(functions, f.Key)
			}
		}
		for _, g := range groups {
			if area.FunctionIndex(g.Function) < 0 {
				functions = append(functions, g.Function)
			}
		}
	} else {
		functions = []string{""}
	}

	index := 0
	slots := make([]SlotView, 0, len(functions))
	for _, function := range functions {
		slot := SlotView{
			DropZone: catalog.Slot{Area: area.Key, Day: day, Function: function}.String(),
			Function: function,
			Label:    area.FunctionLabel(function),
		}
		if function == "" {
			slot.Label = area.Label
		}
		for _, a := range filled[function].Assignments {
			placement := resolve(a, directory)
			placement.Designation = Designate(area, index)
			slot.Placements = append(slot.Placements, placement)
			index++
		}
		slots = append(slots, slot)
	}

	return slots
}

func resolve(a model.Assignment, directory map[string]model.Servant) Placement {
	p := Placement{
		AssignmentID: a.ID,
		ServantID:    a.ServantID,
		Area:         a.Area,
		Day:          a.Day,
		Function:     a.Function,
		Locked:       a.Locked,
		Position:     a.Position,
	}

	servant, ok := directory[a.ServantID]
	if !ok || !servant.IsActive() {
		p.ServantName = RemovedServantName
		p.Invalid = true
		return p
	}
	p.ServantName = servant.Name
	return p
}

// InvalidPlacements returns the placements of an authoring view whose servant
// is inactive or missing
func (v *WeekView) InvalidPlacements() []Placement {
	var result []Placement
	for _, p := range append(v.Placements(), v.Unplaced...) {
		if p.Invalid {
			result = append(result, p)
		}
	}
	return result
}

// Placements returns every placed assignment of the view in display order
func (v *WeekView) Placements() []Placement {
	var result []Placement
	for _, area := range v.Areas {
		for _, slot := range area.Slots {
			result = append(result, slot.Placements...)
		}
	}
	return result
}
