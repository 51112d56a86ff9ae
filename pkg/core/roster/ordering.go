package roster

import (
	"slices"

	"github.com/jakechorley/escalas/pkg/core/catalog"
	"github.com/jakechorley/escalas/pkg/core/model"
)

// Designation marks a servant's role within a single-responsible area
type Designation string

const (
	DesignationNone        Designation = ""
	DesignationResponsible Designation = "responsible"
	DesignationTeam        Designation = "team"
)

// FunctionGroup is the ordered set of assignments sharing one function.
// Areas without functions produce a single group with an empty Function.
type FunctionGroup struct {
	Function    string
	Assignments []model.Assignment
}

// OrderGroup orders the assignments of one (area, day) group for display.
//
// Areas that require a function are partitioned by function and the
// partitions follow the catalog's function order; functions missing from
// the catalog come last in the order they were first seen. Within a
// partition, and for areas without functions, assignments are ordered by
// Position with fetch order breaking ties.
func OrderGroup(area catalog.Area, assignments []model.Assignment) []FunctionGroup {
	if len(assignments) == 0 {
		return nil
	}

	if !area.RequiresFunction {
		return []FunctionGroup{{Assignments: sortByPosition(assignments)}}
	}

	partitions := make(map[string][]model.Assignment)
	var seen []string
	for _, a := range assignments {
		if _, ok := partitions[a.Function]; !ok {
			seen = append(seen, a.Function)
		}
		partitions[a.Function] = append(partitions[a.Function], a)
	}

	groups := make([]FunctionGroup, 0, len(seen))
	for _, f := range area.Functions {
		if members, ok := partitions[f.Key]; ok {
			groups = append(groups, FunctionGroup{Function: f.Key, Assignments: sortByPosition(members)})
		}
	}
	for _, function := range seen {
		if area.FunctionIndex(function) >= 0 {
			continue
		}
		groups = append(groups, FunctionGroup{Function: function, Assignments: sortByPosition(partitions[function])})
	}

	return groups
}

// Flatten returns the assignments of ordered groups as one sequence
func Flatten(groups []FunctionGroup) []model.Assignment {
	var result []model.Assignment
	for _, g := range groups {
		result = append(result, g.Assignments...)
	}
	return result
}

// Designate returns the designation of the assignment at the given index of
// an ordered group. In single-responsible areas the first servant is the
// responsible and everyone else is team; other areas carry no designation.
func Designate(area catalog.Area, index int) Designation {
	if !area.HasSingleResponsible() {
		return DesignationNone
	}
	if index == 0 {
		return DesignationResponsible
	}
	return DesignationTeam
}

func sortByPosition(assignments []model.Assignment) []model.Assignment {
	sorted := slices.Clone(assignments)
	slices.SortStableFunc(sorted, func(a, b model.Assignment) int {
		return a.Position - b.Position
	})
	return sorted
}

// NextPosition returns the position to give an assignment placed now in the week
func NextPosition(snapshot []model.Assignment) int {
	next := 1
	for _, a := range snapshot {
		if a.Position >= next {
			next = a.Position + 1
		}
	}
	return next
}
