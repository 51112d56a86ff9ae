package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/core/roster"
	"github.com/jakechorley/escalas/pkg/core/services"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorDim   = "\033[2m"
	colorBold  = "\033[1m"
)

// printWeekView prints a roster week grouped by day and area. Empty slots are
// shown in authoring views so they can be filled; public views only list
// filled ones.
func printWeekView(w io.Writer, view *roster.WeekView) {
	title := "Roster"
	if view.Public {
		title = "Public roster"
	}
	fmt.Fprintf(w, "\n%s%s - week of %s%s\n", colorBold, title, view.WeekStart, colorReset)

	var currentDay model.Day
	for _, area := range view.Areas {
		if !hasPlacements(area) && view.Public {
			continue
		}
		if area.Day != currentDay {
			currentDay = area.Day
			fmt.Fprintf(w, "\n%s %s\n", strings.ToUpper(string(area.Day)), area.Date)
		}

		fmt.Fprintf(w, "  %s\n", area.Label)
		for _, slot := range area.Slots {
			if len(slot.Placements) == 0 {
				if !view.Public {
					fmt.Fprintf(w, "    %-18s %s(empty)%s  %s[%s]%s\n", slot.Label, colorDim, colorReset, colorDim, slot.DropZone, colorReset)
				}
				continue
			}
			for i, p := range slot.Placements {
				label := ""
				if i == 0 {
					label = slot.Label
				}
				fmt.Fprintf(w, "    %-18s %s\n", label, formatPlacement(p, view.Public))
			}
		}
	}

	if len(view.Unplaced) > 0 {
		fmt.Fprintf(w, "\n%sAssignments outside the catalog:%s\n", colorRed, colorReset)
		for _, p := range view.Unplaced {
			fmt.Fprintf(w, "    %s|%s|%s  %s\n", p.Area, p.Day, p.Function, formatPlacement(p, false))
		}
	}
	fmt.Fprintln(w)
}

func hasPlacements(area roster.AreaDayView) bool {
	for _, slot := range area.Slots {
		if len(slot.Placements) > 0 {
			return true
		}
	}
	return false
}

func formatPlacement(p roster.Placement, public bool) string {
	var b strings.Builder
	if p.Invalid {
		b.WriteString(colorRed + p.ServantName + colorReset)
	} else {
		b.WriteString(p.ServantName)
	}
	if p.Designation == roster.DesignationResponsible {
		b.WriteString(" (responsible)")
	}
	if public {
		return b.String()
	}
	if p.Locked {
		b.WriteString(" [locked]")
	}
	fmt.Fprintf(&b, " %s%s%s", colorDim, p.AssignmentID, colorReset)
	return b.String()
}

func printServants(w io.Writer, servants []model.Servant) {
	fmt.Fprintf(w, "\nFound %d servants:\n\n", len(servants))
	for _, s := range servants {
		contact := strings.TrimSpace(strings.Join([]string{s.Phone, s.Email}, " "))
		status := ""
		if !s.IsActive() {
			status = colorDim + " (inactive)" + colorReset
		}
		fmt.Fprintf(w, "- %s%s  %s  %s\n", s.Name, status, contact, s.ID)
	}
}

func printMutation(w io.Writer, verb string, result *services.MutationResult) {
	if !result.Changed {
		fmt.Fprintf(w, "Nothing to do, assignment already in place\n")
		return
	}
	if result.Assignment == nil {
		fmt.Fprintf(w, "✓ Assignment %s\n", verb)
		return
	}
	a := result.Assignment
	fmt.Fprintf(w, "✓ Assignment %s: %s %s %s|%s|%s (week now has %d assignments)\n",
		verb, a.ID, a.WeekStart, a.Area, a.Day, a.Function, len(result.Week))
}
