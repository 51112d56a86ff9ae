package sheetsclient

import (
	"context"
	"fmt"

	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/core/roster"
)

const tabDateFormat = "02/01/2006"

var dayLabels = map[model.Day]string{
	model.DaySaturday: "Sábado",
	model.DaySunday:   "Domingo",
}

// RosterPublisher writes public week views to tabs of one spreadsheet
type RosterPublisher struct {
	client        *Client
	spreadsheetID string
}

func NewRosterPublisher(client *Client, spreadsheetID string) *RosterPublisher {
	return &RosterPublisher{client: client, spreadsheetID: spreadsheetID}
}

// PublishWeek writes the week to the tab "Escala <Saturday> - <Sunday>".
// The tab is created when missing; an existing tab is cleared and rewritten.
func (p *RosterPublisher) PublishWeek(ctx context.Context, view *roster.WeekView) error {
	title, err := TabTitle(view.WeekStart)
	if err != nil {
		return err
	}

	exists, err := p.client.HasSheet(ctx, p.spreadsheetID, title)
	if err != nil {
		return err
	}

	if exists {
		if err := p.client.ClearValues(ctx, p.spreadsheetID, tabRange(title, "A:ZZ")); err != nil {
			return fmt.Errorf("failed to clear tab %q: %w", title, err)
		}
	} else {
		if _, err := p.client.CreateSheet(ctx, p.spreadsheetID, title); err != nil {
			return fmt.Errorf("failed to create tab %q: %w", title, err)
		}
	}

	if err := p.client.UpdateValues(ctx, p.spreadsheetID, tabRange(title, "A1"), RosterRows(view)); err != nil {
		return fmt.Errorf("failed to write tab %q: %w", title, err)
	}

	return nil
}

// TabTitle returns the tab title of a roster week, e.g. "Escala 01/06/2024 - 02/06/2024"
func TabTitle(weekStart string) (string, error) {
	start, err := roster.ParseWeekStart(weekStart)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Escala %s - %s",
		roster.ServiceDate(start, model.DaySaturday).Format(tabDateFormat),
		roster.ServiceDate(start, model.DaySunday).Format(tabDateFormat),
	), nil
}

// RosterRows lays out a week view as sheet rows: a header, then one row per
// filled slot with the servant names in display order. In areas with a single
// responsible the first name is the responsible.
func RosterRows(view *roster.WeekView) [][]interface{} {
	maxServants := 0
	for _, area := range view.Areas {
		for _, slot := range area.Slots {
			maxServants = max(maxServants, len(slot.Placements))
		}
	}

	header := []interface{}{"Dia", "Data", "Área", "Função"}
	for i := 0; i < maxServants; i++ {
		header = append(header, fmt.Sprintf("Servo %d", i+1))
	}

	rows := [][]interface{}{header}
	for _, area := range view.Areas {
		for _, slot := range area.Slots {
			if len(slot.Placements) == 0 {
				continue
			}

			function := ""
			if slot.Function != "" {
				function = slot.Label
			}

			row := []interface{}{dayLabels[area.Day], area.Date, area.Label, function}
			for i := 0; i < maxServants; i++ {
				name := ""
				if i < len(slot.Placements) {
					name = placementName(slot.Placements[i])
				}
				row = append(row, name)
			}
			rows = append(rows, row)
		}
	}

	return rows
}

func placementName(p roster.Placement) string {
	if p.Designation == roster.DesignationResponsible {
		return p.ServantName + " (responsável)"
	}
	return p.ServantName
}
