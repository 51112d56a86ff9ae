package sheetsclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/jakechorley/escalas/pkg/core/services"
)

// Expected column names in a servant directory sheet. Only the name is required.
const (
	nameColumn  = "Nome"
	phoneColumn = "Telefone"
	emailColumn = "Email"
)

// ServantSheet reads a servant directory kept in a spreadsheet tab
type ServantSheet struct {
	client        *Client
	spreadsheetID string
	tab           string
}

func NewServantSheet(client *Client, spreadsheetID, tab string) *ServantSheet {
	return &ServantSheet{client: client, spreadsheetID: spreadsheetID, tab: tab}
}

// ListServants retrieves and parses the servants listed in the tab
func (s *ServantSheet) ListServants(ctx context.Context) ([]services.ServantInput, error) {
	values, err := s.client.GetValues(ctx, s.spreadsheetID, tabRange(s.tab, "A:ZZ"))
	if err != nil {
		return nil, fmt.Errorf("failed to get servant data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	servants, err := parseServants(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse servants: %w", err)
	}

	return servants, nil
}

// parseServants converts raw spreadsheet data into servant inputs
func parseServants(raw [][]interface{}) ([]services.ServantInput, error) {
	headerRow := raw[0]
	columnIndex := func(name string) int {
		for i, cell := range headerRow {
			if cellStr, ok := cell.(string); ok && strings.EqualFold(strings.TrimSpace(cellStr), name) {
				return i
			}
		}
		return -1
	}

	nameCol := columnIndex(nameColumn)
	if nameCol == -1 {
		return nil, fmt.Errorf("missing required field in header: %s", nameColumn)
	}
	phoneCol := columnIndex(phoneColumn)
	emailCol := columnIndex(emailColumn)

	getField := func(row []interface{}, index int) string {
		if index < 0 || index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return strings.TrimSpace(str)
		}
		return ""
	}

	servants := make([]services.ServantInput, 0, len(raw)-1)
	for _, row := range raw[1:] {
		name := getField(row, nameCol)
		// Skip empty rows
		if name == "" {
			continue
		}
		servants = append(servants, services.ServantInput{
			Name:  name,
			Phone: getField(row, phoneCol),
			Email: getField(row, emailCol),
		})
	}

	return servants, nil
}
