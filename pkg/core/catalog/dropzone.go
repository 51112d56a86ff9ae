package catalog

import (
	"fmt"
	"strings"

	"github.com/jakechorley/escalas/pkg/core/model"
)

const dropZoneSeparator = "|"

// Slot identifies an area/day/(function) position on the roster board.
// Its string form is the drop-zone id "<area>|<day>" or "<area>|<day>|<function>".
type Slot struct {
	Area     string
	Day      model.Day
	Function string
}

func (s Slot) String() string {
	parts := []string{s.Area, string(s.Day)}
	if s.Function != "" {
		parts = append(parts, s.Function)
	}
	return strings.Join(parts, dropZoneSeparator)
}

// ParseDropZone parses a drop-zone id. It only checks the shape of the id;
// whether the slot is acceptable is decided by the roster validator.
func ParseDropZone(id string) (Slot, error) {
	parts := strings.Split(id, dropZoneSeparator)
	if len(parts) < 2 || len(parts) > 3 {
		return Slot{}, fmt.Errorf("invalid drop zone %q: expected <area>|<day>[|<function>]", id)
	}

	slot := Slot{
		Area: strings.TrimSpace(parts[0]),
		Day:  model.Day(strings.TrimSpace(parts[1])),
	}
	if len(parts) == 3 {
		slot.Function = strings.TrimSpace(parts[2])
		if slot.Function == "" {
			return Slot{}, fmt.Errorf("invalid drop zone %q: empty function", id)
		}
	}
	if slot.Area == "" || slot.Day == "" {
		return Slot{}, fmt.Errorf("invalid drop zone %q: empty area or day", id)
	}

	return slot, nil
}
