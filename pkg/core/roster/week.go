package roster

import (
	"fmt"
	"time"

	"github.com/jakechorley/escalas/pkg/core/model"
)

// DateFormat is the layout of week starts and service dates
const DateFormat = "2006-01-02"

// ParseWeekStart parses a roster week identifier. The week is identified by
// its Saturday; the following Sunday is the second service day.
func ParseWeekStart(weekStart string) (time.Time, error) {
	date, err := time.Parse(DateFormat, weekStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeekStart, weekStart)
	}
	if date.Weekday() != time.Saturday {
		return time.Time{}, fmt.Errorf("%w: %q is a %s", ErrInvalidWeekStart, weekStart, date.Weekday())
	}
	return date, nil
}

// WeekStartOf returns the Saturday starting the roster week that contains date.
// Sunday belongs to the week of the previous day.
func WeekStartOf(date time.Time) time.Time {
	normalized := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	daysSinceSaturday := (int(normalized.Weekday()) + 1) % 7
	return normalized.AddDate(0, 0, -daysSinceSaturday)
}

// ServiceDate returns the calendar date of a service day within a week
func ServiceDate(weekStart time.Time, day model.Day) time.Time {
	return weekStart.AddDate(0, 0, day.Offset())
}
