package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/escalas/pkg/core/roster"
)

// DefaultServiceWeeks is the recurrence of roster weeks when none is configured
const DefaultServiceWeeks = "FREQ=WEEKLY;BYDAY=SA"

// UpcomingWeeks returns the week starts of the next count roster weeks on or
// after from, following the serviceWeeks recurrence rule. Occurrences that do
// not fall on a Saturday are mapped to the Saturday of their week; a week is
// listed once.
func UpcomingWeeks(serviceWeeks string, from time.Time, count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("week count must be positive, got %d", count)
	}
	if serviceWeeks == "" {
		serviceWeeks = DefaultServiceWeeks
	}

	rule, err := rrule.StrToRRule(serviceWeeks)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service weeks rule: %w", err)
	}

	// Start from the Saturday of the current week so an ongoing weekend is included
	start := roster.WeekStartOf(from.UTC())
	rule.DTStart(start)

	weeks := make([]string, 0, count)
	seen := make(map[string]bool)
	next := rule.Iterator()
	for len(weeks) < count {
		occurrence, ok := next()
		if !ok {
			break
		}
		week := roster.WeekStartOf(occurrence).Format(roster.DateFormat)
		if seen[week] {
			continue
		}
		seen[week] = true
		weeks = append(weeks, week)
	}

	return weeks, nil
}
