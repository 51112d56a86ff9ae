package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/escalas/pkg/core/model"
)

func TestParseWeekStart(t *testing.T) {
	date, err := ParseWeekStart("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, date.Weekday())

	_, err = ParseWeekStart("2024-06-02")
	assert.ErrorIs(t, err, ErrInvalidWeekStart)
	assert.Contains(t, err.Error(), "Sunday")

	_, err = ParseWeekStart("01/06/2024")
	assert.ErrorIs(t, err, ErrInvalidWeekStart)
}

func TestWeekStartOf(t *testing.T) {
	tests := []struct {
		date     string
		expected string
	}{
		{"2024-06-01", "2024-06-01"}, // Saturday
		{"2024-06-02", "2024-06-01"}, // Sunday
		{"2024-06-05", "2024-06-01"}, // Wednesday
		{"2024-06-07", "2024-06-01"}, // Friday
		{"2024-06-08", "2024-06-08"}, // next Saturday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, err := time.Parse(DateFormat, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, WeekStartOf(date).Format(DateFormat))
		})
	}
}

func TestServiceDate(t *testing.T) {
	start, err := ParseWeekStart("2024-06-29")
	require.NoError(t, err)

	assert.Equal(t, "2024-06-29", ServiceDate(start, model.DaySaturday).Format(DateFormat))
	assert.Equal(t, "2024-06-30", ServiceDate(start, model.DaySunday).Format(DateFormat))
}
