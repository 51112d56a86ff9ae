package model

// Day is one of the two service days of a roster week
type Day string

const (
	DaySaturday Day = "saturday"
	DaySunday   Day = "sunday"
)

// Days lists the service days in display order
var Days = []Day{DaySaturday, DaySunday}

func (d Day) IsValid() bool {
	return d == DaySaturday || d == DaySunday
}

// Offset returns the number of days after the week start (Saturday)
func (d Day) Offset() int {
	if d == DaySunday {
		return 1
	}
	return 0
}

// ServantStatus is the lifecycle state of a servant. Servants referenced by
// an assignment are never deleted, only moved to StatusInactive.
type ServantStatus string

const (
	StatusActive   ServantStatus = "active"
	StatusInactive ServantStatus = "inactive"
)

// Servant represents a volunteer who can be placed on the roster
type Servant struct {
	ID     string
	Name   string
	Phone  string // Empty string if unknown
	Email  string // Empty string if unknown
	Status ServantStatus
}

func (s Servant) IsActive() bool {
	return s.Status == StatusActive
}

// Assignment places one servant in an area/day/(function) slot of a roster week
type Assignment struct {
	ID        string
	WeekStart string // Saturday, format 2006-01-02
	Area      string
	Day       Day
	Function  string // Empty string when the area takes no function
	ServantID string
	Locked    bool
	Position  int // Per-week sequence, used as the ordering key within a slot
	CreatedBy string
}

// SameSlot reports whether the assignment already sits in the given area/day/function
func (a Assignment) SameSlot(area string, day Day, function string) bool {
	return a.Area == area && a.Day == day && a.Function == function
}
