package event

import "time"

// Kind classifies an event for points purposes.
type Kind string

const (
	KindNormal      Kind = "normal"
	KindStateFinals Kind = "state_finals"
	KindWorldFinals Kind = "world_finals"
)

// Event is the slice of the events table this service consumes. Multi-day
// finals share a FinalsGroupID; FinalsDay orders the days within the group.
type Event struct {
	ID               string
	SeasonID         string
	Name             string
	Date             time.Time
	Kind             Kind
	PointsMultiplier float64
	FinalsGroupID    string
	FinalsDay        int
}

// IsMultiDayFinals reports whether the event belongs to a multi-day finals
// group whose results must be consolidated before ranking.
func (e Event) IsMultiDayFinals() bool {
	return e.FinalsGroupID != ""
}

// Multiplier returns the event's points multiplier, defaulting to 1x.
func (e Event) Multiplier() float64 {
	if e.PointsMultiplier <= 0 {
		return 1
	}
	return e.PointsMultiplier
}
