package season

import "time"

// Season is a competition year. Exactly one season is flagged current.
type Season struct {
	ID        string
	Name      string
	IsCurrent bool
	StartsAt  time.Time
	EndsAt    time.Time
}
