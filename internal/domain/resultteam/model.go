package resultteam

import "time"

// Link ties a competition result to a team for team standings. Links are
// derived data: created automatically on result entry and backfilled by bulk
// reconciliation, never hand-authored. At most one link exists per
// (result, team) pair.
type Link struct {
	ID           string
	ResultID     string
	TeamID       string // legacy team id; links are only persisted for legacy teams
	CompetitorID string
	CreatedAt    time.Time
}
