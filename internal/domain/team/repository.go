package team

import "context"

// Repository reads the legacy team universe: team entities and their rosters.
type Repository interface {
	ListActiveTeams(ctx context.Context) ([]Team, error)
	// ListActiveTeamsByCompetitor returns the active teams a competitor has an
	// active roster row on.
	ListActiveTeamsByCompetitor(ctx context.Context, competitorID string) ([]Team, error)
	// ListActiveMembers returns every active roster row across active teams,
	// used to build lookup maps for bulk reconciliation.
	ListActiveMembers(ctx context.Context) ([]Member, error)
}
