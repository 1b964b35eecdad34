package membership

import "context"

type Repository interface {
	// GetActiveTeamLikeByMecaID returns the single active team-like membership
	// for a member, if any.
	GetActiveTeamLikeByMecaID(ctx context.Context, mecaID string) (Membership, bool, error)
	// ListActiveTeamLike returns every active team-like membership, used to
	// build the membership-derived team universe in one query.
	ListActiveTeamLike(ctx context.Context) ([]Membership, error)
	// ListActiveMecaIDs returns the MECA IDs of all active memberships of any
	// category; the set gates points awards.
	ListActiveMecaIDs(ctx context.Context) ([]string, error)
}
