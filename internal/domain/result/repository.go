package result

import "context"

// Filter narrows List queries. Zero-value fields are ignored.
type Filter struct {
	SeasonID  string
	Format    string
	ClassName string
	MecaID    string
	EventID   string
}

type Repository interface {
	List(ctx context.Context, filter Filter) ([]CompetitionResult, error)
	GetByID(ctx context.Context, id string) (CompetitionResult, bool, error)
	Create(ctx context.Context, row CompetitionResult) error
	Update(ctx context.Context, row CompetitionResult) error
	Delete(ctx context.Context, id string) error
	// ReplacePlacements persists recomputed placement and points columns for
	// the given rows in one round trip.
	ReplacePlacements(ctx context.Context, rows []CompetitionResult) error
}
