package resultteam

import "context"

type Repository interface {
	ListByResult(ctx context.Context, resultID string) ([]Link, error)
	ListAll(ctx context.Context) ([]Link, error)
	// CreateBatch inserts links in one round trip, skipping pairs that
	// already exist.
	CreateBatch(ctx context.Context, links []Link) error
	DeleteByResult(ctx context.Context, resultID string) error
}
