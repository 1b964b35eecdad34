package event

import "context"

type Repository interface {
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id string) (Event, bool, error)
	ListByFinalsGroup(ctx context.Context, groupID string) ([]Event, error)
}
