package season

import "context"

type Repository interface {
	List(ctx context.Context) ([]Season, error)
	GetByID(ctx context.Context, id string) (Season, bool, error)
	GetCurrent(ctx context.Context) (Season, bool, error)
}
