package memory

import (
	"context"
	"sync"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
)

type ResultRepository struct {
	mu     sync.RWMutex
	items  map[string]result.CompetitionResult
	orders []string
}

func NewResultRepository(rows []result.CompetitionResult) *ResultRepository {
	items := make(map[string]result.CompetitionResult, len(rows))
	orders := make([]string, 0, len(rows))

	for _, row := range rows {
		items[row.ID] = row
		orders = append(orders, row.ID)
	}

	return &ResultRepository{
		items:  items,
		orders: orders,
	}
}

func (r *ResultRepository) List(_ context.Context, filter result.Filter) ([]result.CompetitionResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.CompetitionResult, 0, len(r.orders))
	for _, id := range r.orders {
		row, ok := r.items[id]
		if !ok {
			continue
		}
		if matchesFilter(row, filter) {
			out = append(out, row)
		}
	}

	return out, nil
}

func (r *ResultRepository) GetByID(_ context.Context, id string) (result.CompetitionResult, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.items[id]
	if !ok {
		return result.CompetitionResult{}, false, nil
	}

	return row, true, nil
}

func (r *ResultRepository) Create(_ context.Context, row result.CompetitionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[row.ID]; !ok {
		r.orders = append(r.orders, row.ID)
	}
	r.items[row.ID] = row

	return nil
}

func (r *ResultRepository) Update(_ context.Context, row result.CompetitionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[row.ID]; !ok {
		return nil
	}
	r.items[row.ID] = row

	return nil
}

func (r *ResultRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	for i, existing := range r.orders {
		if existing == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}

	return nil
}

func (r *ResultRepository) ReplacePlacements(_ context.Context, rows []result.CompetitionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		existing, ok := r.items[row.ID]
		if !ok {
			continue
		}
		existing.Placement = row.Placement
		existing.PointsEarned = row.PointsEarned
		r.items[row.ID] = existing
	}

	return nil
}

func matchesFilter(row result.CompetitionResult, filter result.Filter) bool {
	if filter.SeasonID != "" && row.SeasonID != filter.SeasonID {
		return false
	}
	if filter.Format != "" && row.Format != filter.Format {
		return false
	}
	if filter.ClassName != "" && row.ClassName != filter.ClassName {
		return false
	}
	if filter.MecaID != "" && row.MecaID != filter.MecaID {
		return false
	}
	if filter.EventID != "" && row.EventID != filter.EventID {
		return false
	}
	return true
}
