package memory

import (
	"context"
	"sync"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/resultteam"
)

type ResultTeamRepository struct {
	mu    sync.RWMutex
	items []resultteam.Link
}

func NewResultTeamRepository(links []resultteam.Link) *ResultTeamRepository {
	return &ResultTeamRepository{
		items: append([]resultteam.Link(nil), links...),
	}
}

func (r *ResultTeamRepository) ListByResult(_ context.Context, resultID string) ([]resultteam.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]resultteam.Link, 0, 1)
	for _, link := range r.items {
		if link.ResultID == resultID {
			out = append(out, link)
		}
	}

	return out, nil
}

func (r *ResultTeamRepository) ListAll(_ context.Context) ([]resultteam.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]resultteam.Link(nil), r.items...), nil
}

func (r *ResultTeamRepository) CreateBatch(_ context.Context, links []resultteam.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make(map[[2]string]struct{}, len(r.items))
	for _, link := range r.items {
		existing[[2]string{link.ResultID, link.TeamID}] = struct{}{}
	}

	for _, link := range links {
		key := [2]string{link.ResultID, link.TeamID}
		if _, ok := existing[key]; ok {
			continue
		}
		existing[key] = struct{}{}
		r.items = append(r.items, link)
	}

	return nil
}

func (r *ResultTeamRepository) DeleteByResult(_ context.Context, resultID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, link := range r.items {
		if link.ResultID != resultID {
			kept = append(kept, link)
		}
	}
	r.items = kept

	return nil
}
