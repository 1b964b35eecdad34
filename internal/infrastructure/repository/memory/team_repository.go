package memory

import (
	"context"
	"sync"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/team"
)

type TeamRepository struct {
	mu      sync.RWMutex
	teams   map[string]team.Team
	orders  []string
	members []team.Member
}

func NewTeamRepository(teams []team.Team, members []team.Member) *TeamRepository {
	items := make(map[string]team.Team, len(teams))
	orders := make([]string, 0, len(teams))

	for _, t := range teams {
		items[t.ID] = t
		orders = append(orders, t.ID)
	}

	return &TeamRepository{
		teams:   items,
		orders:  orders,
		members: append([]team.Member(nil), members...),
	}
}

func (r *TeamRepository) ListActiveTeams(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.orders))
	for _, id := range r.orders {
		t := r.teams[id]
		if t.IsActive {
			out = append(out, t)
		}
	}

	return out, nil
}

func (r *TeamRepository) ListActiveTeamsByCompetitor(_ context.Context, competitorID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, 1)
	for _, m := range r.members {
		if m.CompetitorID != competitorID || m.Status != team.MemberStatusActive {
			continue
		}
		t, ok := r.teams[m.TeamID]
		if !ok || !t.IsActive {
			continue
		}
		out = append(out, t)
	}

	return out, nil
}

func (r *TeamRepository) ListActiveMembers(_ context.Context) ([]team.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Member, 0, len(r.members))
	for _, m := range r.members {
		if m.Status != team.MemberStatusActive {
			continue
		}
		t, ok := r.teams[m.TeamID]
		if !ok || !t.IsActive {
			continue
		}
		out = append(out, m)
	}

	return out, nil
}
