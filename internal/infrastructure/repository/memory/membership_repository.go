package memory

import (
	"context"
	"sync"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/membership"
)

type MembershipRepository struct {
	mu    sync.RWMutex
	items []membership.Membership
}

func NewMembershipRepository(memberships []membership.Membership) *MembershipRepository {
	return &MembershipRepository{
		items: append([]membership.Membership(nil), memberships...),
	}
}

func (r *MembershipRepository) GetActiveTeamLikeByMecaID(_ context.Context, mecaID string) (membership.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.items {
		if m.MecaID == mecaID && m.Status == membership.StatusActive && m.IsTeamLike() {
			return m, true, nil
		}
	}

	return membership.Membership{}, false, nil
}

func (r *MembershipRepository) ListActiveTeamLike(_ context.Context) ([]membership.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]membership.Membership, 0, len(r.items))
	for _, m := range r.items {
		if m.Status == membership.StatusActive && m.IsTeamLike() {
			out = append(out, m)
		}
	}

	return out, nil
}

func (r *MembershipRepository) ListActiveMecaIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.items))
	seen := make(map[string]struct{}, len(r.items))
	for _, m := range r.items {
		if m.Status != membership.StatusActive || m.MecaID == "" {
			continue
		}
		if _, ok := seen[m.MecaID]; ok {
			continue
		}
		seen[m.MecaID] = struct{}{}
		out = append(out, m.MecaID)
	}

	return out, nil
}
