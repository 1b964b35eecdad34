package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/membership"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/team"
)

// teamNotPopulatedSuffix marks membership-derived teams whose holder never
// filled in a team or business name. Historical imports produced these and
// downstream standings still group by them.
const teamNotPopulatedSuffix = "_team_not_populated"

// TeamResolverService attributes competitors to teams across the two team
// universes: legacy roster-based team entities and teams implied by an
// active membership plan. Identity across universes is the normalized team
// name; legacy wins when both produce the same name.
type TeamResolverService struct {
	teamRepo       team.Repository
	membershipRepo membership.Repository
}

func NewTeamResolverService(teamRepo team.Repository, membershipRepo membership.Repository) *TeamResolverService {
	return &TeamResolverService{
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
	}
}

// ResolveForCompetitor returns every team the competitor currently competes
// for. Either identifier may be empty; guests resolve to no teams.
func (s *TeamResolverService) ResolveForCompetitor(ctx context.Context, competitorID, mecaID string) ([]team.Affiliation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamResolverService.ResolveForCompetitor")
	defer span.End()

	out := make([]team.Affiliation, 0, 2)

	competitorID = strings.TrimSpace(competitorID)
	if competitorID != "" {
		teams, err := s.teamRepo.ListActiveTeamsByCompetitor(ctx, competitorID)
		if err != nil {
			return nil, fmt.Errorf("list teams by competitor: %w", err)
		}
		for _, t := range teams {
			out = append(out, team.Affiliation{
				TeamID:   t.ID,
				TeamName: t.Name,
				Source:   team.SourceLegacy,
			})
		}
	}

	if result.IsMemberID(mecaID) {
		m, exists, err := s.membershipRepo.GetActiveTeamLikeByMecaID(ctx, strings.TrimSpace(mecaID))
		if err != nil {
			return nil, fmt.Errorf("get team membership by meca id: %w", err)
		}
		if exists {
			out = append(out, membershipAffiliation(m))
		}
	}

	return dedupeAffiliations(out), nil
}

// TeamDirectory holds precomputed affiliation lookups for bulk
// reconciliation. Competitor id is the stronger key; meca id covers rows
// entered before competitor accounts existed.
type TeamDirectory struct {
	ByCompetitorID map[string][]team.Affiliation
	ByMecaID       map[string][]team.Affiliation
	TeamNameByID   map[string]string
}

// BuildDirectory loads both team universes in three queries and indexes them
// for per-row lookup.
func (s *TeamResolverService) BuildDirectory(ctx context.Context) (*TeamDirectory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamResolverService.BuildDirectory")
	defer span.End()

	teams, err := s.teamRepo.ListActiveTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active teams: %w", err)
	}
	members, err := s.teamRepo.ListActiveMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active team members: %w", err)
	}
	memberships, err := s.membershipRepo.ListActiveTeamLike(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team memberships: %w", err)
	}

	dir := &TeamDirectory{
		ByCompetitorID: make(map[string][]team.Affiliation),
		ByMecaID:       make(map[string][]team.Affiliation),
		TeamNameByID:   make(map[string]string, len(teams)),
	}

	teamByID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
		dir.TeamNameByID[t.ID] = t.Name
	}

	for _, m := range members {
		t, ok := teamByID[m.TeamID]
		if !ok {
			continue
		}
		aff := team.Affiliation{
			TeamID:   t.ID,
			MemberID: m.ID,
			TeamName: t.Name,
			Source:   team.SourceLegacy,
		}
		if m.CompetitorID != "" {
			dir.ByCompetitorID[m.CompetitorID] = append(dir.ByCompetitorID[m.CompetitorID], aff)
		}
		if result.IsMemberID(m.MecaID) {
			dir.ByMecaID[m.MecaID] = append(dir.ByMecaID[m.MecaID], aff)
		}
	}

	for _, m := range memberships {
		if !result.IsMemberID(m.MecaID) {
			continue
		}
		dir.ByMecaID[m.MecaID] = append(dir.ByMecaID[m.MecaID], membershipAffiliation(m))
	}

	return dir, nil
}

// Lookup resolves affiliations for one result row, preferring the competitor
// id key over the meca id key.
func (d *TeamDirectory) Lookup(competitorID, mecaID string) []team.Affiliation {
	if d == nil {
		return nil
	}
	if competitorID != "" {
		if affs, ok := d.ByCompetitorID[competitorID]; ok {
			withMembership := affs
			if result.IsMemberID(mecaID) {
				withMembership = append(append([]team.Affiliation(nil), affs...), membershipOnly(d.ByMecaID[mecaID])...)
			}
			return dedupeAffiliations(withMembership)
		}
	}
	if result.IsMemberID(mecaID) {
		return dedupeAffiliations(d.ByMecaID[mecaID])
	}
	return nil
}

func membershipOnly(affs []team.Affiliation) []team.Affiliation {
	out := make([]team.Affiliation, 0, len(affs))
	for _, a := range affs {
		if !a.IsLegacy() {
			out = append(out, a)
		}
	}
	return out
}

// membershipAffiliation derives a team from a membership plan. The team name
// falls back from the explicit team name through the business name to a
// slug of the holder's name.
func membershipAffiliation(m membership.Membership) team.Affiliation {
	return team.Affiliation{
		MemberID: m.ID,
		TeamName: MembershipTeamName(m),
		Source:   team.SourceMembership,
	}
}

// MembershipTeamName names the implicit team a membership carries. Retail
// and manufacturer plans are shops: the business name is the team, falling
// back to an explicit team name and then the holder's own name. Team plans
// and add-ons use the team name or a slug placeholder the UI can detect.
func MembershipTeamName(m membership.Membership) string {
	switch m.Category {
	case membership.CategoryRetail, membership.CategoryManufacturer:
		if name := strings.TrimSpace(m.BusinessName); name != "" {
			return name
		}
		if name := strings.TrimSpace(m.TeamName); name != "" {
			return name
		}
		return strings.TrimSpace(m.HolderName())
	}

	if name := strings.TrimSpace(m.TeamName); name != "" {
		return name
	}
	return holderSlug(m.HolderName()) + teamNotPopulatedSuffix
}

func holderSlug(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.Join(fields, "_")
}

// dedupeAffiliations collapses duplicates by normalized team name. Legacy
// affiliations win because only they carry a team entity id.
func dedupeAffiliations(affs []team.Affiliation) []team.Affiliation {
	if len(affs) == 0 {
		return nil
	}

	byName := make(map[string]int, len(affs))
	out := make([]team.Affiliation, 0, len(affs))
	for _, a := range affs {
		if strings.TrimSpace(a.TeamName) == "" {
			continue
		}
		key := a.NormalizedName()
		idx, seen := byName[key]
		if !seen {
			byName[key] = len(out)
			out = append(out, a)
			continue
		}
		if !out[idx].IsLegacy() && a.IsLegacy() {
			out[idx] = a
		}
	}

	return out
}
