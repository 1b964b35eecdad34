package usecase

import (
	"context"
	"testing"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/membership"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/team"
	"github.com/mecajames/NewMECAV2-sub004/internal/infrastructure/repository/memory"
)

func TestTeamResolverService_ResolveForCompetitor_LegacyWinsOnNameCollision(t *testing.T) {
	t.Parallel()

	teamRepo := memory.NewTeamRepository(
		[]team.Team{{ID: "team-1", Name: "Bass Heads", IsActive: true}},
		[]team.Member{{ID: "tm-1", TeamID: "team-1", CompetitorID: "comp-1", MecaID: "100001", Status: team.MemberStatusActive}},
	)
	membershipRepo := memory.NewMembershipRepository([]membership.Membership{
		{
			ID:       "mem-1",
			MecaID:   "100001",
			Status:   membership.StatusActive,
			Category: membership.CategoryTeam,
			TeamName: "  bass heads ",
			PlanName: "Team Plan",
		},
	})

	service := NewTeamResolverService(teamRepo, membershipRepo)

	got, err := service.ResolveForCompetitor(context.Background(), "comp-1", "100001")
	if err != nil {
		t.Fatalf("ResolveForCompetitor error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 affiliation after dedupe, got %d: %+v", len(got), got)
	}
	if !got[0].IsLegacy() || got[0].TeamID != "team-1" {
		t.Fatalf("expected legacy affiliation to win, got %+v", got[0])
	}
}

func TestTeamResolverService_ResolveForCompetitor_BothUniverses(t *testing.T) {
	t.Parallel()

	teamRepo := memory.NewTeamRepository(
		[]team.Team{{ID: "team-1", Name: "Bass Heads", IsActive: true}},
		[]team.Member{{ID: "tm-1", TeamID: "team-1", CompetitorID: "comp-1", MecaID: "100001", Status: team.MemberStatusActive}},
	)
	membershipRepo := memory.NewMembershipRepository([]membership.Membership{
		{
			ID:           "mem-1",
			MecaID:       "100001",
			Status:       membership.StatusActive,
			Category:     membership.CategoryRetail,
			BusinessName: "Loud & Clear Audio",
			PlanName:     "Retail Shop Plan",
		},
	})

	service := NewTeamResolverService(teamRepo, membershipRepo)

	got, err := service.ResolveForCompetitor(context.Background(), "comp-1", "100001")
	if err != nil {
		t.Fatalf("ResolveForCompetitor error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 affiliations, got %d: %+v", len(got), got)
	}
	if !got[0].IsLegacy() || got[0].TeamName != "Bass Heads" {
		t.Fatalf("unexpected legacy affiliation: %+v", got[0])
	}
	if got[1].IsLegacy() || got[1].TeamName != "Loud & Clear Audio" {
		t.Fatalf("unexpected membership affiliation: %+v", got[1])
	}
}

func TestTeamResolverService_ResolveForCompetitor_GuestHasNoTeams(t *testing.T) {
	t.Parallel()

	service := NewTeamResolverService(
		memory.NewTeamRepository(nil, nil),
		memory.NewMembershipRepository(nil),
	)

	got, err := service.ResolveForCompetitor(context.Background(), "", "999999")
	if err != nil {
		t.Fatalf("ResolveForCompetitor error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no affiliations for guest, got %+v", got)
	}
}

func TestMembershipTeamName_Fallbacks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   membership.Membership
		want string
	}{
		{
			name: "team plan uses team name",
			in:   membership.Membership{Category: membership.CategoryTeam, TeamName: "Team dB Drag", BusinessName: "Shop"},
			want: "Team dB Drag",
		},
		{
			name: "retail prefers business name",
			in:   membership.Membership{Category: membership.CategoryRetail, TeamName: "Side Crew", BusinessName: "Loud & Clear Audio"},
			want: "Loud & Clear Audio",
		},
		{
			name: "manufacturer prefers business name",
			in:   membership.Membership{Category: membership.CategoryManufacturer, BusinessName: "BassWorks Mfg"},
			want: "BassWorks Mfg",
		},
		{
			name: "retail without business name uses team name",
			in:   membership.Membership{Category: membership.CategoryRetail, TeamName: "Shop Squad"},
			want: "Shop Squad",
		},
		{
			name: "retail falls back to holder name unsuffixed",
			in:   membership.Membership{Category: membership.CategoryRetail, FirstName: "Dana", LastName: "Brooks"},
			want: "Dana Brooks",
		},
		{
			name: "holder slug placeholder",
			in:   membership.Membership{Category: membership.CategoryCompetitor, HasTeamAddon: true, FirstName: "Dana", LastName: "Brooks"},
			want: "dana_brooks_team_not_populated",
		},
		{
			name: "no holder name at all",
			in:   membership.Membership{},
			want: "unknown_team_not_populated",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := MembershipTeamName(tc.in); got != tc.want {
				t.Fatalf("MembershipTeamName = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTeamDirectory_Lookup_PrefersCompetitorID(t *testing.T) {
	t.Parallel()

	teamRepo := memory.NewTeamRepository(
		[]team.Team{
			{ID: "team-1", Name: "Bass Heads", IsActive: true},
			{ID: "team-2", Name: "Team dB Drag", IsActive: true},
		},
		[]team.Member{
			{ID: "tm-1", TeamID: "team-1", CompetitorID: "comp-1", MecaID: "100001", Status: team.MemberStatusActive},
			{ID: "tm-2", TeamID: "team-2", CompetitorID: "comp-2", MecaID: "100002", Status: team.MemberStatusActive},
		},
	)
	service := NewTeamResolverService(teamRepo, memory.NewMembershipRepository(nil))

	dir, err := service.BuildDirectory(context.Background())
	if err != nil {
		t.Fatalf("BuildDirectory error: %v", err)
	}

	got := dir.Lookup("comp-1", "100001")
	if len(got) != 1 || got[0].TeamID != "team-1" {
		t.Fatalf("unexpected lookup by competitor id: %+v", got)
	}

	got = dir.Lookup("", "100002")
	if len(got) != 1 || got[0].TeamID != "team-2" {
		t.Fatalf("unexpected lookup by meca id: %+v", got)
	}

	if got := dir.Lookup("", "999999"); len(got) != 0 {
		t.Fatalf("expected no affiliations for guest sentinel, got %+v", got)
	}
}
