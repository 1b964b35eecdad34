package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/event"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/membership"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/resultteam"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/season"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/team"
	"github.com/mecajames/NewMECAV2-sub004/internal/infrastructure/repository/memory"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/logging"
)

func newStandingsFixture(t *testing.T) *StandingsService {
	t.Helper()

	seasonRepo := memory.NewSeasonRepository([]season.Season{
		{ID: "s1", Name: "2026", IsCurrent: true},
	})
	eventRepo := memory.NewEventRepository([]event.Event{
		{ID: "e1", SeasonID: "s1", Name: "Spring Show", Kind: event.KindNormal, PointsMultiplier: 1, Date: time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)},
		{ID: "f1", SeasonID: "s1", Name: "Worlds Day 1", Kind: event.KindWorldFinals, PointsMultiplier: 4, FinalsGroupID: "wf", FinalsDay: 1},
		{ID: "f2", SeasonID: "s1", Name: "Worlds Day 2", Kind: event.KindWorldFinals, PointsMultiplier: 4, FinalsGroupID: "wf", FinalsDay: 2},
	})
	membershipRepo := memory.NewMembershipRepository([]membership.Membership{
		{ID: "mem-1", MecaID: "100001", Status: membership.StatusActive, Category: membership.CategoryCompetitor, PlanName: "Competitor Annual"},
		{ID: "mem-2", MecaID: "100002", Status: membership.StatusActive, Category: membership.CategoryTeam, TeamName: " bass heads ", PlanName: "Team Plan"},
	})
	teamRepo := memory.NewTeamRepository(
		[]team.Team{{ID: "team-1", Name: "Bass Heads", IsActive: true}},
		[]team.Member{{ID: "tm-1", TeamID: "team-1", CompetitorID: "comp-1", MecaID: "100001", Status: team.MemberStatusActive}},
	)
	resultRepo := memory.NewResultRepository([]result.CompetitionResult{
		{ID: "res-1", EventID: "e1", SeasonID: "s1", CompetitorID: "comp-1", CompetitorName: "Dana Brooks", MecaID: "100001", ClassID: "c1", ClassName: "Street 1", Format: "SPL", Score: 148.2, Placement: 1, PointsEarned: 5},
		{ID: "res-2", EventID: "e1", SeasonID: "s1", CompetitorName: "Luis Ortega", MecaID: "100002", ClassID: "c1", ClassName: "Street 1", Format: "SPL", Score: 147.0, Placement: 2, PointsEarned: 4},
		{ID: "res-3", EventID: "e1", SeasonID: "s1", CompetitorName: "Walk-In Guest", MecaID: "999999", ClassID: "c1", ClassName: "Street 1", Format: "SPL", Score: 146.0, Placement: 3, PointsEarned: 0},
		{ID: "res-4", EventID: "f1", SeasonID: "s1", CompetitorID: "comp-1", CompetitorName: "Dana Brooks", MecaID: "100001", ClassID: "c1", ClassName: "Street 1", Format: "SPL", Score: 90.1, Placement: 1, PointsEarned: 20},
		{ID: "res-5", EventID: "f1", SeasonID: "s1", CompetitorName: "Luis Ortega", MecaID: "100002", ClassID: "c1", ClassName: "Street 1", Format: "SPL", Score: 89.0, Placement: 2, PointsEarned: 19},
		{ID: "res-6", EventID: "f2", SeasonID: "s1", CompetitorID: "comp-1", CompetitorName: "Dana Brooks", MecaID: "100001", ClassID: "c1", ClassName: "Street 1", Format: "SPL", Score: 91.3, Placement: 1, PointsEarned: 20},
		{ID: "res-7", EventID: "f2", SeasonID: "s1", CompetitorName: "Luis Ortega", MecaID: "100002", ClassID: "c1", ClassName: "Street 1", Format: "SPL", Score: 88.0, Placement: 2, PointsEarned: 19},
	})
	linkRepo := memory.NewResultTeamRepository([]resultteam.Link{
		{ID: "link-1", ResultID: "res-1", TeamID: "team-1", CompetitorID: "comp-1"},
	})

	return NewStandingsService(resultRepo, eventRepo, seasonRepo, teamRepo, membershipRepo, linkRepo, logging.NewNop())
}

func TestStandingsService_SeasonLeaderboard_ConsolidatesFinalsBeforeSumming(t *testing.T) {
	t.Parallel()

	service := newStandingsFixture(t)

	got, err := service.SeasonLeaderboard(context.Background(), LeaderboardQuery{})
	if err != nil {
		t.Fatalf("SeasonLeaderboard error: %v", err)
	}

	if got.SeasonID != "s1" {
		t.Fatalf("expected current season s1, got %s", got.SeasonID)
	}
	if got.Limit != defaultLeaderboardLimit || got.Offset != 0 {
		t.Fatalf("unexpected paging defaults: limit=%d offset=%d", got.Limit, got.Offset)
	}
	if got.Total != 2 {
		t.Fatalf("expected 2 ranked competitors (guests excluded), got %d", got.Total)
	}

	// Dana: 5 at the 1x event plus a single 20 for the whole finals group.
	// Both finals days stored 20; summing raw rows would give 45.
	if got.Entries[0].MecaID != "100001" || got.Entries[0].TotalPoints != 25 {
		t.Fatalf("unexpected leader: %+v", got.Entries[0])
	}
	if got.Entries[1].MecaID != "100002" || got.Entries[1].TotalPoints != 23 {
		t.Fatalf("unexpected runner-up: %+v", got.Entries[1])
	}
	if got.Entries[0].Rank != 1 || got.Entries[1].Rank != 2 {
		t.Fatalf("unexpected ranks: %d, %d", got.Entries[0].Rank, got.Entries[1].Rank)
	}
}

func TestStandingsService_SeasonLeaderboard_UnknownSeason(t *testing.T) {
	t.Parallel()

	service := newStandingsFixture(t)

	_, err := service.SeasonLeaderboard(context.Background(), LeaderboardQuery{SeasonID: "missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStandingsService_LeaderboardByFormat_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	service := newStandingsFixture(t)

	_, err := service.LeaderboardByFormat(context.Background(), "", "DRIFT", 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStandingsService_TeamStandings_MergesUniversesByNormalizedName(t *testing.T) {
	t.Parallel()

	service := newStandingsFixture(t)

	got, err := service.TeamStandings(context.Background(), "s1", 0)
	if err != nil {
		t.Fatalf("TeamStandings error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 merged team, got %d: %+v", len(got), got)
	}

	merged := got[0]
	if merged.TeamName != "Bass Heads" {
		t.Fatalf("expected legacy display name, got %q", merged.TeamName)
	}
	if !merged.HasTeamEntity {
		t.Fatalf("expected merged team to carry the legacy entity flag")
	}
	// Dana contributes 5 through the persisted link on the 1x event; Luis
	// contributes 4 + 19 through the membership-derived side.
	if merged.TotalPoints != 28 {
		t.Fatalf("expected 28 merged points, got %d", merged.TotalPoints)
	}
	if merged.MemberCount != 2 {
		t.Fatalf("expected 2 distinct members, got %d", merged.MemberCount)
	}
	if merged.EventCount != 2 {
		t.Fatalf("expected 2 distinct events, got %d", merged.EventCount)
	}
	if merged.Rank != 1 {
		t.Fatalf("expected rank 1, got %d", merged.Rank)
	}
}

func TestStandingsService_FormatSummaries_FixedFormatsInOrder(t *testing.T) {
	t.Parallel()

	service := newStandingsFixture(t)

	got, err := service.FormatSummaries(context.Background(), "s1")
	if err != nil {
		t.Fatalf("FormatSummaries error: %v", err)
	}
	if len(got) != len(LeaderboardFormats) {
		t.Fatalf("expected %d summaries, got %d", len(LeaderboardFormats), len(got))
	}
	for i, format := range LeaderboardFormats {
		if got[i].Format != format {
			t.Fatalf("expected format %s at position %d, got %s", format, i, got[i].Format)
		}
	}

	spl := got[0]
	if spl.ResultCount != 5 {
		t.Fatalf("expected 5 effective SPL results, got %d", spl.ResultCount)
	}
	if spl.CompetitorCount != 3 {
		t.Fatalf("expected 3 distinct SPL competitors including the guest, got %d", spl.CompetitorCount)
	}
	if sql := got[1]; sql.ResultCount != 0 || sql.CompetitorCount != 0 {
		t.Fatalf("expected empty SQL summary, got %+v", sql)
	}
}

func TestStandingsService_CompetitorStats(t *testing.T) {
	t.Parallel()

	service := newStandingsFixture(t)

	t.Run("returns aggregated stats", func(t *testing.T) {
		t.Parallel()
		got, err := service.CompetitorStats(context.Background(), "s1", "100001")
		if err != nil {
			t.Fatalf("CompetitorStats error: %v", err)
		}
		if got == nil {
			t.Fatalf("expected stats, got nil")
		}
		if got.TotalPoints != 25 || got.ResultCount != 2 || got.EventCount != 2 {
			t.Fatalf("unexpected stats: %+v", got)
		}
		if got.BestScore != 148.2 {
			t.Fatalf("expected best score 148.2, got %v", got.BestScore)
		}
		if got.FirstPlaces != 2 {
			t.Fatalf("expected 2 first places, got %d", got.FirstPlaces)
		}
		if got.PointsByFormat["SPL"] != 25 {
			t.Fatalf("unexpected points by format: %+v", got.PointsByFormat)
		}
	})

	t.Run("nil for unknown competitor", func(t *testing.T) {
		t.Parallel()
		got, err := service.CompetitorStats(context.Background(), "s1", "123456")
		if err != nil {
			t.Fatalf("CompetitorStats error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil stats, got %+v", got)
		}
	})

	t.Run("rejects guest sentinel", func(t *testing.T) {
		t.Parallel()
		_, err := service.CompetitorStats(context.Background(), "s1", "999999")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestStandingsService_ClassesWithResults(t *testing.T) {
	t.Parallel()

	service := newStandingsFixture(t)

	got, err := service.ClassesWithResults(context.Background(), "s1", "")
	if err != nil {
		t.Fatalf("ClassesWithResults error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 class, got %d", len(got))
	}
	if got[0].ClassName != "Street 1" || got[0].Format != "SPL" {
		t.Fatalf("unexpected class summary: %+v", got[0])
	}
	if got[0].ResultCount != 5 || got[0].CompetitorCount != 3 {
		t.Fatalf("unexpected class counts: %+v", got[0])
	}
}

func TestStandingsService_ClassesWithResults_FormatFilter(t *testing.T) {
	t.Parallel()

	service := newStandingsFixture(t)
	ctx := context.Background()

	matched, err := service.ClassesWithResults(ctx, "s1", "spl")
	if err != nil {
		t.Fatalf("ClassesWithResults(spl) error: %v", err)
	}
	if len(matched) != 1 || matched[0].ClassName != "Street 1" {
		t.Fatalf("unexpected SPL classes: %+v", matched)
	}

	empty, err := service.ClassesWithResults(ctx, "s1", "SQL")
	if err != nil {
		t.Fatalf("ClassesWithResults(SQL) error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no SQL classes, got %+v", empty)
	}

	if _, err := service.ClassesWithResults(ctx, "s1", "DRIFT"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown format, got %v", err)
	}
}

func TestStandingsService_LeaderboardByClass_HonorsLimit(t *testing.T) {
	t.Parallel()

	service := newStandingsFixture(t)
	ctx := context.Background()

	got, err := service.LeaderboardByClass(ctx, "s1", "Street 1", 1)
	if err != nil {
		t.Fatalf("LeaderboardByClass error: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].MecaID != "100001" {
		t.Fatalf("expected only the leader within limit 1, got %+v", got.Entries)
	}
	if got.Total != 2 || got.Limit != 1 {
		t.Fatalf("unexpected paging: total=%d limit=%d", got.Total, got.Limit)
	}

	defaulted, err := service.LeaderboardByClass(ctx, "s1", "Street 1", 0)
	if err != nil {
		t.Fatalf("LeaderboardByClass default limit error: %v", err)
	}
	if defaulted.Limit != defaultClassLimit || len(defaulted.Entries) != 2 {
		t.Fatalf("unexpected default paging: %+v", defaulted)
	}
}

func TestStandingsService_TeamStandings_HonorsLimit(t *testing.T) {
	t.Parallel()

	seasonRepo := memory.NewSeasonRepository([]season.Season{{ID: "s1", Name: "2026", IsCurrent: true}})
	eventRepo := memory.NewEventRepository([]event.Event{
		{ID: "e1", SeasonID: "s1", Name: "Spring Show", Kind: event.KindNormal, PointsMultiplier: 1},
	})
	teamRepo := memory.NewTeamRepository([]team.Team{
		{ID: "team-1", Name: "Bass Heads", IsActive: true},
		{ID: "team-2", Name: "Treble Makers", IsActive: true},
	}, nil)
	resultRepo := memory.NewResultRepository([]result.CompetitionResult{
		{ID: "r1", EventID: "e1", SeasonID: "s1", CompetitorID: "comp-1", CompetitorName: "Dana Brooks", MecaID: "100001", ClassID: "c1", ClassName: "Street 1", Format: "SPL", Score: 148.2, Placement: 1, PointsEarned: 5},
		{ID: "r2", EventID: "e1", SeasonID: "s1", CompetitorID: "comp-2", CompetitorName: "Luis Ortega", MecaID: "100002", ClassID: "c1", ClassName: "Street 1", Format: "SPL", Score: 147.0, Placement: 2, PointsEarned: 4},
	})
	linkRepo := memory.NewResultTeamRepository([]resultteam.Link{
		{ID: "l1", ResultID: "r1", TeamID: "team-1", CompetitorID: "comp-1"},
		{ID: "l2", ResultID: "r2", TeamID: "team-2", CompetitorID: "comp-2"},
	})
	service := NewStandingsService(resultRepo, eventRepo, seasonRepo, teamRepo, memory.NewMembershipRepository(nil), linkRepo, logging.NewNop())
	ctx := context.Background()

	top, err := service.TeamStandings(ctx, "s1", 1)
	if err != nil {
		t.Fatalf("TeamStandings error: %v", err)
	}
	if len(top) != 1 || top[0].TeamName != "Bass Heads" {
		t.Fatalf("expected only the top team within limit 1, got %+v", top)
	}

	all, err := service.TeamStandings(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("TeamStandings default limit error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both teams under the default limit, got %+v", all)
	}
}

func TestStandingsService_FinalsGroupResults(t *testing.T) {
	t.Parallel()

	service := newStandingsFixture(t)

	got, err := service.FinalsGroupResults(context.Background(), "wf")
	if err != nil {
		t.Fatalf("FinalsGroupResults error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 consolidated rows, got %d", len(got))
	}
	if got[0].MecaID != "100001" || got[0].Placement != 1 || got[0].Score != 91.3 {
		t.Fatalf("unexpected winner row: %+v", got[0])
	}
	if got[0].PointsEarned != 20 {
		t.Fatalf("expected 20 points at 4x for first place, got %d", got[0].PointsEarned)
	}
	if got[1].MecaID != "100002" || got[1].Placement != 2 || got[1].Score != 89.0 {
		t.Fatalf("unexpected second row: %+v", got[1])
	}

	_, err = service.FinalsGroupResults(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown group, got %v", err)
	}
}
