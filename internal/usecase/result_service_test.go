package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/event"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/membership"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/team"
	"github.com/mecajames/NewMECAV2-sub004/internal/infrastructure/repository/memory"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/id"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/logging"
)

type countingInvalidator struct {
	clears atomic.Int64
}

func (c *countingInvalidator) Clear(context.Context) {
	c.clears.Add(1)
}

type resultFixture struct {
	service     *ResultService
	resultRepo  *memory.ResultRepository
	linkRepo    *memory.ResultTeamRepository
	invalidator *countingInvalidator
}

func newResultFixture(t *testing.T, multiplier float64) *resultFixture {
	t.Helper()

	eventRepo := memory.NewEventRepository([]event.Event{
		{ID: "e1", SeasonID: "s1", Name: "Spring Show", Kind: event.KindNormal, PointsMultiplier: multiplier},
	})
	membershipRepo := memory.NewMembershipRepository([]membership.Membership{
		{ID: "mem-1", MecaID: "100001", Status: membership.StatusActive, Category: membership.CategoryCompetitor},
		{ID: "mem-2", MecaID: "100002", Status: membership.StatusActive, Category: membership.CategoryCompetitor},
	})
	teamRepo := memory.NewTeamRepository(
		[]team.Team{{ID: "team-1", Name: "Bass Heads", IsActive: true}},
		[]team.Member{{ID: "tm-1", TeamID: "team-1", CompetitorID: "comp-1", MecaID: "100001", Status: team.MemberStatusActive}},
	)
	resultRepo := memory.NewResultRepository(nil)
	linkRepo := memory.NewResultTeamRepository(nil)
	invalidator := &countingInvalidator{}
	idGen := id.NewRandomGenerator()

	resolver := NewTeamResolverService(teamRepo, membershipRepo)
	linker := NewResultTeamLinkService(resolver, resultRepo, linkRepo, idGen, logging.NewNop())
	service := NewResultService(resultRepo, eventRepo, membershipRepo, linkRepo, linker, invalidator, idGen, logging.NewNop())

	return &resultFixture{
		service:     service,
		resultRepo:  resultRepo,
		linkRepo:    linkRepo,
		invalidator: invalidator,
	}
}

func TestResultService_CreateResult_RecomputesPlacementsAndPoints(t *testing.T) {
	t.Parallel()

	fixture := newResultFixture(t, 1)
	ctx := context.Background()

	first, err := fixture.service.CreateResult(ctx, CreateResultInput{
		EventID:        "e1",
		CompetitorID:   "comp-1",
		CompetitorName: "Dana Brooks",
		MecaID:         "100001",
		ClassID:        "c1",
		ClassName:      "Street 1",
		Format:         "spl",
		Score:          140.0,
	})
	if err != nil {
		t.Fatalf("CreateResult error: %v", err)
	}
	if first.Format != "SPL" {
		t.Fatalf("expected normalized format SPL, got %q", first.Format)
	}
	if first.Placement != 1 || first.PointsEarned != 5 {
		t.Fatalf("expected placement 1 with 5 points, got %+v", first)
	}

	// A higher score in the same class takes first place and demotes the
	// earlier entry.
	second, err := fixture.service.CreateResult(ctx, CreateResultInput{
		EventID:        "e1",
		CompetitorName: "Luis Ortega",
		MecaID:         "100002",
		ClassID:        "c1",
		ClassName:      "Street 1",
		Format:         "SPL",
		Score:          145.5,
	})
	if err != nil {
		t.Fatalf("CreateResult error: %v", err)
	}
	if second.Placement != 1 || second.PointsEarned != 5 {
		t.Fatalf("expected new leader at placement 1, got %+v", second)
	}

	demoted, exists, err := fixture.resultRepo.GetByID(ctx, first.ID)
	if err != nil || !exists {
		t.Fatalf("reload first result: exists=%v err=%v", exists, err)
	}
	if demoted.Placement != 2 || demoted.PointsEarned != 4 {
		t.Fatalf("expected demoted entry at placement 2 with 4 points, got %+v", demoted)
	}

	if clears := fixture.invalidator.clears.Load(); clears != 2 {
		t.Fatalf("expected standings invalidation per write, got %d", clears)
	}
}

func TestResultService_CreateResult_GuestsRankButScoreZero(t *testing.T) {
	t.Parallel()

	fixture := newResultFixture(t, 1)
	ctx := context.Background()

	guest, err := fixture.service.CreateResult(ctx, CreateResultInput{
		EventID:        "e1",
		CompetitorName: "Walk-In Guest",
		ClassID:        "c1",
		ClassName:      "Street 1",
		Format:         "SPL",
		Score:          150.0,
	})
	if err != nil {
		t.Fatalf("CreateResult error: %v", err)
	}
	if guest.MecaID != result.NonMemberMecaID {
		t.Fatalf("expected guest sentinel meca id, got %q", guest.MecaID)
	}
	if guest.Placement != 1 || guest.PointsEarned != 0 {
		t.Fatalf("expected guest to hold placement 1 with 0 points, got %+v", guest)
	}

	member, err := fixture.service.CreateResult(ctx, CreateResultInput{
		EventID:        "e1",
		CompetitorName: "Dana Brooks",
		MecaID:         "100001",
		ClassID:        "c1",
		ClassName:      "Street 1",
		Format:         "SPL",
		Score:          149.0,
	})
	if err != nil {
		t.Fatalf("CreateResult error: %v", err)
	}
	if member.Placement != 2 || member.PointsEarned != 4 {
		t.Fatalf("expected member behind the guest with second-place points, got %+v", member)
	}
}

func TestResultService_CreateResult_FinalsMultiplier(t *testing.T) {
	t.Parallel()

	fixture := newResultFixture(t, 4)
	ctx := context.Background()

	created, err := fixture.service.CreateResult(ctx, CreateResultInput{
		EventID:        "e1",
		CompetitorName: "Dana Brooks",
		MecaID:         "100001",
		ClassID:        "c1",
		ClassName:      "Street 1",
		Format:         "SPL",
		Score:          91.2,
	})
	if err != nil {
		t.Fatalf("CreateResult error: %v", err)
	}
	if created.PointsEarned != 20 {
		t.Fatalf("expected 20 points at 4x for first place, got %d", created.PointsEarned)
	}
}

func TestResultService_CreateResult_AutoLinksRosterTeams(t *testing.T) {
	t.Parallel()

	fixture := newResultFixture(t, 1)
	ctx := context.Background()

	created, err := fixture.service.CreateResult(ctx, CreateResultInput{
		EventID:        "e1",
		CompetitorID:   "comp-1",
		CompetitorName: "Dana Brooks",
		MecaID:         "100001",
		ClassID:        "c1",
		ClassName:      "Street 1",
		Format:         "SPL",
		Score:          140.0,
	})
	if err != nil {
		t.Fatalf("CreateResult error: %v", err)
	}

	links, err := fixture.linkRepo.ListByResult(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListByResult error: %v", err)
	}
	if len(links) != 1 || links[0].TeamID != "team-1" {
		t.Fatalf("expected one link to team-1, got %+v", links)
	}
}

func TestResultService_CreateResult_Validation(t *testing.T) {
	t.Parallel()

	fixture := newResultFixture(t, 1)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateResultInput
		want  error
	}{
		{
			name:  "missing event",
			input: CreateResultInput{CompetitorName: "Dana", ClassID: "c1", ClassName: "Street 1", Format: "SPL"},
			want:  ErrInvalidInput,
		},
		{
			name:  "unknown format",
			input: CreateResultInput{EventID: "e1", CompetitorName: "Dana", ClassID: "c1", ClassName: "Street 1", Format: "DRIFT"},
			want:  ErrInvalidInput,
		},
		{
			name:  "unknown event",
			input: CreateResultInput{EventID: "missing", CompetitorName: "Dana", ClassID: "c1", ClassName: "Street 1", Format: "SPL"},
			want:  ErrNotFound,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := fixture.service.CreateResult(ctx, tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestResultService_UpdateResult_RequiresReason(t *testing.T) {
	t.Parallel()

	fixture := newResultFixture(t, 1)
	ctx := context.Background()

	created, err := fixture.service.CreateResult(ctx, CreateResultInput{
		EventID:        "e1",
		CompetitorName: "Dana Brooks",
		MecaID:         "100001",
		ClassID:        "c1",
		ClassName:      "Street 1",
		Format:         "SPL",
		Score:          140.0,
	})
	if err != nil {
		t.Fatalf("CreateResult error: %v", err)
	}

	score := 142.0
	_, err = fixture.service.UpdateResult(ctx, UpdateResultInput{ID: created.ID, Score: &score})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without a reason, got %v", err)
	}

	updated, err := fixture.service.UpdateResult(ctx, UpdateResultInput{
		ID:     created.ID,
		Score:  &score,
		Reason: "score transcription error",
	})
	if err != nil {
		t.Fatalf("UpdateResult error: %v", err)
	}
	if updated.Score != 142.0 {
		t.Fatalf("expected updated score, got %v", updated.Score)
	}
	if updated.RevisionCount != 1 {
		t.Fatalf("expected revision count 1, got %d", updated.RevisionCount)
	}
	if updated.ModificationReason != "score transcription error" {
		t.Fatalf("expected recorded reason, got %q", updated.ModificationReason)
	}
}

func TestResultService_UpdateResult_ReranksAfterScoreChange(t *testing.T) {
	t.Parallel()

	fixture := newResultFixture(t, 1)
	ctx := context.Background()

	first, err := fixture.service.CreateResult(ctx, CreateResultInput{
		EventID:        "e1",
		CompetitorName: "Dana Brooks",
		MecaID:         "100001",
		ClassID:        "c1",
		ClassName:      "Street 1",
		Format:         "SPL",
		Score:          140.0,
	})
	if err != nil {
		t.Fatalf("CreateResult error: %v", err)
	}
	second, err := fixture.service.CreateResult(ctx, CreateResultInput{
		EventID:        "e1",
		CompetitorName: "Luis Ortega",
		MecaID:         "100002",
		ClassID:        "c1",
		ClassName:      "Street 1",
		Format:         "SPL",
		Score:          138.0,
	})
	if err != nil {
		t.Fatalf("CreateResult error: %v", err)
	}

	score := 141.5
	if _, err := fixture.service.UpdateResult(ctx, UpdateResultInput{
		ID:     second.ID,
		Score:  &score,
		Reason: "judge correction",
	}); err != nil {
		t.Fatalf("UpdateResult error: %v", err)
	}

	promoted, _, err := fixture.resultRepo.GetByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	demoted, _, err := fixture.resultRepo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if promoted.Placement != 1 || promoted.PointsEarned != 5 {
		t.Fatalf("expected promoted entry at placement 1, got %+v", promoted)
	}
	if demoted.Placement != 2 || demoted.PointsEarned != 4 {
		t.Fatalf("expected demoted entry at placement 2, got %+v", demoted)
	}
}

func TestResultService_DeleteResult(t *testing.T) {
	t.Parallel()

	fixture := newResultFixture(t, 1)
	ctx := context.Background()

	first, err := fixture.service.CreateResult(ctx, CreateResultInput{
		EventID:        "e1",
		CompetitorID:   "comp-1",
		CompetitorName: "Dana Brooks",
		MecaID:         "100001",
		ClassID:        "c1",
		ClassName:      "Street 1",
		Format:         "SPL",
		Score:          145.0,
	})
	if err != nil {
		t.Fatalf("CreateResult error: %v", err)
	}
	second, err := fixture.service.CreateResult(ctx, CreateResultInput{
		EventID:        "e1",
		CompetitorName: "Luis Ortega",
		MecaID:         "100002",
		ClassID:        "c1",
		ClassName:      "Street 1",
		Format:         "SPL",
		Score:          140.0,
	})
	if err != nil {
		t.Fatalf("CreateResult error: %v", err)
	}

	if err := fixture.service.DeleteResult(ctx, first.ID, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without a reason, got %v", err)
	}
	if err := fixture.service.DeleteResult(ctx, first.ID, "duplicate entry"); err != nil {
		t.Fatalf("DeleteResult error: %v", err)
	}

	if _, exists, err := fixture.resultRepo.GetByID(ctx, first.ID); err != nil || exists {
		t.Fatalf("expected result gone, exists=%v err=%v", exists, err)
	}
	links, err := fixture.linkRepo.ListByResult(ctx, first.ID)
	if err != nil {
		t.Fatalf("ListByResult error: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected links removed with the result, got %+v", links)
	}

	// The survivor moves up.
	remaining, _, err := fixture.resultRepo.GetByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if remaining.Placement != 1 || remaining.PointsEarned != 5 {
		t.Fatalf("expected survivor promoted to placement 1, got %+v", remaining)
	}

	if err := fixture.service.DeleteResult(ctx, "missing", "cleanup"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown result, got %v", err)
	}
}

func TestResultService_ListByEvent(t *testing.T) {
	t.Parallel()

	fixture := newResultFixture(t, 1)
	ctx := context.Background()

	for _, score := range []float64{140, 141, 142} {
		if _, err := fixture.service.CreateResult(ctx, CreateResultInput{
			EventID:        "e1",
			CompetitorName: "Competitor",
			MecaID:         "100001",
			ClassID:        "c1",
			ClassName:      "Street 1",
			Format:         "SPL",
			Score:          score,
		}); err != nil {
			t.Fatalf("CreateResult error: %v", err)
		}
	}

	rows, err := fixture.service.ListByEvent(ctx, "e1")
	if err != nil {
		t.Fatalf("ListByEvent error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if _, err := fixture.service.ListByEvent(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
