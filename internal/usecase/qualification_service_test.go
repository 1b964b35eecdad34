package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/event"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/season"
	"github.com/mecajames/NewMECAV2-sub004/internal/infrastructure/repository/memory"
)

func newQualificationFixture(t *testing.T) *QualificationService {
	t.Helper()

	seasonRepo := memory.NewSeasonRepository([]season.Season{
		{ID: "s1", Name: "2026", IsCurrent: true},
	})
	eventRepo := memory.NewEventRepository([]event.Event{
		{ID: "e1", SeasonID: "s1", Kind: event.KindNormal, PointsMultiplier: 1},
		{ID: "e2", SeasonID: "s1", Kind: event.KindNormal, PointsMultiplier: 2},
		{ID: "f1", SeasonID: "s1", Kind: event.KindWorldFinals, PointsMultiplier: 4, FinalsGroupID: "wf", FinalsDay: 1},
	})
	resultRepo := memory.NewResultRepository([]result.CompetitionResult{
		// Dana clears the default threshold in Street 1 across two events.
		{ID: "r1", EventID: "e1", SeasonID: "s1", CompetitorName: "Dana Brooks", MecaID: "100001", ClassName: "Street 1", Format: "SPL", Score: 148, Placement: 1, PointsEarned: 25},
		{ID: "r2", EventID: "e2", SeasonID: "s1", CompetitorName: "Dana Brooks", MecaID: "100001", ClassName: "Street 1", Format: "SPL", Score: 149, Placement: 1, PointsEarned: 20},
		// Luis falls short in Street 1 but qualifies in Amplified 2.
		{ID: "r3", EventID: "e1", SeasonID: "s1", CompetitorName: "Luis Ortega", MecaID: "100002", ClassName: "Street 1", Format: "SPL", Score: 140, Placement: 2, PointsEarned: 4},
		{ID: "r4", EventID: "e1", SeasonID: "s1", CompetitorName: "Luis Ortega", MecaID: "100002", ClassName: "Amplified 2", Format: "SQL", Score: 88, Placement: 1, PointsEarned: 30},
		{ID: "r5", EventID: "e2", SeasonID: "s1", CompetitorName: "Luis Ortega", MecaID: "100002", ClassName: "Amplified 2", Format: "SQL", Score: 89, Placement: 1, PointsEarned: 20},
		// Finals points never count toward qualification.
		{ID: "r6", EventID: "f1", SeasonID: "s1", CompetitorName: "Priya Nair", MecaID: "100003", ClassName: "Street 1", Format: "SPL", Score: 150, Placement: 1, PointsEarned: 80},
		// Guests never qualify.
		{ID: "r7", EventID: "e1", SeasonID: "s1", CompetitorName: "Walk-In Guest", MecaID: "999999", ClassName: "Street 1", Format: "SPL", Score: 151, Placement: 3, PointsEarned: 0},
	})

	return NewQualificationService(resultRepo, eventRepo, seasonRepo, 0)
}

func TestQualificationService_QualificationByClass(t *testing.T) {
	t.Parallel()

	service := newQualificationFixture(t)

	got, err := service.QualificationByClass(context.Background(), "s1", 0)
	if err != nil {
		t.Fatalf("QualificationByClass error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 classes with qualifiers, got %d: %+v", len(got), got)
	}

	// Classes sort by format, then name.
	street := got[0]
	if street.ClassName != "Street 1" || street.Format != "SPL" {
		t.Fatalf("unexpected first class: %+v", street)
	}
	if street.Threshold != defaultQualifyingPoints {
		t.Fatalf("expected default threshold, got %d", street.Threshold)
	}
	if len(street.Qualified) != 1 || street.Qualified[0].MecaID != "100001" || street.Qualified[0].TotalPoints != 45 {
		t.Fatalf("unexpected Street 1 qualifiers: %+v", street.Qualified)
	}

	amplified := got[1]
	if amplified.ClassName != "Amplified 2" || amplified.Format != "SQL" {
		t.Fatalf("unexpected second class: %+v", amplified)
	}
	if len(amplified.Qualified) != 1 || amplified.Qualified[0].MecaID != "100002" || amplified.Qualified[0].TotalPoints != 50 {
		t.Fatalf("unexpected Amplified 2 qualifiers: %+v", amplified.Qualified)
	}
}

func TestQualificationService_QualificationByClass_CustomThreshold(t *testing.T) {
	t.Parallel()

	service := newQualificationFixture(t)

	got, err := service.QualificationByClass(context.Background(), "s1", 50)
	if err != nil {
		t.Fatalf("QualificationByClass error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 class at threshold 50, got %d", len(got))
	}
	if got[0].ClassName != "Amplified 2" || got[0].Threshold != 50 {
		t.Fatalf("unexpected qualification at raised threshold: %+v", got[0])
	}
}

func TestQualificationService_ExcludesWorldFinalsPoints(t *testing.T) {
	t.Parallel()

	service := newQualificationFixture(t)

	// 80 points, all earned at a world finals event.
	qualified, classes, err := service.CompetitorQualification(context.Background(), "s1", "100003")
	if err != nil {
		t.Fatalf("CompetitorQualification error: %v", err)
	}
	if qualified || len(classes) != 0 {
		t.Fatalf("expected finals-only points to not qualify, got %v %v", qualified, classes)
	}
}

func TestQualificationService_CompetitorQualification(t *testing.T) {
	t.Parallel()

	service := newQualificationFixture(t)
	ctx := context.Background()

	qualified, classes, err := service.CompetitorQualification(ctx, "", "100001")
	if err != nil {
		t.Fatalf("CompetitorQualification error: %v", err)
	}
	if !qualified || len(classes) != 1 || classes[0] != "Street 1" {
		t.Fatalf("expected Street 1 qualification via the current season, got %v %v", qualified, classes)
	}

	qualified, classes, err = service.CompetitorQualification(ctx, "s1", "100002")
	if err != nil {
		t.Fatalf("CompetitorQualification error: %v", err)
	}
	if !qualified || len(classes) != 1 || classes[0] != "Amplified 2" {
		t.Fatalf("expected Amplified 2 only, got %v %v", qualified, classes)
	}

	if _, _, err := service.CompetitorQualification(ctx, "s1", "999999"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for the guest sentinel, got %v", err)
	}
}
