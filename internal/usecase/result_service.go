package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/event"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/membership"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/points"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/resultteam"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/id"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/logging"
)

// StandingsInvalidator drops cached standings after a result write.
type StandingsInvalidator interface {
	Clear(ctx context.Context)
}

// ResultService owns the competition result write path. Every write
// recomputes placements and points for the affected (event, class) slice
// and invalidates cached standings; updates and deletes require a
// modification reason for the audit trail.
type ResultService struct {
	resultRepo     result.Repository
	eventRepo      event.Repository
	membershipRepo membership.Repository
	linkRepo       resultteam.Repository
	linker         *ResultTeamLinkService
	invalidator    StandingsInvalidator
	idGen          id.Generator
	logger         *logging.Logger
}

func NewResultService(
	resultRepo result.Repository,
	eventRepo event.Repository,
	membershipRepo membership.Repository,
	linkRepo resultteam.Repository,
	linker *ResultTeamLinkService,
	invalidator StandingsInvalidator,
	idGen id.Generator,
	logger *logging.Logger,
) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultService{
		resultRepo:     resultRepo,
		eventRepo:      eventRepo,
		membershipRepo: membershipRepo,
		linkRepo:       linkRepo,
		linker:         linker,
		invalidator:    invalidator,
		idGen:          idGen,
		logger:         logger,
	}
}

type CreateResultInput struct {
	EventID        string  `validate:"required"`
	CompetitorID   string
	CompetitorName string `validate:"required"`
	MecaID         string
	ClassID        string  `validate:"required"`
	ClassName      string  `validate:"required"`
	Format         string  `validate:"required"`
	Score          float64 `validate:"gte=0"`
	CreatedBy      string
}

func (s *ResultService) CreateResult(ctx context.Context, input CreateResultInput) (result.CompetitionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.CreateResult")
	defer span.End()

	input.Format = strings.ToUpper(strings.TrimSpace(input.Format))
	if input.EventID == "" || strings.TrimSpace(input.CompetitorName) == "" || input.ClassID == "" || strings.TrimSpace(input.ClassName) == "" {
		return result.CompetitionResult{}, fmt.Errorf("%w: event, competitor name, and class are required", ErrInvalidInput)
	}
	if !isKnownFormat(input.Format) {
		return result.CompetitionResult{}, fmt.Errorf("%w: unknown format %q", ErrInvalidInput, input.Format)
	}
	if input.Score < 0 {
		return result.CompetitionResult{}, fmt.Errorf("%w: score cannot be negative", ErrInvalidInput)
	}

	e, exists, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return result.CompetitionResult{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return result.CompetitionResult{}, fmt.Errorf("%w: event=%s", ErrNotFound, input.EventID)
	}

	mecaID := strings.TrimSpace(input.MecaID)
	if mecaID == "" {
		mecaID = result.NonMemberMecaID
	}

	resultID, err := s.idGen.NewID()
	if err != nil {
		return result.CompetitionResult{}, fmt.Errorf("generate result id: %w", err)
	}

	row := result.CompetitionResult{
		ID:             resultID,
		EventID:        e.ID,
		SeasonID:       e.SeasonID,
		CompetitorID:   strings.TrimSpace(input.CompetitorID),
		CompetitorName: strings.TrimSpace(input.CompetitorName),
		MecaID:         mecaID,
		ClassID:        input.ClassID,
		ClassName:      strings.TrimSpace(input.ClassName),
		Format:         input.Format,
		Score:          input.Score,
		CreatedBy:      strings.TrimSpace(input.CreatedBy),
	}

	if err := s.resultRepo.Create(ctx, row); err != nil {
		return result.CompetitionResult{}, fmt.Errorf("create result: %w", err)
	}

	if err := s.recomputePlacements(ctx, e, row.ClassID); err != nil {
		return result.CompetitionResult{}, err
	}

	// Team links are derived data; a link failure must not lose the result.
	if _, err := s.linker.AutoLink(ctx, row); err != nil {
		s.logger.WarnContext(ctx, "auto link failed after result create", "result_id", row.ID, "error", err)
	}

	s.invalidator.Clear(ctx)

	created, exists, err := s.resultRepo.GetByID(ctx, row.ID)
	if err != nil || !exists {
		return row, nil
	}
	return created, nil
}

type UpdateResultInput struct {
	ID             string `validate:"required"`
	Score          *float64
	CompetitorName *string
	MecaID         *string
	Reason         string `validate:"required"`
	UpdatedBy      string
}

func (s *ResultService) UpdateResult(ctx context.Context, input UpdateResultInput) (result.CompetitionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.UpdateResult")
	defer span.End()

	if strings.TrimSpace(input.ID) == "" {
		return result.CompetitionResult{}, fmt.Errorf("%w: result id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Reason) == "" {
		return result.CompetitionResult{}, fmt.Errorf("%w: modification reason is required", ErrInvalidInput)
	}

	row, exists, err := s.resultRepo.GetByID(ctx, input.ID)
	if err != nil {
		return result.CompetitionResult{}, fmt.Errorf("get result: %w", err)
	}
	if !exists {
		return result.CompetitionResult{}, fmt.Errorf("%w: result=%s", ErrNotFound, input.ID)
	}

	if input.Score != nil {
		if *input.Score < 0 {
			return result.CompetitionResult{}, fmt.Errorf("%w: score cannot be negative", ErrInvalidInput)
		}
		row.Score = *input.Score
	}
	if input.CompetitorName != nil && strings.TrimSpace(*input.CompetitorName) != "" {
		row.CompetitorName = strings.TrimSpace(*input.CompetitorName)
	}
	if input.MecaID != nil {
		mecaID := strings.TrimSpace(*input.MecaID)
		if mecaID == "" {
			mecaID = result.NonMemberMecaID
		}
		row.MecaID = mecaID
	}
	row.ModificationReason = strings.TrimSpace(input.Reason)
	row.UpdatedBy = strings.TrimSpace(input.UpdatedBy)
	row.RevisionCount++

	if err := s.resultRepo.Update(ctx, row); err != nil {
		return result.CompetitionResult{}, fmt.Errorf("update result: %w", err)
	}

	e, exists, err := s.eventRepo.GetByID(ctx, row.EventID)
	if err != nil {
		return result.CompetitionResult{}, fmt.Errorf("get event: %w", err)
	}
	if exists {
		if err := s.recomputePlacements(ctx, e, row.ClassID); err != nil {
			return result.CompetitionResult{}, err
		}
	}

	s.invalidator.Clear(ctx)

	updated, exists, err := s.resultRepo.GetByID(ctx, row.ID)
	if err != nil || !exists {
		return row, nil
	}
	return updated, nil
}

func (s *ResultService) DeleteResult(ctx context.Context, resultID, reason string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.DeleteResult")
	defer span.End()

	if strings.TrimSpace(resultID) == "" {
		return fmt.Errorf("%w: result id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: modification reason is required", ErrInvalidInput)
	}

	row, exists, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		return fmt.Errorf("get result: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: result=%s", ErrNotFound, resultID)
	}

	if err := s.resultRepo.Delete(ctx, resultID); err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	if err := s.linkRepo.DeleteByResult(ctx, resultID); err != nil {
		return fmt.Errorf("delete result team links: %w", err)
	}

	s.logger.InfoContext(ctx, "result deleted", "result_id", resultID, "reason", strings.TrimSpace(reason))

	e, exists, err := s.eventRepo.GetByID(ctx, row.EventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if exists {
		if err := s.recomputePlacements(ctx, e, row.ClassID); err != nil {
			return err
		}
	}

	s.invalidator.Clear(ctx)
	return nil
}

func (s *ResultService) ListByEvent(ctx context.Context, eventID string) ([]result.CompetitionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ListByEvent")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	_, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	rows, err := s.resultRepo.List(ctx, result.Filter{EventID: eventID})
	if err != nil {
		return nil, fmt.Errorf("list results by event: %w", err)
	}

	return rows, nil
}

// recomputePlacements re-ranks one (event, class) slice by score and
// re-awards points through the event multiplier. Only active members earn
// points; guests and lapsed members rank but score zero.
func (s *ResultService) recomputePlacements(ctx context.Context, e event.Event, classID string) error {
	rows, err := s.resultRepo.List(ctx, result.Filter{EventID: e.ID})
	if err != nil {
		return fmt.Errorf("list results for placement: %w", err)
	}

	classRows := make([]result.CompetitionResult, 0, len(rows))
	for _, row := range rows {
		if row.ClassID == classID {
			classRows = append(classRows, row)
		}
	}
	if len(classRows) == 0 {
		return nil
	}

	activeIDs, err := s.membershipRepo.ListActiveMecaIDs(ctx)
	if err != nil {
		return fmt.Errorf("list active meca ids: %w", err)
	}
	active := make(map[string]struct{}, len(activeIDs))
	for _, mecaID := range activeIDs {
		active[mecaID] = struct{}{}
	}

	sort.SliceStable(classRows, func(i, j int) bool {
		if classRows[i].Score != classRows[j].Score {
			return classRows[i].Score > classRows[j].Score
		}
		return classRows[i].CreatedAt.Before(classRows[j].CreatedAt)
	})

	for i := range classRows {
		classRows[i].Placement = i + 1
		_, isActive := active[strings.TrimSpace(classRows[i].MecaID)]
		member := !classRows[i].IsGuest() && isActive
		classRows[i].PointsEarned = points.Award(classRows[i].Placement, e.Multiplier(), member)
	}

	if err := s.resultRepo.ReplacePlacements(ctx, classRows); err != nil {
		return fmt.Errorf("replace placements event=%s class=%s: %w", e.ID, classID, err)
	}

	return nil
}
