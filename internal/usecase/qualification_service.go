package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/event"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/season"
)

const defaultQualifyingPoints = 40

type QualifiedCompetitor struct {
	MecaID         string `json:"meca_id"`
	CompetitorName string `json:"competitor_name"`
	TotalPoints    int    `json:"total_points"`
}

type ClassQualification struct {
	ClassName string                `json:"class_name"`
	Format    string                `json:"format"`
	Threshold int                   `json:"threshold"`
	Qualified []QualifiedCompetitor `json:"qualified"`
}

// QualificationService computes world finals qualification from regular
// season points. Results earned at world finals events are excluded; you
// qualify with the season you bring, not the finals themselves.
type QualificationService struct {
	resultRepo result.Repository
	eventRepo  event.Repository
	seasonRepo season.Repository
	threshold  int
}

func NewQualificationService(
	resultRepo result.Repository,
	eventRepo event.Repository,
	seasonRepo season.Repository,
	threshold int,
) *QualificationService {
	if threshold <= 0 {
		threshold = defaultQualifyingPoints
	}
	return &QualificationService{
		resultRepo: resultRepo,
		eventRepo:  eventRepo,
		seasonRepo: seasonRepo,
		threshold:  threshold,
	}
}

// QualificationByClass lists, per class, every competitor whose season
// points meet the threshold. A non-positive threshold uses the configured
// default.
func (s *QualificationService) QualificationByClass(ctx context.Context, seasonID string, threshold int) ([]ClassQualification, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QualificationService.QualificationByClass")
	defer span.End()

	if threshold <= 0 {
		threshold = s.threshold
	}

	totals, err := s.seasonClassTotals(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	byClass := make(map[string]*ClassQualification)
	for key, total := range totals {
		if total.points < threshold {
			continue
		}
		classQual, ok := byClass[key.classKey]
		if !ok {
			classQual = &ClassQualification{
				ClassName: total.className,
				Format:    total.format,
				Threshold: threshold,
			}
			byClass[key.classKey] = classQual
		}
		classQual.Qualified = append(classQual.Qualified, QualifiedCompetitor{
			MecaID:         key.mecaID,
			CompetitorName: total.competitorName,
			TotalPoints:    total.points,
		})
	}

	out := make([]ClassQualification, 0, len(byClass))
	for _, classQual := range byClass {
		sort.SliceStable(classQual.Qualified, func(i, j int) bool {
			if classQual.Qualified[i].TotalPoints != classQual.Qualified[j].TotalPoints {
				return classQual.Qualified[i].TotalPoints > classQual.Qualified[j].TotalPoints
			}
			return classQual.Qualified[i].MecaID < classQual.Qualified[j].MecaID
		})
		out = append(out, *classQual)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Format != out[j].Format {
			return out[i].Format < out[j].Format
		}
		return out[i].ClassName < out[j].ClassName
	})

	return out, nil
}

// CompetitorQualification reports whether the competitor qualifies and in
// which classes.
func (s *QualificationService) CompetitorQualification(ctx context.Context, seasonID, mecaID string) (bool, []string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QualificationService.CompetitorQualification")
	defer span.End()

	mecaID = strings.TrimSpace(mecaID)
	if !result.IsMemberID(mecaID) {
		return false, nil, fmt.Errorf("%w: a member meca id is required", ErrInvalidInput)
	}

	totals, err := s.seasonClassTotals(ctx, seasonID)
	if err != nil {
		return false, nil, err
	}

	var classes []string
	for key, total := range totals {
		if key.mecaID == mecaID && total.points >= s.threshold {
			classes = append(classes, total.className)
		}
	}
	sort.Strings(classes)

	return len(classes) > 0, classes, nil
}

type classTotalKey struct {
	classKey string
	mecaID   string
}

type classTotal struct {
	className      string
	format         string
	competitorName string
	points         int
}

func (s *QualificationService) seasonClassTotals(ctx context.Context, seasonID string) (map[classTotalKey]classTotal, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		current, exists, err := s.seasonRepo.GetCurrent(ctx)
		if err != nil {
			return nil, fmt.Errorf("get current season: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: no current season", ErrNotFound)
		}
		seasonID = current.ID
	}

	rows, err := s.resultRepo.List(ctx, result.Filter{SeasonID: seasonID})
	if err != nil {
		return nil, fmt.Errorf("list season results: %w", err)
	}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	worldFinalsEvents := make(map[string]struct{})
	for _, e := range events {
		if e.Kind == event.KindWorldFinals {
			worldFinalsEvents[e.ID] = struct{}{}
		}
	}

	totals := make(map[classTotalKey]classTotal)
	for _, row := range rows {
		if row.IsGuest() {
			continue
		}
		if _, isFinals := worldFinalsEvents[row.EventID]; isFinals {
			continue
		}
		key := classTotalKey{
			classKey: strings.ToLower(strings.TrimSpace(row.ClassName)),
			mecaID:   strings.TrimSpace(row.MecaID),
		}
		total := totals[key]
		total.className = strings.TrimSpace(row.ClassName)
		total.format = strings.ToUpper(strings.TrimSpace(row.Format))
		total.competitorName = row.CompetitorName
		total.points += row.PointsEarned
		totals[key] = total
	}

	return totals, nil
}
