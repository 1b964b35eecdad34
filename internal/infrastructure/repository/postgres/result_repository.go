package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	qb "github.com/mecajames/NewMECAV2-sub004/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) List(ctx context.Context, filter result.Filter) ([]result.CompetitionResult, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.SeasonID != "" {
		conditions = append(conditions, qb.Eq("season_public_id", filter.SeasonID))
	}
	if filter.Format != "" {
		conditions = append(conditions, qb.Eq("format", filter.Format))
	}
	if filter.ClassName != "" {
		conditions = append(conditions, qb.Eq("class_name", filter.ClassName))
	}
	if filter.MecaID != "" {
		conditions = append(conditions, qb.Eq("meca_id", filter.MecaID))
	}
	if filter.EventID != "" {
		conditions = append(conditions, qb.Eq("event_public_id", filter.EventID))
	}

	query, args, err := qb.Select("*").From("competition_results").
		Where(conditions...).
		OrderBy("event_public_id", "class_name", "placement", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competition results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competition results: %w", err)
	}

	out := make([]result.CompetitionResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromRow(row))
	}

	return out, nil
}

func (r *ResultRepository) GetByID(ctx context.Context, id string) (result.CompetitionResult, bool, error) {
	query, args, err := qb.Select("*").From("competition_results").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return result.CompetitionResult{}, false, fmt.Errorf("build get competition result query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.CompetitionResult{}, false, nil
		}
		return result.CompetitionResult{}, false, fmt.Errorf("get competition result: %w", err)
	}

	return resultFromRow(row), true, nil
}

func (r *ResultRepository) Create(ctx context.Context, row result.CompetitionResult) error {
	insertModel := resultInsertModel{
		PublicID:           row.ID,
		EventID:            row.EventID,
		SeasonID:           row.SeasonID,
		CompetitorID:       stringToNullString(row.CompetitorID),
		CompetitorName:     row.CompetitorName,
		MecaID:             row.MecaID,
		ClassID:            row.ClassID,
		ClassName:          row.ClassName,
		Format:             row.Format,
		Score:              row.Score,
		Placement:          row.Placement,
		PointsEarned:       row.PointsEarned,
		CreatedBy:          stringToNullString(row.CreatedBy),
		ModificationReason: stringToNullString(row.ModificationReason),
		RevisionCount:      row.RevisionCount,
	}

	query, args, err := qb.InsertModel("competition_results", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert competition result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert competition result: %w", err)
	}

	return nil
}

func (r *ResultRepository) Update(ctx context.Context, row result.CompetitionResult) error {
	query, args, err := qb.Update("competition_results").
		Set("competitor_name", row.CompetitorName).
		Set("meca_id", row.MecaID).
		Set("class_id", row.ClassID).
		Set("class_name", row.ClassName).
		Set("format", row.Format).
		Set("score", row.Score).
		Set("placement", row.Placement).
		Set("points_earned", row.PointsEarned).
		Set("updated_by", stringToNullString(row.UpdatedBy)).
		Set("modification_reason", stringToNullString(row.ModificationReason)).
		Set("revision_count", row.RevisionCount).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", row.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update competition result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update competition result: %w", err)
	}

	return nil
}

func (r *ResultRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.Update("competition_results").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete competition result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete competition result: %w", err)
	}

	return nil
}

func (r *ResultRepository) ReplacePlacements(ctx context.Context, rows []result.CompetitionResult) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace placements: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, row := range rows {
		query, args, err := qb.Update("competition_results").
			Set("placement", row.Placement).
			Set("points_earned", row.PointsEarned).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("public_id", row.ID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build replace placement query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("replace placement result=%s: %w", row.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace placements tx: %w", err)
	}
	return nil
}
