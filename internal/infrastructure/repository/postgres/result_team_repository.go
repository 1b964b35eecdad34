package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/resultteam"
	qb "github.com/mecajames/NewMECAV2-sub004/internal/platform/querybuilder"
)

type ResultTeamRepository struct {
	db *sqlx.DB
}

func NewResultTeamRepository(db *sqlx.DB) *ResultTeamRepository {
	return &ResultTeamRepository{db: db}
}

func (r *ResultTeamRepository) ListByResult(ctx context.Context, resultID string) ([]resultteam.Link, error) {
	query, args, err := qb.Select("*").From("result_teams").
		Where(
			qb.Eq("result_public_id", resultID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select result teams query: %w", err)
	}

	var rows []resultTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select result teams: %w", err)
	}

	out := make([]resultteam.Link, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultTeamFromRow(row))
	}

	return out, nil
}

func (r *ResultTeamRepository) ListAll(ctx context.Context) ([]resultteam.Link, error) {
	query, args, err := qb.Select("*").From("result_teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select all result teams query: %w", err)
	}

	var rows []resultTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select all result teams: %w", err)
	}

	out := make([]resultteam.Link, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultTeamFromRow(row))
	}

	return out, nil
}

func (r *ResultTeamRepository) CreateBatch(ctx context.Context, links []resultteam.Link) error {
	if len(links) == 0 {
		return nil
	}

	builder := qb.InsertInto("result_teams").
		Columns("public_id", "result_public_id", "team_public_id", "competitor_id")
	for _, link := range links {
		builder.Values(link.ID, link.ResultID, link.TeamID, stringToNullString(link.CompetitorID))
	}
	builder.Suffix("ON CONFLICT (result_public_id, team_public_id) WHERE deleted_at IS NULL DO NOTHING")

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert result teams query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert result teams: %w", err)
	}

	return nil
}

func (r *ResultTeamRepository) DeleteByResult(ctx context.Context, resultID string) error {
	query, args, err := qb.Update("result_teams").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("result_public_id", resultID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete result teams query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete result teams: %w", err)
	}

	return nil
}
