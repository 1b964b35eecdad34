package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/team"
	qb "github.com/mecajames/NewMECAV2-sub004/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListActiveTeams(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) ListActiveTeamsByCompetitor(ctx context.Context, competitorID string) ([]team.Team, error) {
	memberQuery, memberArgs, err := qb.Select("team_public_id").From("team_members").
		Where(
			qb.Eq("competitor_id", competitorID),
			qb.Eq("status", team.MemberStatusActive),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select member teams query: %w", err)
	}

	var teamIDs []string
	if err := r.db.SelectContext(ctx, &teamIDs, memberQuery, memberArgs...); err != nil {
		return nil, fmt.Errorf("select member teams: %w", err)
	}
	if len(teamIDs) == 0 {
		return nil, nil
	}

	idValues := make([]any, 0, len(teamIDs))
	for _, id := range teamIDs {
		idValues = append(idValues, id)
	}

	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.In("public_id", idValues),
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by ids query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by ids: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) ListActiveMembers(ctx context.Context) ([]team.Member, error) {
	activeTeams, err := r.ListActiveTeams(ctx)
	if err != nil {
		return nil, err
	}
	if len(activeTeams) == 0 {
		return nil, nil
	}

	teamIDs := make([]any, 0, len(activeTeams))
	for _, t := range activeTeams {
		teamIDs = append(teamIDs, t.ID)
	}

	query, args, err := qb.Select("*").From("team_members").
		Where(
			qb.In("team_public_id", teamIDs),
			qb.Eq("status", team.MemberStatusActive),
			qb.IsNull("deleted_at"),
		).
		OrderBy("team_public_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active team members query: %w", err)
	}

	var rows []teamMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active team members: %w", err)
	}

	out := make([]team.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Member{
			ID:           row.PublicID,
			TeamID:       row.TeamID,
			CompetitorID: row.CompetitorID,
			MecaID:       nullStringToString(row.MecaID),
			Role:         nullStringToString(row.Role),
			Status:       row.Status,
		})
	}

	return out, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:       row.PublicID,
		Name:     row.Name,
		IsActive: row.IsActive,
	}
}
