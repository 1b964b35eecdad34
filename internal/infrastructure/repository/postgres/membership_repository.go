package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/membership"
	qb "github.com/mecajames/NewMECAV2-sub004/internal/platform/querybuilder"
)

type MembershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// teamLikeCondition mirrors membership.IsTeamLike in SQL so bulk scans stay
// on the database side.
func teamLikeCondition() qb.Condition {
	return qb.Expr(
		"(category IN (?, ?, ?) OR plan_name LIKE ? OR has_team_addon = TRUE)",
		string(membership.CategoryRetail),
		string(membership.CategoryManufacturer),
		string(membership.CategoryTeam),
		"%Team%",
	)
}

func (r *MembershipRepository) GetActiveTeamLikeByMecaID(ctx context.Context, mecaID string) (membership.Membership, bool, error) {
	query, args, err := qb.Select("*").From("memberships").
		Where(
			qb.Eq("meca_id", mecaID),
			qb.Eq("status", membership.StatusActive),
			teamLikeCondition(),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return membership.Membership{}, false, fmt.Errorf("build get team membership query: %w", err)
	}

	var row membershipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return membership.Membership{}, false, nil
		}
		return membership.Membership{}, false, fmt.Errorf("get team membership: %w", err)
	}

	return membershipFromRow(row), true, nil
}

func (r *MembershipRepository) ListActiveTeamLike(ctx context.Context) ([]membership.Membership, error) {
	query, args, err := qb.Select("*").From("memberships").
		Where(
			qb.Eq("status", membership.StatusActive),
			teamLikeCondition(),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team memberships query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team memberships: %w", err)
	}

	out := make([]membership.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}

	return out, nil
}

func (r *MembershipRepository) ListActiveMecaIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("DISTINCT meca_id").From("memberships").
		Where(
			qb.Eq("status", membership.StatusActive),
			qb.Expr("meca_id <> ''"),
			qb.IsNull("deleted_at"),
		).
		OrderBy("meca_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active meca ids query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select active meca ids: %w", err)
	}

	return ids, nil
}
