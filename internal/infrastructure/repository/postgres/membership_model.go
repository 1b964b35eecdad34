package postgres

import (
	"database/sql"
	"time"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/membership"
)

type membershipTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	UserID       string         `db:"user_id"`
	MecaID       string         `db:"meca_id"`
	Status       string         `db:"status"`
	PlanName     string         `db:"plan_name"`
	Category     string         `db:"category"`
	TeamName     sql.NullString `db:"team_name"`
	BusinessName sql.NullString `db:"business_name"`
	HasTeamAddon bool           `db:"has_team_addon"`
	FirstName    sql.NullString `db:"first_name"`
	LastName     sql.NullString `db:"last_name"`
	FullName     sql.NullString `db:"full_name"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

func membershipFromRow(row membershipTableModel) membership.Membership {
	return membership.Membership{
		ID:           row.PublicID,
		UserID:       row.UserID,
		MecaID:       row.MecaID,
		Status:       row.Status,
		PlanName:     row.PlanName,
		Category:     membership.Category(row.Category),
		TeamName:     nullStringToString(row.TeamName),
		BusinessName: nullStringToString(row.BusinessName),
		HasTeamAddon: row.HasTeamAddon,
		FirstName:    nullStringToString(row.FirstName),
		LastName:     nullStringToString(row.LastName),
		FullName:     nullStringToString(row.FullName),
	}
}
