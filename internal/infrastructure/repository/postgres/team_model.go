package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	IsActive  bool       `db:"is_active"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type teamMemberTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	TeamID       string         `db:"team_public_id"`
	CompetitorID string         `db:"competitor_id"`
	MecaID       sql.NullString `db:"meca_id"`
	Role         sql.NullString `db:"role"`
	Status       string         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}
