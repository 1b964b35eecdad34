package postgres

import (
	"database/sql"
	"time"
)

type eventTableModel struct {
	ID               int64          `db:"id"`
	PublicID         string         `db:"public_id"`
	SeasonID         string         `db:"season_public_id"`
	Name             string         `db:"name"`
	EventDate        time.Time      `db:"event_date"`
	Kind             string         `db:"kind"`
	PointsMultiplier float64        `db:"points_multiplier"`
	FinalsGroupID    sql.NullString `db:"finals_group_id"`
	FinalsDay        int            `db:"finals_day"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	DeletedAt        *time.Time     `db:"deleted_at"`
}
