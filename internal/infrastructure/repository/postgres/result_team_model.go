package postgres

import (
	"database/sql"
	"time"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/resultteam"
)

type resultTeamTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	ResultID     string         `db:"result_public_id"`
	TeamID       string         `db:"team_public_id"`
	CompetitorID sql.NullString `db:"competitor_id"`
	CreatedAt    time.Time      `db:"created_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

func resultTeamFromRow(row resultTeamTableModel) resultteam.Link {
	return resultteam.Link{
		ID:           row.PublicID,
		ResultID:     row.ResultID,
		TeamID:       row.TeamID,
		CompetitorID: nullStringToString(row.CompetitorID),
		CreatedAt:    row.CreatedAt,
	}
}
