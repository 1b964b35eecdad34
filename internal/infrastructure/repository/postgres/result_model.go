package postgres

import (
	"database/sql"
	"time"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
)

type resultTableModel struct {
	ID                 int64          `db:"id"`
	PublicID           string         `db:"public_id"`
	EventID            string         `db:"event_public_id"`
	SeasonID           string         `db:"season_public_id"`
	CompetitorID       sql.NullString `db:"competitor_id"`
	CompetitorName     string         `db:"competitor_name"`
	MecaID             string         `db:"meca_id"`
	ClassID            string         `db:"class_id"`
	ClassName          string         `db:"class_name"`
	Format             string         `db:"format"`
	Score              float64        `db:"score"`
	Placement          int            `db:"placement"`
	PointsEarned       int            `db:"points_earned"`
	CreatedBy          sql.NullString `db:"created_by"`
	UpdatedBy          sql.NullString `db:"updated_by"`
	ModificationReason sql.NullString `db:"modification_reason"`
	RevisionCount      int            `db:"revision_count"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
	DeletedAt          *time.Time     `db:"deleted_at"`
}

type resultInsertModel struct {
	PublicID           string         `db:"public_id"`
	EventID            string         `db:"event_public_id"`
	SeasonID           string         `db:"season_public_id"`
	CompetitorID       sql.NullString `db:"competitor_id"`
	CompetitorName     string         `db:"competitor_name"`
	MecaID             string         `db:"meca_id"`
	ClassID            string         `db:"class_id"`
	ClassName          string         `db:"class_name"`
	Format             string         `db:"format"`
	Score              float64        `db:"score"`
	Placement          int            `db:"placement"`
	PointsEarned       int            `db:"points_earned"`
	CreatedBy          sql.NullString `db:"created_by"`
	ModificationReason sql.NullString `db:"modification_reason"`
	RevisionCount      int            `db:"revision_count"`
}

func resultFromRow(row resultTableModel) result.CompetitionResult {
	return result.CompetitionResult{
		ID:                 row.PublicID,
		EventID:            row.EventID,
		SeasonID:           row.SeasonID,
		CompetitorID:       nullStringToString(row.CompetitorID),
		CompetitorName:     row.CompetitorName,
		MecaID:             row.MecaID,
		ClassID:            row.ClassID,
		ClassName:          row.ClassName,
		Format:             row.Format,
		Score:              row.Score,
		Placement:          row.Placement,
		PointsEarned:       row.PointsEarned,
		CreatedBy:          nullStringToString(row.CreatedBy),
		UpdatedBy:          nullStringToString(row.UpdatedBy),
		ModificationReason: nullStringToString(row.ModificationReason),
		RevisionCount:      row.RevisionCount,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}
