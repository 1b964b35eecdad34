package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/event"
	qb "github.com/mecajames/NewMECAV2-sub004/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	query, args, err := qb.Select("*").From("events").
		Where(qb.IsNull("deleted_at")).
		OrderBy("event_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}

	return out, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (event.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event by id query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event by id: %w", err)
	}

	return eventFromRow(row), true, nil
}

func (r *EventRepository) ListByFinalsGroup(ctx context.Context, groupID string) ([]event.Event, error) {
	query, args, err := qb.Select("*").From("events").
		Where(
			qb.Eq("finals_group_id", groupID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("finals_day", "event_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select finals group events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select finals group events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}

	return out, nil
}

func eventFromRow(row eventTableModel) event.Event {
	return event.Event{
		ID:               row.PublicID,
		SeasonID:         row.SeasonID,
		Name:             row.Name,
		Date:             row.EventDate,
		Kind:             event.Kind(row.Kind),
		PointsMultiplier: row.PointsMultiplier,
		FinalsGroupID:    nullStringToString(row.FinalsGroupID),
		FinalsDay:        row.FinalsDay,
	}
}
