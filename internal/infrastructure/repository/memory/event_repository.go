package memory

import (
	"context"
	"sync"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/event"
)

type EventRepository struct {
	mu     sync.RWMutex
	items  map[string]event.Event
	orders []string
}

func NewEventRepository(events []event.Event) *EventRepository {
	items := make(map[string]event.Event, len(events))
	orders := make([]string, 0, len(events))

	for _, e := range events {
		items[e.ID] = e
		orders = append(orders, e.ID)
	}

	return &EventRepository{
		items:  items,
		orders: orders,
	}
}

func (r *EventRepository) List(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return event.Event{}, false, nil
	}

	return e, true, nil
}

func (r *EventRepository) ListByFinalsGroup(_ context.Context, groupID string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, 2)
	for _, id := range r.orders {
		e := r.items[id]
		if e.FinalsGroupID == groupID {
			out = append(out, e)
		}
	}

	return out, nil
}
