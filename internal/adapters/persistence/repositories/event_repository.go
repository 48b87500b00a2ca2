package repositories

import (
	"context"

	"stampcard/internal/adapters/persistence/store"
	"stampcard/internal/core/domain"
)

// eventRepository implements EventRepository interface
type eventRepository struct {
	events *store.Collection[domain.Event]
}

// NewEventRepository creates a new event repository
func NewEventRepository(s *store.Store) EventRepository {
	return &eventRepository{events: store.NewCollection[domain.Event](s, EventsKey)}
}

// Create appends an event
func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	return r.events.Update(ctx, func(items []domain.Event) ([]domain.Event, bool) {
		return append(items, *event), true
	})
}

// List lists every event in stored order
func (r *eventRepository) List(ctx context.Context) []*domain.Event {
	items := r.events.Load(ctx)
	out := make([]*domain.Event, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// ListByClientID lists a client's events in stored order
func (r *eventRepository) ListByClientID(ctx context.Context, clientID string) []*domain.Event {
	items := r.events.Load(ctx)
	out := make([]*domain.Event, 0)
	for i := range items {
		if items[i].ClientID == clientID {
			out = append(out, &items[i])
		}
	}
	return out
}

// DeleteByClientID removes every event owned by a client
func (r *eventRepository) DeleteByClientID(ctx context.Context, clientID string) (int, error) {
	removed := 0
	err := r.events.Update(ctx, func(items []domain.Event) ([]domain.Event, bool) {
		kept := items[:0]
		for _, e := range items {
			if e.ClientID == clientID {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		return kept, removed > 0
	})
	return removed, err
}
