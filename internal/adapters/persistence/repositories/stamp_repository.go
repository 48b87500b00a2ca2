package repositories

import (
	"context"

	"stampcard/internal/adapters/persistence/store"
	"stampcard/internal/core/domain"
)

// stampRepository implements StampRepository interface
type stampRepository struct {
	stamps *store.Collection[domain.StampState]
}

// NewStampRepository creates a new stamp state repository
func NewStampRepository(s *store.Store) StampRepository {
	return &stampRepository{stamps: store.NewCollection[domain.StampState](s, StampsKey)}
}

// GetByClientID gets the stamp state of a client
func (r *stampRepository) GetByClientID(ctx context.Context, clientID string) (*domain.StampState, bool) {
	for _, st := range r.stamps.Load(ctx) {
		if st.ClientID == clientID {
			return &st, true
		}
	}
	return nil, false
}

// List lists all stamp states
func (r *stampRepository) List(ctx context.Context) []*domain.StampState {
	items := r.stamps.Load(ctx)
	out := make([]*domain.StampState, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// Update reads, transforms and writes one client's state atomically within the process
func (r *stampRepository) Update(ctx context.Context, clientID string, fn func(current *domain.StampState) *domain.StampState) error {
	return r.stamps.Update(ctx, func(items []domain.StampState) ([]domain.StampState, bool) {
		idx := -1
		var current *domain.StampState
		for i := range items {
			if items[i].ClientID == clientID {
				idx = i
				snapshot := items[i]
				current = &snapshot
				break
			}
		}

		next := fn(current)
		if next == nil {
			return items, false
		}
		if idx == -1 {
			return append(items, *next), true
		}
		items[idx] = *next
		return items, true
	})
}

// DeleteByClientID removes a client's stamp state
func (r *stampRepository) DeleteByClientID(ctx context.Context, clientID string) (bool, error) {
	found := false
	err := r.stamps.Update(ctx, func(items []domain.StampState) ([]domain.StampState, bool) {
		kept := items[:0]
		for _, st := range items {
			if st.ClientID == clientID {
				found = true
				continue
			}
			kept = append(kept, st)
		}
		return kept, found
	})
	return found, err
}
