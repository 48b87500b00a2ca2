package repositories

import (
	"context"

	"stampcard/internal/adapters/persistence/store"
	"stampcard/internal/core/domain"
)

// clientRepository implements ClientRepository interface
type clientRepository struct {
	clients *store.Collection[domain.Client]
}

// NewClientRepository creates a new client repository
func NewClientRepository(s *store.Store) ClientRepository {
	return &clientRepository{clients: store.NewCollection[domain.Client](s, ClientsKey)}
}

// Create appends a client
func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	return r.clients.Update(ctx, func(items []domain.Client) ([]domain.Client, bool) {
		return append(items, *client), true
	})
}

// GetByID gets a client by ID
func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, bool) {
	return r.FindFirst(ctx, func(c *domain.Client) bool {
		return c.ID == id
	})
}

// FindFirst returns the first client in stored order that matches
func (r *clientRepository) FindFirst(ctx context.Context, match func(*domain.Client) bool) (*domain.Client, bool) {
	for _, c := range r.clients.Load(ctx) {
		if match(&c) {
			return &c, true
		}
	}
	return nil, false
}

// List lists all clients in stored order
func (r *clientRepository) List(ctx context.Context) []*domain.Client {
	items := r.clients.Load(ctx)
	out := make([]*domain.Client, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// Delete removes a client by ID
func (r *clientRepository) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.clients.Update(ctx, func(items []domain.Client) ([]domain.Client, bool) {
		kept := items[:0]
		for _, c := range items {
			if c.ID == id {
				found = true
				continue
			}
			kept = append(kept, c)
		}
		return kept, found
	})
	return found, err
}
