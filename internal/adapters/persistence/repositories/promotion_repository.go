package repositories

import (
	"context"

	"stampcard/internal/adapters/persistence/store"
	"stampcard/internal/core/domain"
)

// promotionRepository implements PromotionRepository interface
type promotionRepository struct {
	promos *store.Collection[domain.Promotion]
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(s *store.Store) PromotionRepository {
	return &promotionRepository{promos: store.NewCollection[domain.Promotion](s, PromotionsKey)}
}

// List lists promotions in stored (insertion) order
func (r *promotionRepository) List(ctx context.Context) []*domain.Promotion {
	items := r.promos.Load(ctx)
	out := make([]*domain.Promotion, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// GetByID gets a promotion by ID
func (r *promotionRepository) GetByID(ctx context.Context, id string) (*domain.Promotion, bool) {
	for _, p := range r.promos.Load(ctx) {
		if p.ID == id {
			return &p, true
		}
	}
	return nil, false
}

// Create appends a promotion
func (r *promotionRepository) Create(ctx context.Context, promo *domain.Promotion) error {
	return r.promos.Update(ctx, func(items []domain.Promotion) ([]domain.Promotion, bool) {
		return append(items, *promo), true
	})
}

// Modify edits a promotion in place, keeping its position
func (r *promotionRepository) Modify(ctx context.Context, id string, fn func(p *domain.Promotion)) (*domain.Promotion, bool, error) {
	var updated *domain.Promotion
	err := r.promos.Update(ctx, func(items []domain.Promotion) ([]domain.Promotion, bool) {
		for i := range items {
			if items[i].ID == id {
				fn(&items[i])
				items[i].ID = id
				p := items[i]
				updated = &p
				return items, true
			}
		}
		return items, false
	})
	if err != nil {
		return nil, false, err
	}
	return updated, updated != nil, nil
}

// Delete removes a promotion by ID
func (r *promotionRepository) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.promos.Update(ctx, func(items []domain.Promotion) ([]domain.Promotion, bool) {
		kept := items[:0]
		for _, p := range items {
			if p.ID == id {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		return kept, found
	})
	return found, err
}
