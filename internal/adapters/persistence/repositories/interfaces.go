package repositories

import (
	"context"

	"stampcard/internal/core/domain"
)

// Logical collection keys on the record store
const (
	ClientsKey    = "loyalty_clients"
	EventsKey     = "loyalty_events"
	StampsKey     = "loyalty_stamps"
	PromotionsKey = "promos:v1"
)

// ClientRepository defines client repository interface
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, bool)
	FindFirst(ctx context.Context, match func(*domain.Client) bool) (*domain.Client, bool)
	List(ctx context.Context) []*domain.Client
	Delete(ctx context.Context, id string) (bool, error)
}

// EventRepository defines event log repository interface
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	List(ctx context.Context) []*domain.Event
	ListByClientID(ctx context.Context, clientID string) []*domain.Event
	DeleteByClientID(ctx context.Context, clientID string) (int, error)
}

// StampRepository defines stamp state repository interface
type StampRepository interface {
	GetByClientID(ctx context.Context, clientID string) (*domain.StampState, bool)
	List(ctx context.Context) []*domain.StampState
	// Update hands fn the current state (nil when absent) under the collection lock.
	// A nil return leaves the collection untouched.
	Update(ctx context.Context, clientID string, fn func(current *domain.StampState) *domain.StampState) error
	DeleteByClientID(ctx context.Context, clientID string) (bool, error)
}

// PromotionRepository defines promotion repository interface
type PromotionRepository interface {
	List(ctx context.Context) []*domain.Promotion
	GetByID(ctx context.Context, id string) (*domain.Promotion, bool)
	Create(ctx context.Context, promo *domain.Promotion) error
	// Modify applies fn to the stored promotion with id and reports whether it existed
	Modify(ctx context.Context, id string, fn func(p *domain.Promotion)) (*domain.Promotion, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
