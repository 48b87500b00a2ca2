package services

import (
	"context"
	"sort"
	"time"

	"stampcard/internal/adapters/persistence/repositories"
	"stampcard/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventService appends to and reads the loyalty event log
type EventService struct {
	eventRepo repositories.EventRepository
	now       func() time.Time
}

// NewEventService creates a new event service
func NewEventService(eventRepo repositories.EventRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

// Append records an event for a client
func (s *EventService) Append(ctx context.Context, clientID string, kind domain.EventKind, metadata map[string]any) (*domain.Event, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	event := &domain.Event{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Timestamp: s.now().UTC(),
		Kind:      kind,
		Metadata:  metadata,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// RecordPurchase registers a purchase made by a client
func (s *EventService) RecordPurchase(ctx context.Context, clientID string) (*domain.Event, error) {
	return s.Append(ctx, clientID, domain.EventPurchase, nil)
}

// RecordDiscount registers that the member discount was applied
func (s *EventService) RecordDiscount(ctx context.Context, clientID string, percentage decimal.Decimal) (*domain.Event, error) {
	return s.Append(ctx, clientID, domain.EventDiscountApplied, map[string]any{
		"percentage": percentage.String(),
	})
}

// ListForClient returns a client's events in stored order
func (s *EventService) ListForClient(ctx context.Context, clientID string) []*domain.Event {
	return s.eventRepo.ListByClientID(ctx, clientID)
}

// Recent returns up to n of a client's events, newest first. n <= 0 means all.
func (s *EventService) Recent(ctx context.Context, clientID string, n int) []*domain.Event {
	events := SortNewestFirst(s.ListForClient(ctx, clientID))
	if n > 0 && len(events) > n {
		events = events[:n]
	}
	return events
}

// LastActivity returns the timestamp of a client's latest event
func (s *EventService) LastActivity(ctx context.Context, clientID string) (time.Time, bool) {
	var last time.Time
	found := false
	for _, e := range s.ListForClient(ctx, clientID) {
		if !found || e.Timestamp.After(last) {
			last = e.Timestamp
			found = true
		}
	}
	return last, found
}

// LastActivityByClient loads the event log once and returns each client's
// latest event timestamp
func (s *EventService) LastActivityByClient(ctx context.Context) map[string]time.Time {
	out := make(map[string]time.Time)
	for _, e := range s.eventRepo.List(ctx) {
		if last, ok := out[e.ClientID]; !ok || e.Timestamp.After(last) {
			out[e.ClientID] = e.Timestamp
		}
	}
	return out
}

// SortNewestFirst orders events by timestamp descending; equal timestamps keep
// the later-appended event first
func SortNewestFirst(events []*domain.Event) []*domain.Event {
	out := make([]*domain.Event, len(events))
	for i := range events {
		out[len(events)-1-i] = events[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
