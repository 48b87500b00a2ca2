package services

import (
	"context"
	"log"
	"time"

	"stampcard/internal/adapters/persistence/repositories"
	"stampcard/internal/core/domain"
)

// StampService is the stamp ledger
type StampService struct {
	stampRepo    repositories.StampRepository
	eventService *EventService
	now          func() time.Time
}

// NewStampService creates a new stamp service
func NewStampService(stampRepo repositories.StampRepository, eventService *EventService) *StampService {
	return &StampService{
		stampRepo:    stampRepo,
		eventService: eventService,
		now:          time.Now,
	}
}

// GetState gets a client's stamp state
func (s *StampService) GetState(ctx context.Context, clientID string) (*domain.StampState, bool) {
	return s.stampRepo.GetByClientID(ctx, clientID)
}

// StatesByClient loads every stamp state once, keyed by client ID
func (s *StampService) StatesByClient(ctx context.Context) map[string]*domain.StampState {
	states := s.stampRepo.List(ctx)
	out := make(map[string]*domain.StampState, len(states))
	for _, st := range states {
		out[st.ClientID] = st
	}
	return out
}

// AddStamp awards one stamp. The threshold passed here decides redemption,
// not the one stored on the state.
func (s *StampService) AddStamp(ctx context.Context, clientID string, threshold int) (*domain.StampResult, error) {
	if clientID == "" || threshold < 1 {
		return nil, domain.ErrInvalidInput
	}

	var (
		result   domain.StampResult
		redeemed int
	)
	now := s.now().UTC()

	err := s.stampRepo.Update(ctx, clientID, func(current *domain.StampState) *domain.StampState {
		if current == nil {
			result = domain.StampResult{Redeemed: false, NewProgress: 1}
			return &domain.StampState{
				ClientID:  clientID,
				Progress:  1,
				Threshold: threshold,
				UpdatedAt: now,
			}
		}

		next := *current
		next.Progress++
		next.UpdatedAt = now
		if next.Progress >= threshold {
			redeemed = next.Progress
			next.Progress = 0
			result = domain.StampResult{Redeemed: true, NewProgress: 0}
		} else {
			result = domain.StampResult{Redeemed: false, NewProgress: next.Progress}
		}
		return &next
	})
	if err != nil {
		return nil, err
	}

	if result.Redeemed {
		if _, err := s.eventService.Append(ctx, clientID, domain.EventRedemption, map[string]any{
			"stamps": redeemed,
		}); err != nil {
			return nil, err
		}
		log.Printf("✅ Reward redeemed: client=%s stamps=%d", clientID, redeemed)
		return &result, nil
	}

	if _, err := s.eventService.Append(ctx, clientID, domain.EventStampAdded, nil); err != nil {
		return nil, err
	}
	return &result, nil
}
