package services

import (
	"context"
	"log"

	"stampcard/internal/adapters/persistence/repositories"
)

// ErasureService deletes everything held about one client
type ErasureService struct {
	clientService *ClientService
	clientRepo    repositories.ClientRepository
	eventRepo     repositories.EventRepository
	stampRepo     repositories.StampRepository
}

// NewErasureService creates a new erasure service
func NewErasureService(
	clientService *ClientService,
	clientRepo repositories.ClientRepository,
	eventRepo repositories.EventRepository,
	stampRepo repositories.StampRepository,
) *ErasureService {
	return &ErasureService{
		clientService: clientService,
		clientRepo:    clientRepo,
		eventRepo:     eventRepo,
		stampRepo:     stampRepo,
	}
}

// Erase removes the client, its events and its stamp state.
// It returns false without touching anything when id and token do not match.
// The three collections are written one after another; a crash in between
// can leave orphaned events or stamps.
func (s *ErasureService) Erase(ctx context.Context, clientID, token string) (bool, error) {
	if _, ok := s.clientService.GetByIDAndToken(ctx, clientID, token); !ok {
		return false, nil
	}

	if _, err := s.clientRepo.Delete(ctx, clientID); err != nil {
		return false, err
	}
	removed, err := s.eventRepo.DeleteByClientID(ctx, clientID)
	if err != nil {
		return false, err
	}
	if _, err := s.stampRepo.DeleteByClientID(ctx, clientID); err != nil {
		return false, err
	}

	log.Printf("✅ Client erased: %s (%d events)", clientID, removed)
	return true, nil
}
