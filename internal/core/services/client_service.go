package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"stampcard/internal/adapters/persistence/repositories"
	"stampcard/internal/core/domain"
	"stampcard/internal/pkg/password"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// ClientService is the client registry
type ClientService struct {
	clientRepo   repositories.ClientRepository
	stampRepo    repositories.StampRepository
	eventService *EventService
	threshold    int
	now          func() time.Time

	// serializes FindOrCreateByEmail so one email yields one client per process
	upsertMu sync.Mutex
}

// NewClientService creates a new client service.
// threshold is the program threshold captured into new stamp states.
func NewClientService(
	clientRepo repositories.ClientRepository,
	stampRepo repositories.StampRepository,
	eventService *EventService,
	threshold int,
) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		stampRepo:    stampRepo,
		eventService: eventService,
		threshold:    threshold,
		now:          time.Now,
	}
}

// Create registers a client without checking for an existing email.
// Prefer FindOrCreateByEmail.
func (s *ClientService) Create(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	token, err := password.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	client := &domain.Client{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Token:     token,
		CreatedAt: now,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	if _, err := s.eventService.Append(ctx, client.ID, domain.EventClientCreated, nil); err != nil {
		return nil, err
	}

	err = s.stampRepo.Update(ctx, client.ID, func(current *domain.StampState) *domain.StampState {
		if current != nil {
			return nil
		}
		return &domain.StampState{
			ClientID:  client.ID,
			Progress:  0,
			Threshold: s.threshold,
			UpdatedAt: now,
		}
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Client registered: %s", client.ID)
	return client, nil
}

// FindOrCreateByEmail returns the first client whose email matches
// case-insensitively, creating one when none exists
func (s *ClientService) FindOrCreateByEmail(ctx context.Context, email string, profile ClientProfile) (*domain.Client, bool, error) {
	s.upsertMu.Lock()
	defer s.upsertMu.Unlock()

	if existing, ok := s.FindByEmail(ctx, email); ok {
		return existing, false, nil
	}

	client, err := s.Create(ctx, CreateClientInput{
		Name:  profile.Name,
		Email: email,
		Phone: profile.Phone,
	})
	if err != nil {
		return nil, false, err
	}
	return client, true, nil
}

// GetByID gets a client by ID
func (s *ClientService) GetByID(ctx context.Context, id string) (*domain.Client, bool) {
	if id == "" {
		return nil, false
	}
	return s.clientRepo.GetByID(ctx, id)
}

// GetByIDAndToken is the authenticated lookup. An unknown id and a wrong
// token both yield the same absent result.
func (s *ClientService) GetByIDAndToken(ctx context.Context, id, token string) (*domain.Client, bool) {
	if id == "" || token == "" {
		return nil, false
	}
	client, ok := s.clientRepo.GetByID(ctx, id)
	if !ok {
		// keep the comparison cost for unknown ids
		password.Equal(token, token)
		return nil, false
	}
	if !password.Equal(client.Token, token) {
		return nil, false
	}
	return client, true
}

// FindByEmail finds a client by full email, ignoring case
func (s *ClientService) FindByEmail(ctx context.Context, email string) (*domain.Client, bool) {
	want := normalizeEmail(email)
	if want == "" {
		return nil, false
	}
	return s.clientRepo.FindFirst(ctx, func(c *domain.Client) bool {
		return normalizeEmail(c.Email) == want
	})
}

// List lists every client in registration order
func (s *ClientService) List(ctx context.Context) []*domain.Client {
	return s.clientRepo.List(ctx)
}

func normalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
