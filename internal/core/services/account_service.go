package services

import (
	"context"

	"stampcard/internal/core/domain"
	"stampcard/internal/pkg/pagination"
)

// SheetEventLimit is how many events the staff sheet shows
const SheetEventLimit = 5

// AccountService assembles the read models shown to clients and staff
type AccountService struct {
	clientService *ClientService
	stampService  *StampService
	eventService  *EventService
}

// NewAccountService creates a new account service
func NewAccountService(clientService *ClientService, stampService *StampService, eventService *EventService) *AccountService {
	return &AccountService{
		clientService: clientService,
		stampService:  stampService,
		eventService:  eventService,
	}
}

// View returns the authenticated client's account with every event, newest first
func (s *AccountService) View(ctx context.Context, clientID, token string) (*AccountView, bool) {
	client, ok := s.clientService.GetByIDAndToken(ctx, clientID, token)
	if !ok {
		return nil, false
	}
	stamps, _ := s.stampService.GetState(ctx, client.ID)
	return &AccountView{
		Client: client,
		Stamps: stamps,
		Events: s.eventService.Recent(ctx, client.ID, 0),
	}, true
}

// Sheet returns the staff sheet of a client
func (s *AccountService) Sheet(ctx context.Context, clientID string) (*ClientSheet, bool) {
	client, ok := s.clientService.GetByID(ctx, clientID)
	if !ok {
		return nil, false
	}
	stamps, _ := s.stampService.GetState(ctx, client.ID)
	return &ClientSheet{
		Client: client,
		Stamps: stamps,
		Recent: s.eventService.Recent(ctx, client.ID, SheetEventLimit),
	}, true
}

// ListRows returns one page of the staff client table, newest clients first
func (s *AccountService) ListRows(ctx context.Context, params *pagination.Params) ([]ClientRow, int64) {
	clients := s.clientService.List(ctx)
	total := int64(len(clients))

	newestFirst := make([]*domain.Client, len(clients))
	for i, c := range clients {
		newestFirst[len(clients)-1-i] = c
	}

	page := pagination.Slice(newestFirst, params)
	if len(page) == 0 {
		return []ClientRow{}, total
	}
	states := s.stampService.StatesByClient(ctx)
	lastActivity := s.eventService.LastActivityByClient(ctx)

	rows := make([]ClientRow, 0, len(page))
	for _, c := range page {
		row := ClientRow{
			ID:           c.ID,
			Name:         c.Name,
			Email:        c.Email,
			Phone:        c.Phone,
			CreatedAt:    c.CreatedAt,
			LastActivity: c.CreatedAt,
		}
		if st, ok := states[c.ID]; ok {
			row.Progress = st.Progress
			row.Threshold = st.Threshold
		}
		if last, ok := lastActivity[c.ID]; ok {
			row.LastActivity = last
		}
		rows = append(rows, row)
	}
	return rows, total
}
