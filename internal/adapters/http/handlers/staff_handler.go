package handlers

import (
	"errors"
	"strings"
	"time"

	"stampcard/internal/adapters/http/middleware"
	"stampcard/internal/config"
	"stampcard/internal/core/domain"
	"stampcard/internal/core/services"
	"stampcard/internal/pkg/pagination"
	"stampcard/internal/pkg/qr"
	"stampcard/internal/pkg/response"
	"stampcard/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// StaffHandler handles the staff counter endpoints
type StaffHandler struct {
	authService    *services.StaffAuthService
	clientService  *services.ClientService
	stampService   *services.StampService
	eventService   *services.EventService
	accountService *services.AccountService
	cfg            *config.Config
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(
	authService *services.StaffAuthService,
	clientService *services.ClientService,
	stampService *services.StampService,
	eventService *services.EventService,
	accountService *services.AccountService,
	cfg *config.Config,
) *StaffHandler {
	return &StaffHandler{
		authService:    authService,
		clientService:  clientService,
		stampService:   stampService,
		eventService:   eventService,
		accountService: accountService,
		cfg:            cfg,
	}
}

// LoginRequest represents a staff PIN login
type LoginRequest struct {
	PIN string `json:"pin" validate:"required"`
}

// ScanRequest carries the text read from a client QR
type ScanRequest struct {
	Payload string `json:"payload" validate:"required"`
}

// StaffClientRequest represents a staff-assisted registration
type StaffClientRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Phone string `json:"phone" validate:"omitempty,min=9,max=20"`
}

// StampResponse is returned after awarding a stamp
type StampResponse struct {
	Redeemed    bool `json:"redeemed"`
	NewProgress int  `json:"newProgress"`
	Threshold   int  `json:"threshold"`
}

// Login handles staff PIN login
// @Summary Staff login
// @Description Exchanges a PIN for a staff session (also set as an HttpOnly cookie)
// @Tags Staff
// @Accept json
// @Produce json
// @Param body body LoginRequest true "PIN"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/staff/login [post]
func (h *StaffHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.PIN = strings.TrimSpace(req.PIN)
	if fields := validation.Struct(req); fields != nil {
		return response.ValidationFailed(c, fields)
	}

	session, err := h.authService.Login(req.PIN)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPIN) {
			return response.Unauthorized(c, "Incorrect PIN")
		}
		return response.InternalServerError(c, "Failed to open staff session")
	}

	h.setSessionCookie(c, session)
	return response.Success(c, "Login successful", session)
}

// Logout clears the staff session cookie
// @Summary Staff logout
// @Tags Staff
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/staff/logout [post]
func (h *StaffHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
	return response.Success(c, "Logout successful", nil)
}

// Scan resolves a scanned QR payload to a client sheet
// @Summary Scan client QR
// @Description Accepts the full QR URL or its query string
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ScanRequest true "Scanned payload"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/staff/scan [post]
func (h *StaffHandler) Scan(c *fiber.Ctx) error {
	var req ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(req); fields != nil {
		return response.ValidationFailed(c, fields)
	}

	clientID, token, ok := qr.ParsePayload(req.Payload)
	if !ok {
		return response.BadRequest(c, "Unrecognized QR code")
	}
	client, ok := h.clientService.GetByIDAndToken(c.Context(), clientID, token)
	if !ok {
		return response.NotFound(c, msgClientNotFound)
	}

	sheet, ok := h.accountService.Sheet(c.Context(), client.ID)
	if !ok {
		return response.NotFound(c, msgClientNotFound)
	}
	return response.Success(c, "Client found", sheet)
}

// ListClients returns the client table
// @Summary List clients
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /api/v1/staff/clients [get]
func (h *StaffHandler) ListClients(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	rows, total := h.accountService.ListRows(c.Context(), params)
	return response.Success(c, "Clients retrieved", pagination.NewResponse(rows, params, total))
}

// CreateClient registers a client at the counter, reusing one with the same email
// @Summary Find or create client
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StaffClientRequest true "Client data"
// @Success 200 {object} response.Response
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/staff/clients [post]
func (h *StaffHandler) CreateClient(c *fiber.Ctx) error {
	var req StaffClientRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if fields := validation.Struct(req); fields != nil {
		return response.ValidationFailed(c, fields)
	}

	client, created, err := h.clientService.FindOrCreateByEmail(c.Context(), req.Email, services.ClientProfile{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to register client")
	}

	sheet, _ := h.accountService.Sheet(c.Context(), client.ID)
	if created {
		return response.Created(c, "Client registered", sheet)
	}
	return response.Success(c, "Client already registered", sheet)
}

// GetClient returns one client sheet
// @Summary Get client
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/staff/clients/{id} [get]
func (h *StaffHandler) GetClient(c *fiber.Ctx) error {
	sheet, ok := h.accountService.Sheet(c.Context(), c.Params("id"))
	if !ok {
		return response.NotFound(c, msgClientNotFound)
	}
	return response.Success(c, "Client retrieved", sheet)
}

// AddStamp awards one stamp
// @Summary Add stamp
// @Description Awards a stamp; reaching the program threshold redeems and resets the card
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/staff/clients/{id}/stamps [post]
func (h *StaffHandler) AddStamp(c *fiber.Ctx) error {
	program := h.cfg.Program.Stamps
	if !program.Active {
		return response.Error(c, fiber.StatusConflict, "Stamp program is not active")
	}

	client, ok := h.clientService.GetByID(c.Context(), c.Params("id"))
	if !ok {
		return response.NotFound(c, msgClientNotFound)
	}

	result, err := h.stampService.AddStamp(c.Context(), client.ID, program.Threshold)
	if err != nil {
		return response.InternalServerError(c, "Failed to add stamp")
	}

	message := "Stamp added"
	if result.Redeemed {
		message = "Reward redeemed"
	}
	return response.Success(c, message, StampResponse{
		Redeemed:    result.Redeemed,
		NewProgress: result.NewProgress,
		Threshold:   program.Threshold,
	})
}

// RegisterPurchase records a purchase
// @Summary Register purchase
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/staff/clients/{id}/purchases [post]
func (h *StaffHandler) RegisterPurchase(c *fiber.Ctx) error {
	client, ok := h.clientService.GetByID(c.Context(), c.Params("id"))
	if !ok {
		return response.NotFound(c, msgClientNotFound)
	}

	event, err := h.eventService.RecordPurchase(c.Context(), client.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to register purchase")
	}
	return response.Created(c, "Purchase registered", event)
}

// ApplyDiscount records that the member discount was applied
// @Summary Apply discount
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/staff/clients/{id}/discounts [post]
func (h *StaffHandler) ApplyDiscount(c *fiber.Ctx) error {
	program := h.cfg.Program.Discount
	if !program.Active {
		return response.Error(c, fiber.StatusConflict, "Discount program is not active")
	}

	client, ok := h.clientService.GetByID(c.Context(), c.Params("id"))
	if !ok {
		return response.NotFound(c, msgClientNotFound)
	}

	event, err := h.eventService.RecordDiscount(c.Context(), client.ID, program.Percentage)
	if err != nil {
		return response.InternalServerError(c, "Failed to apply discount")
	}
	return response.Created(c, "Discount applied", event)
}

func (h *StaffHandler) setSessionCookie(c *fiber.Ctx, session *services.StaffSession) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   h.cfg.JWT.SessionHours * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
