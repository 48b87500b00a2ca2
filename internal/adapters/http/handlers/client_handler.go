package handlers

import (
	"strings"

	"stampcard/internal/config"
	"stampcard/internal/core/domain"
	"stampcard/internal/core/services"
	"stampcard/internal/pkg/qr"
	"stampcard/internal/pkg/response"
	"stampcard/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// msgClientNotFound is the one message for every unknown id or wrong token
const msgClientNotFound = "Client not found or token invalid"

// msgEmailRegistered answers a registration for a known email without revealing the client
const msgEmailRegistered = "This email is already registered, ask staff to recover your QR"

// ClientHandler handles the public client endpoints
type ClientHandler struct {
	clientService  *services.ClientService
	accountService *services.AccountService
	erasureService *services.ErasureService
	cfg            *config.Config
}

// NewClientHandler creates a new client handler
func NewClientHandler(
	clientService *services.ClientService,
	accountService *services.AccountService,
	erasureService *services.ErasureService,
	cfg *config.Config,
) *ClientHandler {
	return &ClientHandler{
		clientService:  clientService,
		accountService: accountService,
		erasureService: erasureService,
		cfg:            cfg,
	}
}

// RegisterRequest represents the self-service registration form
type RegisterRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"omitempty,min=9,max=20"`
	Consent bool   `json:"consent" validate:"required"`
}

// RecoverRequest represents a QR recovery request
type RecoverRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone  string `json:"phone" validate:"omitempty,min=9,max=20"`
	Create bool   `json:"create"`
}

// EraseRequest represents a data erasure request
type EraseRequest struct {
	ClientID string `json:"clientId" validate:"required"`
	Token    string `json:"token" validate:"required"`
}

// QRCredentials is returned after registration or recovery
type QRCredentials struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	QRURL string `json:"qrUrl"`
}

// Register handles self-service registration
// @Summary Register client
// @Description Registers a client. An email that is already registered gets 409 and no credentials; recovery goes through staff.
// @Tags Client
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/qr/register [post]
func (h *ClientHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
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
	if !created {
		return response.Error(c, fiber.StatusConflict, msgEmailRegistered)
	}

	return response.Created(c, "QR created successfully", h.credentials(c, client))
}

// Recover handles staff-assisted QR recovery by email
// @Summary Recover QR
// @Description Returns the QR of the client registered with an email. With create=true a missing client is registered.
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RecoverRequest true "Recovery data"
// @Success 200 {object} response.Response
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/staff/recover [post]
func (h *ClientHandler) Recover(c *fiber.Ctx) error {
	var req RecoverRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)

	fields := validation.Struct(req)
	if req.Create && req.Name == "" {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["name"] = "name is required"
	}
	if fields != nil {
		return response.ValidationFailed(c, fields)
	}

	if !req.Create {
		client, ok := h.clientService.FindByEmail(c.Context(), req.Email)
		if !ok {
			return response.NotFound(c, "No client registered with that email")
		}
		return response.Success(c, "QR recovered", h.credentials(c, client))
	}

	client, created, err := h.clientService.FindOrCreateByEmail(c.Context(), req.Email, services.ClientProfile{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to recover client")
	}
	if created {
		return response.Created(c, "QR created successfully", h.credentials(c, client))
	}
	return response.Success(c, "QR recovered", h.credentials(c, client))
}

// Account returns the client's own account
// @Summary Client account
// @Description Client profile, stamp progress and history, newest first
// @Tags Client
// @Produce json
// @Param cid query string true "Client ID"
// @Param t query string true "Client token"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/account [get]
func (h *ClientHandler) Account(c *fiber.Ctx) error {
	view, ok := h.accountService.View(c.Context(), c.Query("cid"), c.Query("t"))
	if !ok {
		return response.NotFound(c, msgClientNotFound)
	}
	return response.Success(c, "Account retrieved", view)
}

// QRImage renders the client's QR code
// @Summary Client QR image
// @Description PNG of the client's QR payload URL
// @Tags Client
// @Produce png
// @Param cid query string true "Client ID"
// @Param t query string true "Client token"
// @Param size query int false "Edge length in pixels"
// @Success 200 {file} binary
// @Failure 404 {object} response.Response
// @Router /api/v1/account/qr.png [get]
func (h *ClientHandler) QRImage(c *fiber.Ctx) error {
	client, ok := h.clientService.GetByIDAndToken(c.Context(), c.Query("cid"), c.Query("t"))
	if !ok {
		return response.NotFound(c, msgClientNotFound)
	}

	size := c.QueryInt("size", qr.DefaultSize)
	if size < 128 || size > 1024 {
		size = qr.DefaultSize
	}

	png, err := qr.PNG(h.qrURL(c, client), size)
	if err != nil {
		return response.InternalServerError(c, "Failed to render QR")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// Erase deletes every record of the client
// @Summary Erase client data
// @Description Removes the client, its history and its stamps
// @Tags Client
// @Accept json
// @Produce json
// @Param body body EraseRequest true "Client credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/account [delete]
func (h *ClientHandler) Erase(c *fiber.Ctx) error {
	var req EraseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(req); fields != nil {
		return response.ValidationFailed(c, fields)
	}

	erased, err := h.erasureService.Erase(c.Context(), req.ClientID, req.Token)
	if err != nil {
		return response.InternalServerError(c, "Failed to erase client data")
	}
	if !erased {
		return response.NotFound(c, msgClientNotFound)
	}

	return response.Success(c, "Your data has been deleted", nil)
}

func (h *ClientHandler) credentials(c *fiber.Ctx, client *domain.Client) QRCredentials {
	return QRCredentials{
		ID:    client.ID,
		Token: client.Token,
		QRURL: h.qrURL(c, client),
	}
}

func (h *ClientHandler) qrURL(c *fiber.Ctx, client *domain.Client) string {
	return qr.BuildClientURL(publicOrigin(c, h.cfg), h.cfg.Program.Slug, client.ID, client.Token)
}

// publicOrigin prefers the configured origin over the request's
func publicOrigin(c *fiber.Ctx, cfg *config.Config) string {
	if cfg.PublicOrigin != "" {
		return cfg.PublicOrigin
	}
	return c.BaseURL()
}
