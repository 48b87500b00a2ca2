package handlers

import (
	"errors"
	"time"

	"stampcard/internal/core/domain"
	"stampcard/internal/core/services"
	"stampcard/internal/pkg/response"
	"stampcard/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

const msgPromotionNotFound = "Promotion not found"

// PromotionHandler handles promotion endpoints
type PromotionHandler struct {
	promotionService *services.PromotionService
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionService *services.PromotionService) *PromotionHandler {
	return &PromotionHandler{
		promotionService: promotionService,
	}
}

// PromotionRequest represents a promotion body. On create, empty fields take defaults.
type PromotionRequest struct {
	Title          string     `json:"title" validate:"max=120"`
	Subtitle       string     `json:"subtitle" validate:"max=200"`
	Description    string     `json:"description" validate:"max=2000"`
	ImageURL       string     `json:"imageUrl" validate:"omitempty,max=2048"`
	CTALabel       string     `json:"ctaLabel" validate:"max=60"`
	CTAHref        string     `json:"ctaHref" validate:"omitempty,max=2048"`
	Status         string     `json:"status" validate:"omitempty,oneof=draft scheduled published expired"`
	StartAt        *time.Time `json:"startAt"`
	EndAt          *time.Time `json:"endAt"`
	Priority       *int       `json:"priority"`
	Placement      string     `json:"placement" validate:"omitempty,oneof=hero banner card"`
	Tags           []string   `json:"tags" validate:"max=20,dive,max=40"`
	TrackingParams string     `json:"trackingParams" validate:"max=500"`
}

// StatusRequest represents a status change
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft scheduled published expired"`
}

// PromotionView is a promotion as shown to visitors
type PromotionView struct {
	*domain.Promotion
	Href string `json:"href"`
}

// Visible returns the promotions shown right now
// @Summary Visible promotions
// @Description Published and in-window scheduled promotions, highest priority first
// @Tags Promotions
// @Produce json
// @Param placement query string false "hero, banner or card"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/promotions [get]
func (h *PromotionHandler) Visible(c *fiber.Ctx) error {
	placement := domain.PromotionPlacement(c.Query("placement"))
	if placement != "" && !placement.Valid() {
		return response.BadRequest(c, "Invalid placement")
	}

	promos := h.promotionService.VisibleByPlacement(c.Context(), time.Now(), placement)
	views := make([]PromotionView, 0, len(promos))
	for _, p := range promos {
		views = append(views, PromotionView{Promotion: p, Href: p.TrackedHref()})
	}
	return response.Success(c, "Promotions retrieved", views)
}

// List returns every promotion
// @Summary List promotions
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/admin/promotions [get]
func (h *PromotionHandler) List(c *fiber.Ctx) error {
	return response.Success(c, "Promotions retrieved", h.promotionService.List(c.Context()))
}

// Get returns one promotion
// @Summary Get promotion
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promotion ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/admin/promotions/{id} [get]
func (h *PromotionHandler) Get(c *fiber.Ctx) error {
	promo, ok := h.promotionService.Get(c.Context(), c.Params("id"))
	if !ok {
		return response.NotFound(c, msgPromotionNotFound)
	}
	return response.Success(c, "Promotion retrieved", promo)
}

// Create creates a promotion
// @Summary Create promotion
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PromotionRequest true "Promotion"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/admin/promotions [post]
func (h *PromotionHandler) Create(c *fiber.Ctx) error {
	var req PromotionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(req); fields != nil {
		return response.ValidationFailed(c, fields)
	}

	promo, err := h.promotionService.Create(c.Context(), services.PromotionInput{
		Title:          req.Title,
		Subtitle:       req.Subtitle,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		CTALabel:       req.CTALabel,
		CTAHref:        req.CTAHref,
		Status:         domain.PromotionStatus(req.Status),
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		Priority:       req.Priority,
		Placement:      domain.PromotionPlacement(req.Placement),
		Tags:           req.Tags,
		TrackingParams: req.TrackingParams,
	})
	if err != nil {
		return promotionError(c, err)
	}
	return response.Created(c, "Promotion created", promo)
}

// Update replaces a promotion
// @Summary Replace promotion
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promotion ID"
// @Param body body PromotionRequest true "Promotion"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/admin/promotions/{id} [put]
func (h *PromotionHandler) Update(c *fiber.Ctx) error {
	var req PromotionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(req); fields != nil {
		return response.ValidationFailed(c, fields)
	}

	promo := domain.Promotion{
		ID:             c.Params("id"),
		Title:          req.Title,
		Subtitle:       req.Subtitle,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		CTALabel:       req.CTALabel,
		CTAHref:        req.CTAHref,
		Status:         domain.PromotionStatus(req.Status),
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		Priority:       services.DefaultPromotionPriority,
		Placement:      domain.PromotionPlacement(req.Placement),
		Tags:           req.Tags,
		TrackingParams: req.TrackingParams,
	}
	if req.Priority != nil {
		promo.Priority = *req.Priority
	}

	saved, found, err := h.promotionService.Save(c.Context(), promo)
	if err != nil {
		return promotionError(c, err)
	}
	if !found {
		return response.NotFound(c, msgPromotionNotFound)
	}
	return response.Success(c, "Promotion updated", saved)
}

// UpdateStatus changes a promotion's status
// @Summary Change promotion status
// @Description Publish, schedule, unpublish (draft) or expire a promotion
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promotion ID"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/admin/promotions/{id}/status [patch]
func (h *PromotionHandler) UpdateStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(req); fields != nil {
		return response.ValidationFailed(c, fields)
	}

	promo, found, err := h.promotionService.UpdateStatus(c.Context(), c.Params("id"), domain.PromotionStatus(req.Status))
	if err != nil {
		return promotionError(c, err)
	}
	if !found {
		return response.NotFound(c, msgPromotionNotFound)
	}
	return response.Success(c, "Promotion status updated", promo)
}

// Delete removes a promotion
// @Summary Delete promotion
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promotion ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/promotions/{id} [delete]
func (h *PromotionHandler) Delete(c *fiber.Ctx) error {
	if err := h.promotionService.Remove(c.Context(), c.Params("id")); err != nil {
		return response.InternalServerError(c, "Failed to delete promotion")
	}
	return response.Success(c, "Promotion deleted", nil)
}

func promotionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidStatus):
		return response.BadRequest(c, "Invalid status")
	case errors.Is(err, domain.ErrInvalidPlacement):
		return response.BadRequest(c, "Invalid placement")
	case errors.Is(err, domain.ErrInvalidSchedule):
		return response.BadRequest(c, "End date must not be before start date")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Invalid promotion")
	default:
		return response.InternalServerError(c, "Failed to save promotion")
	}
}
