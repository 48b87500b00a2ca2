package handlers

import (
	"stampcard/internal/adapters/persistence/store"
	"stampcard/internal/config"
	"stampcard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check and program info endpoints
type HealthHandler struct {
	store *store.Store
	cfg   *config.Config
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(s *store.Store, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		store: s,
		cfg:   cfg,
	}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 Stampcard API v1.0 is running",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Reports whether records are written to durable storage or kept in memory
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	storage := "memory"
	if h.store.Durable() {
		storage = "healthy"
		if !h.store.Available(c.UserContext()) {
			storage = "degraded"
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":     "healthy",
			"storage": storage,
			"driver":  h.cfg.Store.Driver,
		},
	})
}

// Program returns the merchant and loyalty program settings
// @Summary Loyalty program
// @Description Merchant details, stamp program and member discount
// @Tags Program
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/program [get]
func (h *HealthHandler) Program(c *fiber.Ctx) error {
	return response.Success(c, "Program retrieved", h.cfg.Program)
}
