package handlers

import (
	"fmt"

	"stampcard/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// ExportHandler handles data export
type ExportHandler struct {
	exportService *services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Export downloads every collection as one JSON document
// @Summary Export data
// @Description Clients, events, stamp states and promotions in stored order
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Snapshot
// @Router /api/v1/admin/export [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	snap := h.exportService.Snapshot(c.Context())
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="stampcard-%s.json"`, snap.GeneratedAt.Format("20060102-150405")))
	return c.JSON(snap)
}
