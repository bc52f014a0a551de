package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sena-biblioteca/internal/core/services"
	"sena-biblioteca/internal/pkg/response"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles dashboard statistics
// @Summary Dashboard statistics
// @Description Get book, loan and user counters for the admin home page
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get dashboard stats")
	}

	return response.Success(c, "Dashboard stats retrieved successfully", stats)
}
