package dashboardapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/seaforth/crewdesk/crewing/dashboard/dashboardsrv"
	"github.com/seaforth/crewdesk/pkg/iam/auth"
)

// Handlers provides HTTP handlers for dashboard operations
type Handlers struct {
	service *dashboardsrv.DashboardService
}

// NewHandlers creates a new dashboard handlers instance
func NewHandlers(service *dashboardsrv.DashboardService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetStats returns the dashboard summary
// GET /api/dashboard/stats
func (h *Handlers) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// RegisterRoutes registers all dashboard routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/dashboard")

	api.Get("/stats",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeRequirementsRead),
		handlers.GetStats,
	)
}
