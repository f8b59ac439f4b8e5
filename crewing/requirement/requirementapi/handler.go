package requirementapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/seaforth/crewdesk/crewing/requirement"
	"github.com/seaforth/crewdesk/crewing/requirement/requirementsrv"
	"github.com/seaforth/crewdesk/pkg/iam/auth"
	"github.com/seaforth/crewdesk/pkg/kernel"
)

// Handlers provides HTTP handlers for requirement operations
type Handlers struct {
	service *requirementsrv.RequirementService
}

// NewHandlers creates a new requirement handlers instance
func NewHandlers(service *requirementsrv.RequirementService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateRequirement creates a new crew requirement
// POST /api/requirements
func (h *Handlers) CreateRequirement(c *fiber.Ctx) error {
	var req requirement.CreateRequirementRequest
	if err := c.BodyParser(&req); err != nil {
		return requirement.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.CreateRequirement(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetRequirementByID retrieves a requirement by ID
// GET /api/requirements/:id
func (h *Handlers) GetRequirementByID(c *fiber.Ctx) error {
	requirementID := kernel.RequirementID(c.Params("id"))
	if requirementID.IsEmpty() {
		return requirement.ErrRequirementNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetRequirementByID(c.Context(), requirementID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListRequirements retrieves requirements with filters, sorting and pagination
// GET /api/requirements?status=OPEN&position=Captain&sort=date_needed&order=desc&page=1&page_size=20
func (h *Handlers) ListRequirements(c *fiber.Ctx) error {
	req := requirement.ListRequirementsRequest{
		Status:     c.Query("status"),
		Position:   c.Query("position"),
		Sort:       parseSort(c),
		Pagination: parsePaginationOptions(c),
	}

	resp, err := h.service.ListRequirements(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListPositions returns the distinct positions across all requirements
// GET /api/requirements/positions
func (h *Handlers) ListPositions(c *fiber.Ctx) error {
	positions, err := h.service.ListPositions(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"positions": positions,
	})
}

// UpdateRequirement applies a partial update to a requirement
// PUT /api/requirements/:id
func (h *Handlers) UpdateRequirement(c *fiber.Ctx) error {
	requirementID := kernel.RequirementID(c.Params("id"))
	if requirementID.IsEmpty() {
		return requirement.ErrRequirementNotFound().WithDetail("id", "missing or empty")
	}

	var req requirement.UpdateRequirementRequest
	if err := c.BodyParser(&req); err != nil {
		return requirement.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.UpdateRequirement(c.Context(), requirementID, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DeleteRequirement deletes a requirement without linked candidates
// DELETE /api/requirements/:id
func (h *Handlers) DeleteRequirement(c *fiber.Ctx) error {
	requirementID := kernel.RequirementID(c.Params("id"))
	if requirementID.IsEmpty() {
		return requirement.ErrRequirementNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteRequirement(c.Context(), requirementID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// ============================================================================
// Helper Functions
// ============================================================================

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()
}

// parseSort extracts the sort key and order from query parameters
func parseSort(c *fiber.Ctx) kernel.Sort {
	return kernel.Sort{
		Key:   c.Query("sort"),
		Order: kernel.SortOrder(c.Query("order")),
	}.Normalize(requirement.SortKeys, requirement.DefaultSortKey)
}

// RegisterRoutes registers all requirement routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/requirements")

	// Read routes
	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeRequirementsRead),
		handlers.ListRequirements,
	)

	api.Get("/positions",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeRequirementsRead),
		handlers.ListPositions,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeRequirementsRead),
		handlers.GetRequirementByID,
	)

	// Write routes
	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeRequirementsWrite),
		handlers.CreateRequirement,
	)

	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeRequirementsWrite),
		handlers.UpdateRequirement,
	)

	// Delete routes
	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeRequirementsDelete),
		handlers.DeleteRequirement,
	)
}
