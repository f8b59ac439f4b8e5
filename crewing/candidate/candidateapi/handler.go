package candidateapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/seaforth/crewdesk/crewing/candidate"
	"github.com/seaforth/crewdesk/crewing/candidate/candidatesrv"
	"github.com/seaforth/crewdesk/pkg/iam/auth"
	"github.com/seaforth/crewdesk/pkg/kernel"
)

// Handlers provides HTTP handlers for candidate operations
type Handlers struct {
	service *candidatesrv.CandidateService
}

// NewHandlers creates a new candidate handlers instance
func NewHandlers(service *candidatesrv.CandidateService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateCandidate creates a new candidate in DRAFT status
// POST /api/candidates
func (h *Handlers) CreateCandidate(c *fiber.Ctx) error {
	var req candidate.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest(err.Error())
	}

	resp, err := h.service.CreateCandidate(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetCandidateByID retrieves a candidate by ID
// GET /api/candidates/:id
func (h *Handlers) GetCandidateByID(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrNotFound("missing or empty")
	}

	resp, err := h.service.GetCandidateByID(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListCandidates retrieves candidates with filters, sorting and pagination
// GET /api/candidates?search=mar&status=PENDING_LEAD&requirement_id=...&sort=name&order=asc
func (h *Handlers) ListCandidates(c *fiber.Ctx) error {
	req := candidate.ListCandidatesRequest{
		Search:     c.Query("search"),
		Sort:       parseSort(c),
		Pagination: parsePaginationOptions(c),
	}

	if status := c.Query("status"); status != "" {
		s := candidate.CandidateStatus(status)
		req.Status = &s
	}

	if requirementID := c.Query("requirement_id"); requirementID != "" {
		id := kernel.RequirementID(requirementID)
		req.RequirementID = &id
	}

	resp, err := h.service.ListCandidates(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListCandidatesByRequirement retrieves candidates linked to a requirement
// GET /api/candidates/by-requirement/:requirementId
func (h *Handlers) ListCandidatesByRequirement(c *fiber.Ctx) error {
	requirementID := kernel.RequirementID(c.Params("requirementId"))
	if requirementID.IsEmpty() {
		return candidate.ErrInvalidRequest("requirement id missing or empty")
	}

	responses, err := h.service.ListCandidatesByRequirement(c.Context(), requirementID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"requirement_id": requirementID,
		"candidates":     responses,
	})
}

// UpdateCandidate applies a partial update to candidate profile fields
// PUT /api/candidates/:id
func (h *Handlers) UpdateCandidate(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrNotFound("missing or empty")
	}

	var req candidate.UpdateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest(err.Error())
	}

	resp, err := h.service.UpdateCandidate(c.Context(), candidateID, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DeleteCandidate deletes a candidate
// DELETE /api/candidates/:id
func (h *Handlers) DeleteCandidate(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrNotFound("missing or empty")
	}

	if err := h.service.DeleteCandidate(c.Context(), candidateID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// ============================================================================
// Workflow Handlers
// ============================================================================

// RequestApproval submits a candidate to the Lead of Selection
// POST /api/candidates/:id/request-approval
func (h *Handlers) RequestApproval(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrNotFound("missing or empty")
	}

	resp, err := h.service.RequestApproval(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Approve advances a candidate one approval stage. The lead stage moves
// it to the Crew Manager, the manager stage marks it ready for client.
// POST /api/candidates/:id/approve
func (h *Handlers) Approve(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrNotFound("missing or empty")
	}

	var req candidate.ApproveCandidateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return candidate.ErrInvalidRequest(err.Error())
		}
	}

	current, err := h.service.GetCandidateByID(c.Context(), candidateID)
	if err != nil {
		return err
	}

	var resp *candidate.CandidateResponse
	switch current.Status {
	case candidate.CandidateStatusPendingLead:
		resp, err = h.service.ApproveByLead(c.Context(), candidateID, req.Note)
	case candidate.CandidateStatusPendingManager:
		resp, err = h.service.ApproveByManager(c.Context(), candidateID, req.Note)
	default:
		return candidate.ErrInvalidTransition().WithDetail("current_status", current.Status)
	}
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Reject rejects a candidate at its current approval stage with a
// mandatory reason
// POST /api/candidates/:id/reject
func (h *Handlers) Reject(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrNotFound("missing or empty")
	}

	var req candidate.RejectCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest(err.Error())
	}

	current, err := h.service.GetCandidateByID(c.Context(), candidateID)
	if err != nil {
		return err
	}

	var resp *candidate.CandidateResponse
	switch current.Status {
	case candidate.CandidateStatusPendingLead:
		resp, err = h.service.RejectByLead(c.Context(), candidateID, req.Reason)
	case candidate.CandidateStatusPendingManager:
		resp, err = h.service.RejectByManager(c.Context(), candidateID, req.Reason)
	default:
		return candidate.ErrInvalidTransition().WithDetail("current_status", current.Status)
	}
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Place records a placement and reconciles the linked requirement
// POST /api/candidates/:id/place
func (h *Handlers) Place(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrNotFound("missing or empty")
	}

	resp, err := h.service.PlaceCandidate(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
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
	}.Normalize(candidate.SortKeys, candidate.DefaultSortKey)
}

// RegisterRoutes registers all candidate routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/candidates")

	// Read routes
	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.ListCandidates,
	)

	api.Get("/by-requirement/:requirementId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.ListCandidatesByRequirement,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.GetCandidateByID,
	)

	// Same listing surfaced from the requirement's side
	app.Get("/api/requirements/:requirementId/candidates",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.ListCandidatesByRequirement,
	)

	// Write routes
	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.CreateCandidate,
	)

	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.UpdateCandidate,
	)

	// Delete routes
	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesDelete),
		handlers.DeleteCandidate,
	)

	// Workflow routes
	api.Post("/:id/request-approval",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeWorkflowSubmit),
		handlers.RequestApproval,
	)

	api.Post("/:id/approve",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeWorkflowApprove),
		handlers.Approve,
	)

	api.Post("/:id/reject",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeWorkflowApprove),
		handlers.Reject,
	)

	api.Post("/:id/place",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeWorkflowPlace),
		handlers.Place,
	)
}
