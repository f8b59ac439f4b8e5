package documentapi

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/seaforth/crewdesk/crewing/document"
	"github.com/seaforth/crewdesk/crewing/document/documentsrv"
	"github.com/seaforth/crewdesk/crewing/requirement/requirementsrv"
	"github.com/seaforth/crewdesk/pkg/iam/auth"
	"github.com/seaforth/crewdesk/pkg/kernel"
)

// Handlers provides HTTP handlers for CV document operations
type Handlers struct {
	service        *documentsrv.Service
	requirementSrv *requirementsrv.RequirementService
}

// NewHandlers creates a new document handlers instance
func NewHandlers(service *documentsrv.Service, requirementSrv *requirementsrv.RequirementService) *Handlers {
	return &Handlers{
		service:        service,
		requirementSrv: requirementSrv,
	}
}

// UploadCV accepts a multipart CV upload and queues it for parsing
// POST /api/candidates/:id/documents
func (h *Handlers) UploadCV(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return document.ErrFileMissing().WithDetail("candidate_id", "missing or empty")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return document.ErrFileMissing().WithDetail("parse_error", err.Error())
	}

	if fileHeader.Size > documentsrv.MaxUploadBytes {
		return document.ErrFileTooLarge().
			WithDetail("size_bytes", fileHeader.Size).
			WithDetail("max_bytes", documentsrv.MaxUploadBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return document.ErrUploadFailed().WithDetail("error", err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return document.ErrUploadFailed().WithDetail("error", err.Error())
	}

	job, err := h.service.UploadCV(c.Context(), candidateID, fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(job)
}

// ListCandidateDocuments lists the CV documents of a candidate
// GET /api/candidates/:id/documents
func (h *Handlers) ListCandidateDocuments(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return document.ErrDocumentNotFound().WithDetail("candidate_id", "missing or empty")
	}

	docs, err := h.service.ListDocumentsByCandidate(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"candidate_id": candidateID,
		"documents":    docs,
	})
}

// GetDocumentByID retrieves a CV document by ID
// GET /api/documents/:id
func (h *Handlers) GetDocumentByID(c *fiber.Ctx) error {
	documentID := kernel.DocumentID(c.Params("id"))
	if documentID.IsEmpty() {
		return document.ErrDocumentNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetDocumentByID(c.Context(), documentID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DeleteDocument removes a CV document and its stored file
// DELETE /api/documents/:id
func (h *Handlers) DeleteDocument(c *fiber.Ctx) error {
	documentID := kernel.DocumentID(c.Params("id"))
	if documentID.IsEmpty() {
		return document.ErrDocumentNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteDocument(c.Context(), documentID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// GetJobStatus reports the progress of a CV processing job
// GET /api/documents/jobs/:jobId
func (h *Handlers) GetJobStatus(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return document.ErrJobNotFound().WithDetail("job_id", "missing or empty")
	}

	status, err := h.service.GetJobStatus(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(status)
}

// MatchCandidates ranks stored CVs against a requirement by embedding
// similarity. An explicit description in the body overrides the default
// derived from the requirement.
// POST /api/requirements/:id/matches
func (h *Handlers) MatchCandidates(c *fiber.Ctx) error {
	requirementID := kernel.RequirementID(c.Params("id"))
	if requirementID.IsEmpty() {
		return document.ErrMatchFailed().WithDetail("requirement_id", "missing or empty")
	}

	var req document.MatchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return document.ErrMatchFailed().WithDetail("parse_error", err.Error())
		}
	}

	requirementResp, err := h.requirementSrv.GetRequirementByID(c.Context(), requirementID)
	if err != nil {
		return err
	}

	if req.Description == "" {
		req.Description = fmt.Sprintf("%s for %s", requirementResp.Position, requirementResp.Client)
	}

	matches, err := h.service.MatchCandidates(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"requirement_id": requirementID,
		"description":    req.Description,
		"matches":        matches,
	})
}

// RegisterRoutes registers all document routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	candidates := app.Group("/api/candidates")

	candidates.Post("/:id/documents",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeDocumentsWrite),
		handlers.UploadCV,
	)

	candidates.Get("/:id/documents",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeDocumentsRead),
		handlers.ListCandidateDocuments,
	)

	documents := app.Group("/api/documents")

	documents.Get("/jobs/:jobId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeDocumentsRead),
		handlers.GetJobStatus,
	)

	documents.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeDocumentsRead),
		handlers.GetDocumentByID,
	)

	documents.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeDocumentsWrite),
		handlers.DeleteDocument,
	)

	requirements := app.Group("/api/requirements")

	requirements.Post("/:id/matches",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeDocumentsRead),
		handlers.MatchCandidates,
	)
}
