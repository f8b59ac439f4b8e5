package candidatesrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/seaforth/crewdesk/crewing/candidate"
	"github.com/seaforth/crewdesk/crewing/requirement"
	"github.com/seaforth/crewdesk/pkg/errx"
	"github.com/seaforth/crewdesk/pkg/kernel"
	"github.com/seaforth/crewdesk/pkg/logx"
)

// CandidateService provides business operations for candidates and their
// approval workflow
type CandidateService struct {
	candidateRepo   candidate.Repository
	requirementRepo requirement.Repository
}

// NewCandidateService creates a new instance of the candidate service
func NewCandidateService(
	candidateRepo candidate.Repository,
	requirementRepo requirement.Repository,
) *CandidateService {
	return &CandidateService{
		candidateRepo:   candidateRepo,
		requirementRepo: requirementRepo,
	}
}

// CreateCandidate creates a new candidate in DRAFT status
func (s *CandidateService) CreateCandidate(ctx context.Context, req candidate.CreateCandidateRequest) (*candidate.CandidateResponse, error) {
	if req.Name == "" {
		return nil, candidate.ErrMissingField("name")
	}
	if req.Position == "" {
		return nil, candidate.ErrMissingField("position")
	}

	if req.RequirementID != nil && !req.RequirementID.IsEmpty() {
		exists, err := s.requirementRepo.Exists(ctx, *req.RequirementID)
		if err != nil {
			return nil, errx.Wrap(err, "failed to check linked requirement", errx.TypeInternal)
		}
		if !exists {
			return nil, candidate.ErrLinkedRequirementNotFound(req.RequirementID.String())
		}
	}

	now := time.Now()
	newCandidate := &candidate.Candidate{
		ID:            kernel.NewCandidateID(uuid.NewString()),
		Name:          req.Name,
		Position:      req.Position,
		Experience:    req.Experience,
		RequirementID: req.RequirementID,
		Status:        candidate.CandidateStatusDraft,
		History:       []candidate.HistoryEntry{},
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.candidateRepo.Create(ctx, newCandidate); err != nil {
		return nil, errx.Wrap(err, "failed to create candidate", errx.TypeInternal)
	}

	resp := s.toCandidateResponse(newCandidate)
	return &resp, nil
}

// GetCandidateByID retrieves a candidate by ID
func (s *CandidateService) GetCandidateByID(ctx context.Context, candidateID kernel.CandidateID) (*candidate.CandidateResponse, error) {
	entity, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, candidate.ErrNotFound(candidateID.String())
	}

	resp := s.toCandidateResponse(entity)
	return &resp, nil
}

// ListCandidates retrieves candidates matching the given filters
func (s *CandidateService) ListCandidates(ctx context.Context, req candidate.ListCandidatesRequest) (*candidate.PaginatedCandidatesResponse, error) {
	if req.Status != nil && !isKnownStatus(*req.Status) {
		return nil, candidate.ErrUnknownStatus(string(*req.Status))
	}

	req.Search = kernel.NormalizeSearch(req.Search)
	req.Sort = req.Sort.Normalize(candidate.SortKeys, candidate.DefaultSortKey)
	req.Pagination = req.Pagination.Normalize()

	candidates, err := s.candidateRepo.List(ctx, req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list candidates", errx.TypeInternal)
	}

	responses := make([]candidate.CandidateResponse, 0, len(candidates.Items))
	for _, c := range candidates.Items {
		responses = append(responses, s.toCandidateResponse(&c))
	}

	return &kernel.Paginated[candidate.CandidateResponse]{
		Items: responses,
		Page:  candidates.Page,
		Empty: candidates.Empty,
	}, nil
}

// ListCandidatesByRequirement retrieves all candidates linked to a requirement
func (s *CandidateService) ListCandidatesByRequirement(ctx context.Context, requirementID kernel.RequirementID) ([]candidate.CandidateResponse, error) {
	candidates, err := s.candidateRepo.ListByRequirement(ctx, requirementID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list candidates by requirement", errx.TypeInternal)
	}

	responses := make([]candidate.CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		responses = append(responses, s.toCandidateResponse(&c))
	}

	return responses, nil
}

// UpdateCandidate applies a partial update to candidate profile fields.
// Workflow status is never updated through this path.
func (s *CandidateService) UpdateCandidate(ctx context.Context, candidateID kernel.CandidateID, req candidate.UpdateCandidateRequest) (*candidate.CandidateResponse, error) {
	entity, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, candidate.ErrNotFound(candidateID.String())
	}

	updated := false

	if req.Name != nil && *req.Name != entity.Name {
		if *req.Name == "" {
			return nil, candidate.ErrMissingField("name")
		}
		entity.Name = *req.Name
		updated = true
	}

	if req.Position != nil && *req.Position != entity.Position {
		if *req.Position == "" {
			return nil, candidate.ErrMissingField("position")
		}
		entity.Position = *req.Position
		updated = true
	}

	if req.Experience != nil && *req.Experience != entity.Experience {
		entity.Experience = *req.Experience
		updated = true
	}

	if req.ClearRequirement {
		if entity.RequirementID != nil {
			entity.RequirementID = nil
			updated = true
		}
	} else if req.RequirementID != nil && !req.RequirementID.IsEmpty() {
		exists, err := s.requirementRepo.Exists(ctx, *req.RequirementID)
		if err != nil {
			return nil, errx.Wrap(err, "failed to check linked requirement", errx.TypeInternal)
		}
		if !exists {
			return nil, candidate.ErrLinkedRequirementNotFound(req.RequirementID.String())
		}
		entity.RequirementID = req.RequirementID
		updated = true
	}

	if updated {
		entity.UpdatedAt = time.Now()

		if err := s.candidateRepo.Update(ctx, entity); err != nil {
			return nil, errx.Wrap(err, "failed to update candidate", errx.TypeInternal)
		}
	}

	resp := s.toCandidateResponse(entity)
	return &resp, nil
}

// DeleteCandidate deletes a candidate
func (s *CandidateService) DeleteCandidate(ctx context.Context, candidateID kernel.CandidateID) error {
	if err := s.candidateRepo.Delete(ctx, candidateID); err != nil {
		return err
	}
	return nil
}

// ============================================================================
// Workflow Operations
// ============================================================================

// RequestApproval submits a candidate to the Lead of Selection
func (s *CandidateService) RequestApproval(ctx context.Context, candidateID kernel.CandidateID) (*candidate.CandidateResponse, error) {
	return s.applyTransition(ctx, candidateID, func(c *candidate.Candidate) error {
		return c.RequestApproval()
	})
}

// ApproveByLead advances a candidate from the lead stage to the Crew Manager
func (s *CandidateService) ApproveByLead(ctx context.Context, candidateID kernel.CandidateID, note string) (*candidate.CandidateResponse, error) {
	return s.applyTransition(ctx, candidateID, func(c *candidate.Candidate) error {
		return c.ApproveByLead(note)
	})
}

// RejectByLead rejects a candidate at the lead stage with a mandatory reason
func (s *CandidateService) RejectByLead(ctx context.Context, candidateID kernel.CandidateID, reason string) (*candidate.CandidateResponse, error) {
	return s.applyTransition(ctx, candidateID, func(c *candidate.Candidate) error {
		return c.RejectByLead(reason)
	})
}

// ApproveByManager marks a candidate ready for client submission
func (s *CandidateService) ApproveByManager(ctx context.Context, candidateID kernel.CandidateID, note string) (*candidate.CandidateResponse, error) {
	return s.applyTransition(ctx, candidateID, func(c *candidate.Candidate) error {
		return c.ApproveByManager(note)
	})
}

// RejectByManager rejects a candidate at the manager stage with a mandatory reason
func (s *CandidateService) RejectByManager(ctx context.Context, candidateID kernel.CandidateID, reason string) (*candidate.CandidateResponse, error) {
	return s.applyTransition(ctx, candidateID, func(c *candidate.Candidate) error {
		return c.RejectByManager(reason)
	})
}

// PlaceCandidate records a placement and reconciles the linked requirement.
// The candidate transition commits first; if the requirement turns out to
// have no open slot the placement stands and the response carries a
// reconciliation note instead of rolling back the workflow.
func (s *CandidateService) PlaceCandidate(ctx context.Context, candidateID kernel.CandidateID) (*candidate.PlacementResponse, error) {
	entity, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, candidate.ErrNotFound(candidateID.String())
	}

	expectedVersion := entity.Version
	if err := entity.MarkPlaced(); err != nil {
		return nil, err
	}

	if err := s.candidateRepo.UpdateWorkflowState(ctx, entity, expectedVersion); err != nil {
		return nil, err
	}

	result := &candidate.PlacementResponse{
		Candidate: s.toCandidateResponse(entity),
	}

	if !entity.IsLinked() {
		return result, nil
	}

	reconciled, err := s.requirementRepo.RecordPlacement(ctx, *entity.RequirementID)
	if err != nil {
		var errxErr *errx.Error
		switch {
		case errx.As(err, &errxErr) && errxErr.IsType(errx.TypeConflict):
			logx.Warnf("placement recorded for candidate %s but requirement %s has no open slot",
				entity.ID.String(), entity.RequirementID.String())
			result.ReconciliationNote = "Requirement already filled, placement not counted against it."
			return result, nil
		case errx.As(err, &errxErr) && errxErr.IsType(errx.TypeNotFound):
			logx.Warnf("placement recorded for candidate %s but requirement %s no longer exists",
				entity.ID.String(), entity.RequirementID.String())
			result.ReconciliationNote = "Linked requirement no longer exists."
			return result, nil
		default:
			return nil, errx.Wrap(err, "failed to reconcile requirement after placement", errx.TypeInternal)
		}
	}

	filled := reconciled.QuantityFilled
	required := reconciled.QuantityRequired
	status := string(reconciled.Status)
	result.RequirementFilled = &filled
	result.RequirementRequired = &required
	result.RequirementStatus = &status

	return result, nil
}

// ============================================================================
// Dashboard Support
// ============================================================================

// CountByStatus returns candidate counts per workflow status, with every
// status present even when zero
func (s *CandidateService) CountByStatus(ctx context.Context) (map[candidate.CandidateStatus]int, error) {
	counts, err := s.candidateRepo.CountByStatus(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to count candidates by status", errx.TypeInternal)
	}

	for _, status := range candidate.AllStatuses {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}

	return counts, nil
}

// ============================================================================
// Helper Methods
// ============================================================================

// applyTransition loads the candidate, runs the domain transition, and
// persists it guarded by the version the transition was computed against
func (s *CandidateService) applyTransition(ctx context.Context, candidateID kernel.CandidateID, transition func(*candidate.Candidate) error) (*candidate.CandidateResponse, error) {
	entity, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, candidate.ErrNotFound(candidateID.String())
	}

	expectedVersion := entity.Version
	if err := transition(entity); err != nil {
		return nil, err
	}

	if err := s.candidateRepo.UpdateWorkflowState(ctx, entity, expectedVersion); err != nil {
		return nil, err
	}

	resp := s.toCandidateResponse(entity)
	return &resp, nil
}

func isKnownStatus(status candidate.CandidateStatus) bool {
	for _, s := range candidate.AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// toCandidateResponse converts a Candidate entity to its response DTO
func (s *CandidateService) toCandidateResponse(c *candidate.Candidate) candidate.CandidateResponse {
	return candidate.CandidateResponse{
		ID:            c.ID,
		Name:          c.Name,
		Position:      c.Position,
		Experience:    c.Experience,
		RequirementID: c.RequirementID,
		Status:        c.Status,
		History:       c.History,
		Version:       c.Version,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
