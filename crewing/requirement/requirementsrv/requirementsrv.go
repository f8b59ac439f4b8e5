package requirementsrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/seaforth/crewdesk/crewing/requirement"
	"github.com/seaforth/crewdesk/pkg/errx"
	"github.com/seaforth/crewdesk/pkg/kernel"
)

// RequirementService provides business operations for crew requirements
type RequirementService struct {
	requirementRepo requirement.Repository
}

// NewRequirementService creates a new instance of the requirement service
func NewRequirementService(requirementRepo requirement.Repository) *RequirementService {
	return &RequirementService{
		requirementRepo: requirementRepo,
	}
}

// CreateRequirement creates a new crew requirement
func (s *RequirementService) CreateRequirement(ctx context.Context, req requirement.CreateRequirementRequest) (*requirement.RequirementResponse, error) {
	if req.Client == "" {
		return nil, requirement.ErrMissingRequiredField().WithDetail("field", "client")
	}
	if req.Position == "" {
		return nil, requirement.ErrMissingRequiredField().WithDetail("field", "position")
	}
	if !kernel.Quantity(req.QuantityRequired).IsPositive() {
		return nil, requirement.ErrInvalidQuantity().WithDetail("quantity_required", req.QuantityRequired)
	}
	if req.DateNeeded.IsZero() {
		return nil, requirement.ErrMissingRequiredField().WithDetail("field", "date_needed")
	}

	now := time.Now()
	newRequirement := &requirement.Requirement{
		ID:               kernel.NewRequirementID(uuid.NewString()),
		Client:           req.Client,
		Position:         req.Position,
		QuantityRequired: req.QuantityRequired,
		QuantityFilled:   0,
		DateNeeded:       req.DateNeeded,
		Status:           requirement.RequirementStatusOpen,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.requirementRepo.Create(ctx, newRequirement); err != nil {
		return nil, errx.Wrap(err, "failed to create requirement", errx.TypeInternal)
	}

	resp := s.toRequirementResponse(newRequirement)
	return &resp, nil
}

// GetRequirementByID retrieves a requirement by ID
func (s *RequirementService) GetRequirementByID(ctx context.Context, requirementID kernel.RequirementID) (*requirement.RequirementResponse, error) {
	entity, err := s.requirementRepo.GetByID(ctx, requirementID)
	if err != nil {
		return nil, requirement.ErrRequirementNotFound().WithDetail("requirement_id", requirementID.String())
	}

	resp := s.toRequirementResponse(entity)
	return &resp, nil
}

// ListRequirements retrieves requirements matching the given filters
func (s *RequirementService) ListRequirements(ctx context.Context, req requirement.ListRequirementsRequest) (*requirement.PaginatedRequirementsResponse, error) {
	if req.Status != "" &&
		req.Status != string(requirement.RequirementStatusOpen) &&
		req.Status != string(requirement.RequirementStatusFilled) {
		return nil, requirement.ErrInvalidStatus().WithDetail("status", req.Status)
	}

	req.Sort = req.Sort.Normalize(requirement.SortKeys, requirement.DefaultSortKey)
	req.Pagination = req.Pagination.Normalize()

	requirements, err := s.requirementRepo.List(ctx, req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list requirements", errx.TypeInternal)
	}

	responses := make([]requirement.RequirementResponse, 0, len(requirements.Items))
	for _, r := range requirements.Items {
		responses = append(responses, s.toRequirementResponse(&r))
	}

	return &kernel.Paginated[requirement.RequirementResponse]{
		Items: responses,
		Page:  requirements.Page,
		Empty: requirements.Empty,
	}, nil
}

// ListPositions returns the distinct positions across all requirements
func (s *RequirementService) ListPositions(ctx context.Context) ([]kernel.Position, error) {
	positions, err := s.requirementRepo.ListPositions(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list positions", errx.TypeInternal)
	}
	return positions, nil
}

// UpdateRequirement applies a partial update to an existing requirement.
// The status is re-derived from the quantities after the patch, never
// taken from the request.
func (s *RequirementService) UpdateRequirement(ctx context.Context, requirementID kernel.RequirementID, req requirement.UpdateRequirementRequest) (*requirement.RequirementResponse, error) {
	entity, err := s.requirementRepo.GetByID(ctx, requirementID)
	if err != nil {
		return nil, requirement.ErrRequirementNotFound().WithDetail("requirement_id", requirementID.String())
	}

	updated := false

	if req.Client != nil && *req.Client != entity.Client {
		if *req.Client == "" {
			return nil, requirement.ErrMissingRequiredField().WithDetail("field", "client")
		}
		entity.Client = *req.Client
		updated = true
	}

	if req.Position != nil && *req.Position != entity.Position {
		if *req.Position == "" {
			return nil, requirement.ErrMissingRequiredField().WithDetail("field", "position")
		}
		entity.Position = *req.Position
		updated = true
	}

	if req.QuantityRequired != nil && *req.QuantityRequired != entity.QuantityRequired {
		if !kernel.Quantity(*req.QuantityRequired).IsPositive() {
			return nil, requirement.ErrInvalidQuantity().WithDetail("quantity_required", *req.QuantityRequired)
		}
		entity.QuantityRequired = *req.QuantityRequired
		updated = true
	}

	if req.QuantityFilled != nil && *req.QuantityFilled != entity.QuantityFilled {
		if *req.QuantityFilled < 0 {
			return nil, requirement.ErrInvalidQuantity().WithDetail("quantity_filled", *req.QuantityFilled)
		}
		entity.QuantityFilled = *req.QuantityFilled
		updated = true
	}

	if req.DateNeeded != nil && !req.DateNeeded.Equal(entity.DateNeeded) {
		entity.DateNeeded = *req.DateNeeded
		updated = true
	}

	if updated {
		entity.SyncStatus()

		if err := s.requirementRepo.Update(ctx, requirementID, entity); err != nil {
			return nil, errx.Wrap(err, "failed to update requirement", errx.TypeInternal)
		}
	}

	resp := s.toRequirementResponse(entity)
	return &resp, nil
}

// DeleteRequirement deletes a requirement. Requirements with linked
// candidates cannot be deleted, the candidates must be unlinked or
// removed first.
func (s *RequirementService) DeleteRequirement(ctx context.Context, requirementID kernel.RequirementID) error {
	exists, err := s.requirementRepo.Exists(ctx, requirementID)
	if err != nil {
		return errx.Wrap(err, "failed to check requirement existence", errx.TypeInternal)
	}
	if !exists {
		return requirement.ErrRequirementNotFound().WithDetail("requirement_id", requirementID.String())
	}

	linkedCount, err := s.requirementRepo.CountLinkedCandidates(ctx, requirementID)
	if err != nil {
		return errx.Wrap(err, "failed to count linked candidates", errx.TypeInternal)
	}
	if linkedCount > 0 {
		return requirement.ErrHasLinkedCandidates().
			WithDetail("requirement_id", requirementID.String()).
			WithDetail("linked_candidates", linkedCount)
	}

	if err := s.requirementRepo.Delete(ctx, requirementID); err != nil {
		return errx.Wrap(err, "failed to delete requirement", errx.TypeInternal)
	}

	return nil
}

// RecordPlacement counts one placement against the requirement and
// returns its state after the increment
func (s *RequirementService) RecordPlacement(ctx context.Context, requirementID kernel.RequirementID) (*requirement.RequirementResponse, error) {
	entity, err := s.requirementRepo.RecordPlacement(ctx, requirementID)
	if err != nil {
		return nil, err
	}

	resp := s.toRequirementResponse(entity)
	return &resp, nil
}

// ============================================================================
// Helper Methods
// ============================================================================

// toRequirementResponse converts a Requirement entity to its response DTO
func (s *RequirementService) toRequirementResponse(r *requirement.Requirement) requirement.RequirementResponse {
	return requirement.RequirementResponse{
		ID:               r.ID,
		Client:           r.Client,
		Position:         r.Position,
		QuantityRequired: r.QuantityRequired,
		QuantityFilled:   r.QuantityFilled,
		RemainingSlots:   r.RemainingSlots(),
		DateNeeded:       r.DateNeeded,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
