package candidate

import (
	"context"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, c *Candidate) error
	Update(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id kernel.CandidateID) (*Candidate, error)
	Delete(ctx context.Context, id kernel.CandidateID) error
	List(ctx context.Context, req ListCandidatesRequest) (kernel.Paginated[Candidate], error)
	ListByRequirement(ctx context.Context, requirementID kernel.RequirementID) ([]Candidate, error)

	// UpdateWorkflowState persists a status change and its history log
	// guarded by the version the transition was computed against. Returns
	// a stale version error when the row moved underneath the caller.
	UpdateWorkflowState(ctx context.Context, c *Candidate, expectedVersion int) error

	CountByStatus(ctx context.Context) (map[CandidateStatus]int, error)
	CountByRequirement(ctx context.Context, requirementID kernel.RequirementID) (int, error)
}
