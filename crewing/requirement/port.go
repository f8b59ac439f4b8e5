package requirement

import (
	"context"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

type Repository interface {
	// Create creates a new requirement
	Create(ctx context.Context, requirement *Requirement) error

	// Update updates an existing requirement
	Update(ctx context.Context, id kernel.RequirementID, requirement *Requirement) error

	// GetByID retrieves a requirement by ID
	GetByID(ctx context.Context, id kernel.RequirementID) (*Requirement, error)

	// Delete deletes a requirement by ID
	Delete(ctx context.Context, id kernel.RequirementID) error

	// List retrieves requirements matching the filters with pagination
	List(ctx context.Context, req ListRequirementsRequest) (*kernel.Paginated[Requirement], error)

	// ListPositions returns the distinct positions present, for filter
	// dropdown population
	ListPositions(ctx context.Context) ([]kernel.Position, error)

	// Exists checks if a requirement exists by ID
	Exists(ctx context.Context, id kernel.RequirementID) (bool, error)

	// RecordPlacement atomically increments quantity_filled and flips the
	// status to FILLED when the last slot is taken. Returns
	// ErrRequirementAlreadyFilled when no unfilled slot remains; the
	// increment and the status flip happen in a single statement so
	// concurrent placements can never lose an update.
	RecordPlacement(ctx context.Context, id kernel.RequirementID) (*Requirement, error)

	// CountLinkedCandidates counts candidates referencing the requirement
	CountLinkedCandidates(ctx context.Context, id kernel.RequirementID) (int64, error)

	// CountActive counts requirements that are open and under-filled
	CountActive(ctx context.Context) (int64, error)
}
