package requirement

import (
	"time"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

// CreateRequirementRequest - DTO for creating a new requirement
type CreateRequirementRequest struct {
	Client           kernel.ClientName `json:"client" validate:"required"`
	Position         kernel.Position   `json:"position" validate:"required"`
	QuantityRequired int               `json:"quantity_required" validate:"required,gt=0"`
	DateNeeded       time.Time         `json:"date_needed" validate:"required"`
}

// UpdateRequirementRequest - typed patch for updating a requirement.
// Only non-nil fields are applied; the column list is never built from
// request input.
type UpdateRequirementRequest struct {
	Client           *kernel.ClientName `json:"client,omitempty"`
	Position         *kernel.Position   `json:"position,omitempty"`
	QuantityRequired *int               `json:"quantity_required,omitempty"`
	QuantityFilled   *int               `json:"quantity_filled,omitempty"`
	DateNeeded       *time.Time         `json:"date_needed,omitempty"`
}

// ListRequirementsRequest - filters and ordering for the requirement list
type ListRequirementsRequest struct {
	Status     string                   `json:"status,omitempty"`   // exact match, empty = all
	Position   string                   `json:"position,omitempty"` // exact match, empty = all
	Sort       kernel.Sort              `json:"sort"`
	Pagination kernel.PaginationOptions `json:"pagination"`
}

// SortKeys lists the whitelisted sort keys for requirement listings.
var SortKeys = []string{"client", "position", "quantity_required", "quantity_filled", "date_needed", "status"}

// DefaultSortKey is applied when no valid sort key is requested.
const DefaultSortKey = "client"

// Response type alias for paginated requirements
type PaginatedRequirementsResponse = kernel.Paginated[RequirementResponse]

// RequirementResponse - DTO for returning requirement data
type RequirementResponse struct {
	ID               kernel.RequirementID `json:"id"`
	Client           kernel.ClientName    `json:"client"`
	Position         kernel.Position      `json:"position"`
	QuantityRequired int                  `json:"quantity_required"`
	QuantityFilled   int                  `json:"quantity_filled"`
	RemainingSlots   int                  `json:"remaining_slots"`
	DateNeeded       time.Time            `json:"date_needed"`
	Status           RequirementStatus    `json:"status"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// MatchCandidatesRequest - request for CV-similarity candidate matching
type MatchCandidatesRequest struct {
	Description string `json:"description,omitempty"` // defaults to the requirement position
	Limit       int    `json:"limit,omitempty"`
}
