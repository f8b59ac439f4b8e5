package candidate

import (
	"time"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

// ============================================================================
// Request DTOs
// ============================================================================

type CreateCandidateRequest struct {
	Name          kernel.CandidateName  `json:"name"`
	Position      kernel.Position       `json:"position"`
	Experience    kernel.Experience     `json:"experience"`
	RequirementID *kernel.RequirementID `json:"requirement_id,omitempty"`
}

// UpdateCandidateRequest is a partial update. Nil fields are left
// untouched. ClearRequirement unlinks the candidate when true, and takes
// precedence over RequirementID.
type UpdateCandidateRequest struct {
	Name             *kernel.CandidateName `json:"name,omitempty"`
	Position         *kernel.Position      `json:"position,omitempty"`
	Experience       *kernel.Experience    `json:"experience,omitempty"`
	RequirementID    *kernel.RequirementID `json:"requirement_id,omitempty"`
	ClearRequirement bool                  `json:"clear_requirement,omitempty"`
}

// IsEmpty checks if the update request carries no changes.
func (r *UpdateCandidateRequest) IsEmpty() bool {
	return r.Name == nil && r.Position == nil && r.Experience == nil &&
		r.RequirementID == nil && !r.ClearRequirement
}

type ApproveCandidateRequest struct {
	Note string `json:"note,omitempty"`
}

type RejectCandidateRequest struct {
	Reason string `json:"reason"`
}

type ListCandidatesRequest struct {
	Search        string                   `json:"search,omitempty"`
	Status        *CandidateStatus         `json:"status,omitempty"`
	RequirementID *kernel.RequirementID    `json:"requirement_id,omitempty"`
	Sort          kernel.Sort              `json:"sort"`
	Pagination    kernel.PaginationOptions `json:"pagination"`
}

// SortKeys whitelists the columns candidates can be ordered by.
var SortKeys = []string{"name", "position", "experience", "status"}

const DefaultSortKey = "name"

// ============================================================================
// Response DTOs
// ============================================================================

type CandidateResponse struct {
	ID            kernel.CandidateID    `json:"id"`
	Name          kernel.CandidateName  `json:"name"`
	Position      kernel.Position       `json:"position"`
	Experience    kernel.Experience     `json:"experience"`
	RequirementID *kernel.RequirementID `json:"requirement_id,omitempty"`
	Status        CandidateStatus       `json:"status"`
	History       []HistoryEntry        `json:"history"`
	Version       int                   `json:"version"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type PaginatedCandidatesResponse = kernel.Paginated[CandidateResponse]

// PlacementResponse reports a placement together with the state of the
// linked requirement after reconciliation, if any.
type PlacementResponse struct {
	Candidate           CandidateResponse `json:"candidate"`
	RequirementFilled   *int              `json:"requirement_filled,omitempty"`
	RequirementRequired *int              `json:"requirement_required,omitempty"`
	RequirementStatus   *string           `json:"requirement_status,omitempty"`
	ReconciliationNote  string            `json:"reconciliation_note,omitempty"`
}
