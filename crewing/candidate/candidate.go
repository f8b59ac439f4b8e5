package candidate

import (
	"strings"
	"time"

	"slices"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

// CandidateStatus represents a candidate's place in the approval workflow
type CandidateStatus string

const (
	CandidateStatusDraft             CandidateStatus = "DRAFT"               // Created, not yet submitted
	CandidateStatusPendingLead       CandidateStatus = "PENDING_LEAD"        // Awaiting Lead of Selection
	CandidateStatusRejectedByLead    CandidateStatus = "REJECTED_BY_LEAD"    // Rejected at the lead stage
	CandidateStatusPendingManager    CandidateStatus = "PENDING_MANAGER"     // Awaiting Crew Manager
	CandidateStatusRejectedByManager CandidateStatus = "REJECTED_BY_MANAGER" // Rejected at the manager stage
	CandidateStatusReadyForClient    CandidateStatus = "READY_FOR_CLIENT"    // Approved, ready for client submission
	CandidateStatusPlaced            CandidateStatus = "PLACED"              // Placed with the client
)

// AllStatuses lists every workflow status, in workflow order.
var AllStatuses = []CandidateStatus{
	CandidateStatusDraft,
	CandidateStatusPendingLead,
	CandidateStatusRejectedByLead,
	CandidateStatusPendingManager,
	CandidateStatusRejectedByManager,
	CandidateStatusReadyForClient,
	CandidateStatusPlaced,
}

// HistoryEntry records one workflow transition in the audit log.
type HistoryEntry struct {
	Status CandidateStatus     `json:"status"`
	By     kernel.HistoryActor `json:"by"`
	Note   string              `json:"note"`
	At     time.Time           `json:"at"`
}

type Candidate struct {
	ID            kernel.CandidateID    `db:"id" json:"id"`
	Name          kernel.CandidateName  `db:"name" json:"name"`
	Position      kernel.Position       `db:"position" json:"position"`
	Experience    kernel.Experience     `db:"experience" json:"experience"`
	RequirementID *kernel.RequirementID `db:"requirement_id" json:"requirement_id,omitempty"`
	Status        CandidateStatus       `db:"status" json:"status"`
	History       []HistoryEntry        `db:"history" json:"history"`
	Version       int                   `db:"version" json:"version"`
	CreatedAt     time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time             `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Workflow State Machine
// ============================================================================

// validTransitions enumerates the allowed status moves. Every mutation of
// Status goes through transition() so the history log can never drift
// from the status column.
var validTransitions = map[CandidateStatus][]CandidateStatus{
	CandidateStatusDraft:             {CandidateStatusPendingLead},
	CandidateStatusRejectedByLead:    {CandidateStatusPendingLead},
	CandidateStatusRejectedByManager: {CandidateStatusPendingLead},
	CandidateStatusPendingLead:       {CandidateStatusPendingManager, CandidateStatusRejectedByLead},
	CandidateStatusPendingManager:    {CandidateStatusReadyForClient, CandidateStatusRejectedByManager},
	CandidateStatusReadyForClient:    {CandidateStatusPlaced},
}

// CanTransitionTo checks whether a status move is permitted from the
// current state.
func (c *Candidate) CanTransitionTo(newStatus CandidateStatus) bool {
	allowed, ok := validTransitions[c.Status]
	if !ok {
		return false // Terminal state
	}
	return slices.Contains(allowed, newStatus)
}

// transition applies a status change and appends its history entry as one
// logical unit.
func (c *Candidate) transition(newStatus CandidateStatus, by kernel.HistoryActor, note string) error {
	if !c.CanTransitionTo(newStatus) {
		return ErrInvalidTransition().
			WithDetail("current_status", c.Status).
			WithDetail("new_status", newStatus)
	}

	now := time.Now()
	c.Status = newStatus
	c.History = append(c.History, HistoryEntry{
		Status: newStatus,
		By:     by,
		Note:   note,
		At:     now,
	})
	c.UpdatedAt = now
	return nil
}

// CanRequestApproval checks if the candidate may be submitted to the Lead
// of Selection: only drafts and rejected candidates are eligible.
func (c *Candidate) CanRequestApproval() bool {
	return c.Status == CandidateStatusDraft ||
		c.Status == CandidateStatusRejectedByLead ||
		c.Status == CandidateStatusRejectedByManager
}

// RequestApproval submits the candidate for lead approval.
func (c *Candidate) RequestApproval() error {
	if !c.CanRequestApproval() {
		return ErrNotEligibleForApproval().WithDetail("current_status", c.Status)
	}
	return c.transition(CandidateStatusPendingLead, kernel.ActorSelectionTeam, "Submitted for approval.")
}

// ApproveByLead advances the candidate to the Crew Manager stage.
func (c *Candidate) ApproveByLead(note string) error {
	if note == "" {
		note = "Approved"
	}
	return c.transition(CandidateStatusPendingManager, kernel.ActorLeadOfSelection, note)
}

// RejectByLead rejects the candidate at the lead stage. A non-empty
// reason is mandatory.
func (c *Candidate) RejectByLead(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrRejectionReasonRequired()
	}
	return c.transition(CandidateStatusRejectedByLead, kernel.ActorLeadOfSelection, reason)
}

// ApproveByManager marks the candidate ready for client submission.
func (c *Candidate) ApproveByManager(note string) error {
	if note == "" {
		note = "Approved"
	}
	return c.transition(CandidateStatusReadyForClient, kernel.ActorCrewManager, note)
}

// RejectByManager rejects the candidate at the manager stage. A non-empty
// reason is mandatory.
func (c *Candidate) RejectByManager(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrRejectionReasonRequired()
	}
	return c.transition(CandidateStatusRejectedByManager, kernel.ActorCrewManager, reason)
}

// MarkPlaced records the placement. Only candidates that are ready for
// client submission can be placed.
func (c *Candidate) MarkPlaced() error {
	if c.Status != CandidateStatusReadyForClient {
		return ErrNotReadyForPlacement().WithDetail("current_status", c.Status)
	}
	return c.transition(CandidateStatusPlaced, kernel.ActorSystem, "Candidate placed.")
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsLinked checks if the candidate references a requirement.
func (c *Candidate) IsLinked() bool {
	return c.RequirementID != nil && !c.RequirementID.IsEmpty()
}

// IsPlaced checks if the candidate has been placed.
func (c *Candidate) IsPlaced() bool {
	return c.Status == CandidateStatusPlaced
}

// IsPending checks if the candidate awaits either approval stage.
func (c *Candidate) IsPending() bool {
	return c.Status == CandidateStatusPendingLead || c.Status == CandidateStatusPendingManager
}

// IsRejected checks if the candidate sits in either rejected state.
func (c *Candidate) IsRejected() bool {
	return c.Status == CandidateStatusRejectedByLead || c.Status == CandidateStatusRejectedByManager
}

// LastHistoryEntry returns the most recent transition, or nil for a
// fresh draft.
func (c *Candidate) LastHistoryEntry() *HistoryEntry {
	if len(c.History) == 0 {
		return nil
	}
	return &c.History[len(c.History)-1]
}
