package requirement

import (
	"time"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

// RequirementStatus represents the fill state of a crew requirement
type RequirementStatus string

const (
	RequirementStatusOpen   RequirementStatus = "OPEN"   // Still has unfilled slots
	RequirementStatusFilled RequirementStatus = "FILLED" // All requested slots filled
)

type Requirement struct {
	ID               kernel.RequirementID `db:"id" json:"id"`
	Client           kernel.ClientName    `db:"client" json:"client"`
	Position         kernel.Position      `db:"position" json:"position"`
	QuantityRequired int                  `db:"quantity_required" json:"quantity_required"`
	QuantityFilled   int                  `db:"quantity_filled" json:"quantity_filled"`
	DateNeeded       time.Time            `db:"date_needed" json:"date_needed"`
	Status           RequirementStatus    `db:"status" json:"status"`
	CreatedAt        time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time            `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsFilled checks if the requirement has reached its requested headcount
func (r *Requirement) IsFilled() bool {
	return r.QuantityFilled >= r.QuantityRequired
}

// IsOpen checks if the requirement still accepts placements
func (r *Requirement) IsOpen() bool {
	return r.Status == RequirementStatusOpen
}

// RemainingSlots returns how many placements are still needed
func (r *Requirement) RemainingSlots() int {
	remaining := r.QuantityRequired - r.QuantityFilled
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RecordPlacement counts one placed candidate against the requirement,
// flipping the status to FILLED when the last slot is taken. The filled
// count never exceeds the required count.
func (r *Requirement) RecordPlacement() error {
	if r.IsFilled() {
		return ErrRequirementAlreadyFilled().
			WithDetail("quantity_required", r.QuantityRequired).
			WithDetail("quantity_filled", r.QuantityFilled)
	}

	r.QuantityFilled++
	if r.IsFilled() {
		r.Status = RequirementStatusFilled
	}
	r.UpdatedAt = time.Now()
	return nil
}

// SyncStatus re-derives the status from the quantity invariant after a
// direct quantity edit: FILLED iff filled >= required.
func (r *Requirement) SyncStatus() {
	if r.IsFilled() {
		r.Status = RequirementStatusFilled
	} else {
		r.Status = RequirementStatusOpen
	}
	r.UpdatedAt = time.Now()
}

// IsActive checks if the requirement counts toward the active dashboard
// stat: open and still under-filled.
func (r *Requirement) IsActive() bool {
	return r.IsOpen() && !r.IsFilled()
}
