package candidate

import (
	"net/http"

	"github.com/seaforth/crewdesk/pkg/errx"
)

var candidateErrors = errx.NewRegistry("CANDIDATE")

// Error codes
var (
	ErrCandidateNotFound       = candidateErrors.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	ErrInvalidStatusTransition = candidateErrors.Register("INVALID_TRANSITION", errx.TypeBusiness, http.StatusConflict, "Invalid workflow transition")
	ErrApprovalNotEligible     = candidateErrors.Register("NOT_ELIGIBLE_FOR_APPROVAL", errx.TypeBusiness, http.StatusConflict, "Candidate cannot be submitted for approval in its current status")
	ErrPlacementNotReady       = candidateErrors.Register("NOT_READY_FOR_PLACEMENT", errx.TypeBusiness, http.StatusConflict, "Candidate must be ready for client before placement")
	ErrRejectionReasonMissing  = candidateErrors.Register("REJECTION_REASON_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Rejection requires a non-empty reason")
	ErrCandidateStale          = candidateErrors.Register("STALE_VERSION", errx.TypeConflict, http.StatusConflict, "Candidate was modified concurrently, retry the operation")
	ErrRequirementGone         = candidateErrors.Register("REQUIREMENT_NOT_FOUND", errx.TypeValidation, http.StatusBadRequest, "Linked requirement does not exist")
	ErrMissingRequiredField    = candidateErrors.Register("MISSING_REQUIRED_FIELD", errx.TypeValidation, http.StatusBadRequest, "Missing required field")
	ErrInvalidRequestFormat    = candidateErrors.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request format")
	ErrInvalidPagination       = candidateErrors.Register("INVALID_PAGINATION", errx.TypeValidation, http.StatusBadRequest, "Invalid pagination parameters")
	ErrInvalidStatusFilter     = candidateErrors.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid candidate status")
)

// Helper functions for creating specific errors
func ErrNotFound(candidateID string) *errx.Error {
	return candidateErrors.New(ErrCandidateNotFound).WithDetail("candidate_id", candidateID)
}

func ErrInvalidTransition() *errx.Error {
	return candidateErrors.New(ErrInvalidStatusTransition)
}

func ErrNotEligibleForApproval() *errx.Error {
	return candidateErrors.New(ErrApprovalNotEligible)
}

func ErrNotReadyForPlacement() *errx.Error {
	return candidateErrors.New(ErrPlacementNotReady)
}

func ErrRejectionReasonRequired() *errx.Error {
	return candidateErrors.New(ErrRejectionReasonMissing)
}

func ErrStaleVersion(candidateID string) *errx.Error {
	return candidateErrors.New(ErrCandidateStale).WithDetail("candidate_id", candidateID)
}

func ErrLinkedRequirementNotFound(requirementID string) *errx.Error {
	return candidateErrors.New(ErrRequirementGone).WithDetail("requirement_id", requirementID)
}

func ErrMissingField(field string) *errx.Error {
	return candidateErrors.New(ErrMissingRequiredField).WithDetail("field", field)
}

func ErrInvalidRequest(message string) *errx.Error {
	return candidateErrors.New(ErrInvalidRequestFormat).WithDetail("message", message)
}

func ErrBadPagination(message string) *errx.Error {
	return candidateErrors.New(ErrInvalidPagination).WithDetail("message", message)
}

func ErrUnknownStatus(status string) *errx.Error {
	return candidateErrors.New(ErrInvalidStatusFilter).WithDetail("status", status)
}
