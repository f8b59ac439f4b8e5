package requirement

import (
	"net/http"

	"github.com/seaforth/crewdesk/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("REQUIREMENT")

// Error codes
var (
	CodeRequirementNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Requirement not found")
	CodeRequirementAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Requirement already exists")
	CodeRequirementFilled        = ErrRegistry.Register("ALREADY_FILLED", errx.TypeConflict, http.StatusConflict, "Requirement has no unfilled slots")
	CodeHasLinkedCandidates      = ErrRegistry.Register("HAS_LINKED_CANDIDATES", errx.TypeBusiness, http.StatusConflict, "Cannot delete requirement with linked candidates")
	CodeInvalidQuantity          = ErrRegistry.Register("INVALID_QUANTITY", errx.TypeValidation, http.StatusBadRequest, "Quantity required must be positive")
	CodeMissingRequiredField     = ErrRegistry.Register("MISSING_REQUIRED_FIELD", errx.TypeValidation, http.StatusBadRequest, "Missing required field")
	CodeInvalidStatus            = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid requirement status")
	CodeInvalidRequest           = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeInvalidPagination        = ErrRegistry.Register("INVALID_PAGINATION", errx.TypeValidation, http.StatusBadRequest, "Invalid pagination parameters")
)

// Helper functions
func ErrRequirementNotFound() *errx.Error {
	return ErrRegistry.New(CodeRequirementNotFound)
}

func ErrRequirementAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeRequirementAlreadyExists)
}

func ErrRequirementAlreadyFilled() *errx.Error {
	return ErrRegistry.New(CodeRequirementFilled)
}

func ErrHasLinkedCandidates() *errx.Error {
	return ErrRegistry.New(CodeHasLinkedCandidates)
}

func ErrInvalidQuantity() *errx.Error {
	return ErrRegistry.New(CodeInvalidQuantity)
}

func ErrMissingRequiredField() *errx.Error {
	return ErrRegistry.New(CodeMissingRequiredField)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrInvalidPagination() *errx.Error {
	return ErrRegistry.New(CodeInvalidPagination)
}
