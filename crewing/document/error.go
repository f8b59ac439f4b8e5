package document

import (
	"net/http"

	"github.com/seaforth/crewdesk/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("DOCUMENT")

// Error codes
var (
	CodeDocumentNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Document not found")
	CodeJobNotFound       = ErrRegistry.Register("JOB_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Processing job not found")
	CodeInvalidFileFormat = ErrRegistry.Register("INVALID_FILE_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Unsupported file format")
	CodeFileTooLarge      = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File exceeds the maximum allowed size")
	CodeFileMissing       = ErrRegistry.Register("FILE_MISSING", errx.TypeValidation, http.StatusBadRequest, "No file provided")
	CodeUploadFailed      = ErrRegistry.Register("UPLOAD_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to store file")
	CodeFileReadFailed    = ErrRegistry.Register("FILE_READ_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to read stored file")
	CodeParseFailed       = ErrRegistry.Register("PARSE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to parse CV")
	CodeEmbeddingFailed   = ErrRegistry.Register("EMBEDDING_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to generate embedding")
	CodeEnqueueFailed     = ErrRegistry.Register("ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue processing job")
	CodeJobFailed         = ErrRegistry.Register("JOB_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Processing job failed")
	CodeJobRetriesSpent   = ErrRegistry.Register("JOB_MAX_RETRIES", errx.TypeInternal, http.StatusInternalServerError, "Processing job failed permanently")
	CodeMatchFailed       = ErrRegistry.Register("MATCH_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Similarity search failed")
)

// Helper functions
func ErrDocumentNotFound() *errx.Error {
	return ErrRegistry.New(CodeDocumentNotFound)
}

func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrInvalidFileFormat() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileFormat)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrFileMissing() *errx.Error {
	return ErrRegistry.New(CodeFileMissing)
}

func ErrUploadFailed() *errx.Error {
	return ErrRegistry.New(CodeUploadFailed)
}

func ErrFileReadFailed() *errx.Error {
	return ErrRegistry.New(CodeFileReadFailed)
}

func ErrParseFailed() *errx.Error {
	return ErrRegistry.New(CodeParseFailed)
}

func ErrEmbeddingFailed() *errx.Error {
	return ErrRegistry.New(CodeEmbeddingFailed)
}

func ErrEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeEnqueueFailed)
}

func ErrJobFailed() *errx.Error {
	return ErrRegistry.New(CodeJobFailed)
}

func ErrJobMaxRetriesReached() *errx.Error {
	return ErrRegistry.New(CodeJobRetriesSpent)
}

func ErrMatchFailed() *errx.Error {
	return ErrRegistry.New(CodeMatchFailed)
}
