package document

import (
	"time"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

// ============================================================================
// Request DTOs
// ============================================================================

// ParseCVRequest carries an uploaded CV into the processing pipeline
type ParseCVRequest struct {
	CandidateID kernel.CandidateID `json:"candidate_id"`
	FilePath    string             `json:"file_path"`
	FileName    string             `json:"file_name"`
	FileType    string             `json:"file_type"`
}

// MatchRequest - vector similarity search against stored CV embeddings
type MatchRequest struct {
	Description string `json:"description"`
	Limit       int    `json:"limit,omitempty"`
}

// ============================================================================
// Response DTOs
// ============================================================================

type DocumentResponse struct {
	ID          kernel.DocumentID  `json:"id"`
	CandidateID kernel.CandidateID `json:"candidate_id"`
	FileName    string             `json:"file_name"`
	FileType    string             `json:"file_type"`
	BucketURL   kernel.BucketURL   `json:"bucket_url"`
	Summary     kernel.CVSummary   `json:"summary,omitempty"`
	Parsed      bool               `json:"parsed"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// MatchResult is one CV ranked by similarity to the search description
type MatchResult struct {
	DocumentID  kernel.DocumentID  `json:"document_id" db:"document_id"`
	CandidateID kernel.CandidateID `json:"candidate_id" db:"candidate_id"`
	FileName    string             `json:"file_name" db:"file_name"`
	Summary     kernel.CVSummary   `json:"summary" db:"summary"`
	Similarity  float64            `json:"similarity" db:"similarity"`
}

// ToDocumentResponse converts a CVDocument entity to its response DTO
func ToDocumentResponse(d *CVDocument) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		CandidateID: d.CandidateID,
		FileName:    d.FileName,
		FileType:    d.FileType,
		BucketURL:   d.BucketURL,
		Summary:     d.Summary,
		Parsed:      d.IsParsed(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
