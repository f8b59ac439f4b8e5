package document

import (
	"time"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

// CVDocument is an uploaded CV with its AI-extracted summary and
// embedding vector.
type CVDocument struct {
	ID          kernel.DocumentID  `db:"id" json:"id"`
	CandidateID kernel.CandidateID `db:"candidate_id" json:"candidate_id"`
	FileName    string             `db:"file_name" json:"file_name"`
	FileType    string             `db:"file_type" json:"file_type"`
	BucketURL   kernel.BucketURL   `db:"bucket_url" json:"bucket_url"`
	Summary     kernel.CVSummary   `db:"summary" json:"summary,omitempty"`
	Embedding   kernel.CVEmbedding `db:"embedding" json:"-"`
	CreatedAt   time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updated_at"`
}

// IsParsed checks if the AI extraction has produced a summary
func (d *CVDocument) IsParsed() bool {
	return d.Summary != ""
}

// HasEmbedding checks if the document carries an embedding vector
func (d *CVDocument) HasEmbedding() bool {
	return len(d.Embedding) > 0
}
