package document

import (
	"context"
	"time"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

type Repository interface {
	// Create creates a new CV document
	Create(ctx context.Context, doc *CVDocument) error

	// GetByID retrieves a CV document by ID
	GetByID(ctx context.Context, id kernel.DocumentID) (*CVDocument, error)

	// ListByCandidate retrieves all CV documents for a candidate
	ListByCandidate(ctx context.Context, candidateID kernel.CandidateID) ([]CVDocument, error)

	// Delete deletes a CV document
	Delete(ctx context.Context, id kernel.DocumentID) error

	// Match performs cosine-similarity search of stored embeddings
	// against the query vector, best matches first
	Match(ctx context.Context, embedding kernel.CVEmbedding, limit int) ([]MatchResult, error)
}

type JobRepository interface {
	Create(ctx context.Context, job *ProcessingJob) error
	Update(ctx context.Context, job *ProcessingJob) error
	GetByID(ctx context.Context, jobID kernel.JobID) (*ProcessingJob, error)
	ListByCandidate(ctx context.Context, candidateID kernel.CandidateID, pagination kernel.PaginationOptions) (*kernel.Paginated[ProcessingJob], error)

	// Status helpers
	MarkAsProcessing(ctx context.Context, jobID kernel.JobID) error
	MarkAsCompleted(ctx context.Context, jobID kernel.JobID, documentID kernel.DocumentID) error
	MarkAsFailed(ctx context.Context, jobID kernel.JobID, errorMsg string, errorDetails map[string]any) error
	UpdateProgress(ctx context.Context, jobID kernel.JobID, step ProcessingStep, percentage int) error
}

// JobQueue defines the interface for queue operations
type JobQueue interface {
	// Enqueue adds a job to the queue
	Enqueue(ctx context.Context, jobID kernel.JobID, payload any) error

	// Dequeue gets a job from the queue (blocking with timeout)
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// EnqueueDelayed schedules a job for later processing (for retries)
	EnqueueDelayed(ctx context.Context, jobID kernel.JobID, payload any, delay time.Duration) error

	// MoveDelayedToReady moves delayed jobs that are ready to the main queue
	MoveDelayedToReady(ctx context.Context) (int, error)

	// GetQueueSize returns the number of jobs in the queue
	GetQueueSize(ctx context.Context) (int64, error)
}
