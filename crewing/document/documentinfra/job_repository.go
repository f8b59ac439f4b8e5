package documentinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/seaforth/crewdesk/crewing/document"
	"github.com/seaforth/crewdesk/pkg/kernel"
)

// PostgresJobRepository implements document.JobRepository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) document.JobRepository {
	return &PostgresJobRepository{db: db}
}

// jobModel is the database model with JSON handling for error details
type jobModel struct {
	ID          string  `db:"id"`
	CandidateID string  `db:"candidate_id"`
	DocumentID  *string `db:"document_id"`

	Status   string `db:"status"`
	FilePath string `db:"file_path"`
	FileName string `db:"file_name"`
	FileType string `db:"file_type"`

	AttemptCount int `db:"attempt_count"`
	MaxAttempts  int `db:"max_attempts"`

	ErrorMessage string         `db:"error_message"`
	ErrorDetails sql.NullString `db:"error_details"`

	CurrentStep        *string `db:"current_step"`
	ProgressPercentage int     `db:"progress_percentage"`

	CreatedAt   time.Time  `db:"created_at"`
	StartedAt   *time.Time `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	FailedAt    *time.Time `db:"failed_at"`
	NextRetryAt *time.Time `db:"next_retry_at"`
}

func toJobModel(job *document.ProcessingJob) (*jobModel, error) {
	model := &jobModel{
		ID:                 string(job.ID),
		CandidateID:        string(job.CandidateID),
		Status:             string(job.Status),
		FilePath:           job.FilePath,
		FileName:           job.FileName,
		FileType:           job.FileType,
		AttemptCount:       job.AttemptCount,
		MaxAttempts:        job.MaxAttempts,
		ErrorMessage:       job.ErrorMessage,
		ProgressPercentage: job.ProgressPercentage,
		CreatedAt:          job.CreatedAt,
		StartedAt:          job.StartedAt,
		CompletedAt:        job.CompletedAt,
		FailedAt:           job.FailedAt,
		NextRetryAt:        job.NextRetryAt,
	}

	if job.DocumentID != nil {
		id := job.DocumentID.String()
		model.DocumentID = &id
	}

	if job.CurrentStep != nil {
		step := string(*job.CurrentStep)
		model.CurrentStep = &step
	}

	if job.ErrorDetails != nil {
		data, err := json.Marshal(job.ErrorDetails)
		if err != nil {
			return nil, fmt.Errorf("marshal error details: %w", err)
		}
		model.ErrorDetails = sql.NullString{String: string(data), Valid: true}
	}

	return model, nil
}

func (m *jobModel) toEntity() (*document.ProcessingJob, error) {
	job := &document.ProcessingJob{
		ID:                 kernel.JobID(m.ID),
		CandidateID:        kernel.CandidateID(m.CandidateID),
		Status:             document.JobStatus(m.Status),
		FilePath:           m.FilePath,
		FileName:           m.FileName,
		FileType:           m.FileType,
		AttemptCount:       m.AttemptCount,
		MaxAttempts:        m.MaxAttempts,
		ErrorMessage:       m.ErrorMessage,
		ProgressPercentage: m.ProgressPercentage,
		CreatedAt:          m.CreatedAt,
		StartedAt:          m.StartedAt,
		CompletedAt:        m.CompletedAt,
		FailedAt:           m.FailedAt,
		NextRetryAt:        m.NextRetryAt,
	}

	if m.DocumentID != nil {
		id := kernel.DocumentID(*m.DocumentID)
		job.DocumentID = &id
	}

	if m.CurrentStep != nil {
		step := document.ProcessingStep(*m.CurrentStep)
		job.CurrentStep = &step
	}

	if m.ErrorDetails.Valid && m.ErrorDetails.String != "" {
		if err := json.Unmarshal([]byte(m.ErrorDetails.String), &job.ErrorDetails); err != nil {
			return nil, fmt.Errorf("unmarshal error details: %w", err)
		}
	}

	return job, nil
}

// Create creates a new job record
func (r *PostgresJobRepository) Create(ctx context.Context, job *document.ProcessingJob) error {
	model, err := toJobModel(job)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO cv_processing_jobs (
			id, candidate_id, document_id, status,
			file_path, file_name, file_type,
			attempt_count, max_attempts, error_message, error_details,
			current_step, progress_percentage,
			created_at, started_at, completed_at, failed_at, next_retry_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10, $11,
			$12, $13,
			$14, $15, $16, $17, $18
		)
	`

	_, err = r.db.ExecContext(ctx, query,
		model.ID, model.CandidateID, model.DocumentID, model.Status,
		model.FilePath, model.FileName, model.FileType,
		model.AttemptCount, model.MaxAttempts, model.ErrorMessage, model.ErrorDetails,
		model.CurrentStep, model.ProgressPercentage,
		model.CreatedAt, model.StartedAt, model.CompletedAt, model.FailedAt, model.NextRetryAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("job already exists: %w", err)
		}
		return fmt.Errorf("create job: %w", err)
	}

	return nil
}

// Update updates an existing job
func (r *PostgresJobRepository) Update(ctx context.Context, job *document.ProcessingJob) error {
	model, err := toJobModel(job)
	if err != nil {
		return err
	}

	query := `
		UPDATE cv_processing_jobs SET
			document_id = $2,
			status = $3,
			attempt_count = $4,
			error_message = $5,
			error_details = $6,
			current_step = $7,
			progress_percentage = $8,
			started_at = $9,
			completed_at = $10,
			failed_at = $11,
			next_retry_at = $12
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		model.ID, model.DocumentID, model.Status,
		model.AttemptCount, model.ErrorMessage, model.ErrorDetails,
		model.CurrentStep, model.ProgressPercentage,
		model.StartedAt, model.CompletedAt, model.FailedAt, model.NextRetryAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return document.ErrJobNotFound()
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, jobID kernel.JobID) (*document.ProcessingJob, error) {
	query := `
		SELECT
			id, candidate_id, document_id, status,
			file_path, file_name, file_type,
			attempt_count, max_attempts, error_message, error_details,
			current_step, progress_percentage,
			created_at, started_at, completed_at, failed_at, next_retry_at
		FROM cv_processing_jobs
		WHERE id = $1
	`

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, string(jobID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, document.ErrJobNotFound()
		}
		return nil, fmt.Errorf("get job by id: %w", err)
	}

	return model.toEntity()
}

// ListByCandidate retrieves jobs for a candidate with pagination
func (r *PostgresJobRepository) ListByCandidate(ctx context.Context, candidateID kernel.CandidateID, pagination kernel.PaginationOptions) (*kernel.Paginated[document.ProcessingJob], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM cv_processing_jobs WHERE candidate_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, string(candidateID)); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	query := `
		SELECT
			id, candidate_id, document_id, status,
			file_path, file_name, file_type,
			attempt_count, max_attempts, error_message, error_details,
			current_step, progress_percentage,
			created_at, started_at, completed_at, failed_at, next_retry_at
		FROM cv_processing_jobs
		WHERE candidate_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []jobModel
	err := r.db.SelectContext(ctx, &models, query, string(candidateID), pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	jobs := make([]document.ProcessingJob, 0, len(models))
	for _, model := range models {
		job, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}

	return &kernel.Paginated[document.ProcessingJob]{
		Items: jobs,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(jobs) == 0,
	}, nil
}

// MarkAsProcessing marks the job as picked up by a worker
func (r *PostgresJobRepository) MarkAsProcessing(ctx context.Context, jobID kernel.JobID) error {
	query := `
		UPDATE cv_processing_jobs
		SET status = 'processing', started_at = $1
		WHERE id = $2
	`

	return r.exec(ctx, query, time.Now(), string(jobID))
}

// MarkAsCompleted marks the job as done and links the produced document
func (r *PostgresJobRepository) MarkAsCompleted(ctx context.Context, jobID kernel.JobID, documentID kernel.DocumentID) error {
	query := `
		UPDATE cv_processing_jobs
		SET status = 'completed', document_id = $1, completed_at = $2, progress_percentage = 100
		WHERE id = $3
	`

	return r.exec(ctx, query, string(documentID), time.Now(), string(jobID))
}

// MarkAsFailed marks the job as permanently failed
func (r *PostgresJobRepository) MarkAsFailed(ctx context.Context, jobID kernel.JobID, errorMsg string, errorDetails map[string]any) error {
	var details sql.NullString
	if errorDetails != nil {
		data, err := json.Marshal(errorDetails)
		if err != nil {
			return fmt.Errorf("marshal error details: %w", err)
		}
		details = sql.NullString{String: string(data), Valid: true}
	}

	query := `
		UPDATE cv_processing_jobs
		SET status = 'failed', error_message = $1, error_details = $2, failed_at = $3
		WHERE id = $4
	`

	return r.exec(ctx, query, errorMsg, details, time.Now(), string(jobID))
}

// UpdateProgress records the current processing step and percentage
func (r *PostgresJobRepository) UpdateProgress(ctx context.Context, jobID kernel.JobID, step document.ProcessingStep, percentage int) error {
	query := `
		UPDATE cv_processing_jobs
		SET current_step = $1, progress_percentage = $2
		WHERE id = $3
	`

	return r.exec(ctx, query, string(step), percentage, string(jobID))
}

func (r *PostgresJobRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return document.ErrJobNotFound()
	}

	return nil
}
