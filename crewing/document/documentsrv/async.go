package documentsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/seaforth/crewdesk/crewing/document"
	"github.com/seaforth/crewdesk/pkg/kernel"
	"github.com/seaforth/crewdesk/pkg/logx"
)

// enqueueParseJob creates the job record and pushes it onto the queue
func (s *Service) enqueueParseJob(ctx context.Context, req document.ParseCVRequest) (*document.JobStatusResponse, error) {
	jobID := kernel.NewJobID(uuid.NewString())
	job := &document.ProcessingJob{
		ID:                 jobID,
		CandidateID:        req.CandidateID,
		Status:             document.JobStatusPending,
		FilePath:           req.FilePath,
		FileName:           req.FileName,
		FileType:           req.FileType,
		AttemptCount:       0,
		MaxAttempts:        3,
		ProgressPercentage: 0,
		CreatedAt:          time.Now(),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, document.ErrEnqueueFailed().
			WithDetail("candidate_id", req.CandidateID.String()).
			WithDetail("file_name", req.FileName).
			WithDetails(map[string]any{"error": err.Error()})
	}

	if err := s.queue.Enqueue(ctx, jobID, job); err != nil {
		_ = s.jobRepo.MarkAsFailed(ctx, jobID, "failed to enqueue", map[string]any{
			"error": err.Error(),
		})
		return nil, document.ErrEnqueueFailed().
			WithDetail("job_id", jobID.String()).
			WithDetails(map[string]any{"error": err.Error()})
	}

	logx.Infof("CV job queued: JobID=%s, CandidateID=%s", jobID, req.CandidateID)

	return &document.JobStatusResponse{
		JobID:       jobID,
		CandidateID: req.CandidateID,
		Status:      document.JobStatusPending,
		Message:     "CV queued for processing",
		Progress:    0,
		CreatedAt:   job.CreatedAt,
	}, nil
}

// ProcessJob is the worker function for one dequeued job: read the file,
// extract structured data, embed the summary, and save the document.
func (s *Service) ProcessJob(ctx context.Context, job *document.ProcessingJob) error {
	logx.Infof("Processing CV job: JobID=%s, Attempt=%d/%d", job.ID, job.AttemptCount+1, job.MaxAttempts)

	if err := s.jobRepo.MarkAsProcessing(ctx, job.ID); err != nil {
		return document.ErrJobFailed().
			WithDetail("job_id", job.ID.String()).
			WithDetails(map[string]any{"error": err.Error()})
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, document.StepParsing, 25)

	fileData, err := s.files.ReadFile(ctx, job.FilePath)
	if err != nil {
		return s.handleJobError(ctx, job, "file_read_failed", err)
	}

	parsed, err := s.parseCV(ctx, job.FileType, fileData)
	if err != nil {
		return s.handleJobError(ctx, job, "parsing_failed", err)
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, document.StepEmbedding, 50)

	summary := summarize(parsed)
	embedding, err := s.embedGen.Embed(ctx, summary)
	if err != nil {
		return s.handleJobError(ctx, job, "embedding_failed", err)
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, document.StepSaving, 75)

	now := time.Now()
	doc := &document.CVDocument{
		ID:          kernel.NewDocumentID(uuid.NewString()),
		CandidateID: job.CandidateID,
		FileName:    job.FileName,
		FileType:    job.FileType,
		BucketURL:   kernel.BucketURL(job.FilePath),
		Summary:     kernel.CVSummary(summary),
		Embedding:   embedding,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return s.handleJobError(ctx, job, "save_failed", err)
	}

	if err := s.jobRepo.MarkAsCompleted(ctx, job.ID, doc.ID); err != nil {
		// Document was saved, a stale job row is the lesser problem
		logx.Errorf("Failed to mark job as completed: %v", err)
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, document.StepSaving, 100)

	logx.Infof("CV job completed: JobID=%s, DocumentID=%s", job.ID, doc.ID)
	return nil
}

// handleJobError applies the retry policy: exponential backoff through the
// delayed queue until the attempts are exhausted.
func (s *Service) handleJobError(ctx context.Context, job *document.ProcessingJob, errorType string, err error) error {
	job.AttemptCount++

	errorDetails := map[string]any{
		"error":        err.Error(),
		"error_type":   errorType,
		"attempt":      job.AttemptCount,
		"max_attempts": job.MaxAttempts,
		"file_path":    job.FilePath,
		"file_name":    job.FileName,
	}

	if job.CanRetry() {
		retryDelay := time.Duration(1<<uint(job.AttemptCount)) * time.Minute
		nextRetry := time.Now().Add(retryDelay)
		job.NextRetryAt = &nextRetry

		logx.Warnf("CV job failed, will retry: JobID=%s, Attempt=%d/%d, NextRetry=%v, Error=%s",
			job.ID, job.AttemptCount, job.MaxAttempts, nextRetry, errorType)

		if queueErr := s.queue.EnqueueDelayed(ctx, job.ID, job, retryDelay); queueErr != nil {
			logx.Errorf("Failed to enqueue for retry: %v", queueErr)
			_ = s.jobRepo.MarkAsFailed(ctx, job.ID,
				fmt.Sprintf("%s (retry enqueue failed)", errorType), errorDetails)
			return document.ErrJobFailed().
				WithDetail("job_id", job.ID.String()).
				WithDetail("error_type", errorType).
				WithDetails(errorDetails)
		}

		job.ErrorMessage = fmt.Sprintf("%s (will retry)", errorType)
		job.ErrorDetails = errorDetails
		job.Status = document.JobStatusPending

		if updateErr := s.jobRepo.Update(ctx, job); updateErr != nil {
			logx.Errorf("Failed to update job for retry: %v", updateErr)
		}

		return document.ErrJobFailed().
			WithDetail("job_id", job.ID.String()).
			WithDetail("error_type", errorType).
			WithDetail("will_retry", true).
			WithDetails(errorDetails)
	}

	logx.Errorf("CV job permanently failed: JobID=%s, Error=%s, Attempts=%d/%d",
		job.ID, errorType, job.AttemptCount, job.MaxAttempts)

	_ = s.jobRepo.MarkAsFailed(ctx, job.ID, errorType, errorDetails)

	return document.ErrJobMaxRetriesReached().
		WithDetail("job_id", job.ID.String()).
		WithDetail("error_type", errorType).
		WithDetails(errorDetails)
}

// GetJobStatus retrieves the current status of a processing job
func (s *Service) GetJobStatus(ctx context.Context, jobID kernel.JobID) (*document.JobStatusResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, document.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	response := &document.JobStatusResponse{
		JobID:       job.ID,
		CandidateID: job.CandidateID,
		Status:      job.Status,
		Progress:    job.ProgressPercentage,
		CreatedAt:   job.CreatedAt,
	}

	switch job.Status {
	case document.JobStatusPending:
		if job.AttemptCount > 0 {
			response.Message = fmt.Sprintf("Job pending retry (attempt %d/%d)", job.AttemptCount, job.MaxAttempts)
		} else {
			response.Message = "Job queued and waiting to be processed"
		}
		response.NextRetryAt = job.NextRetryAt

	case document.JobStatusProcessing:
		response.Message = fmt.Sprintf("Processing CV: %v", job.CurrentStep)
		response.CurrentStep = job.CurrentStep
		response.StartedAt = job.StartedAt

	case document.JobStatusCompleted:
		response.Message = "CV processed successfully"
		response.DocumentID = job.DocumentID
		response.CompletedAt = job.CompletedAt

	case document.JobStatusFailed:
		response.Message = job.ErrorMessage
		response.Error = &document.JobError{
			Message: job.ErrorMessage,
			Details: job.ErrorDetails,
		}
		response.FailedAt = job.FailedAt
		response.AttemptCount = job.AttemptCount
	}

	return response, nil
}

// ListJobsByCandidate retrieves processing jobs for a candidate
func (s *Service) ListJobsByCandidate(ctx context.Context, candidateID kernel.CandidateID, pagination kernel.PaginationOptions) (*kernel.Paginated[document.ProcessingJob], error) {
	jobs, err := s.jobRepo.ListByCandidate(ctx, candidateID, pagination.Normalize())
	if err != nil {
		return nil, document.ErrJobNotFound().WithDetail("candidate_id", candidateID.String())
	}
	return jobs, nil
}
