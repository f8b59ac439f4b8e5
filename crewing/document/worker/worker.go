package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/seaforth/crewdesk/crewing/document"
	"github.com/seaforth/crewdesk/crewing/document/documentsrv"
	"github.com/seaforth/crewdesk/pkg/logx"
)

const (
	dequeueTimeout    = 5 * time.Second
	delayedMoveEvery  = 30 * time.Second
	defaultWorkerSize = 3
)

// CVWorker consumes CV processing jobs from the queue and runs them
// through the parsing pipeline.
type CVWorker struct {
	service *documentsrv.Service
	queue   document.JobQueue
	workers int
}

// NewCVWorker creates a worker pool for CV processing jobs
func NewCVWorker(service *documentsrv.Service, queue document.JobQueue, workers int) *CVWorker {
	if workers <= 0 {
		workers = defaultWorkerSize
	}
	return &CVWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

// Start launches the worker goroutines and the delayed job mover.
// It returns immediately; workers stop when ctx is cancelled.
func (w *CVWorker) Start(ctx context.Context) {
	logx.Infof("Starting CV worker pool with %d workers", w.workers)

	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}

	go w.moveDelayedJobs(ctx)
}

func (w *CVWorker) processJobs(ctx context.Context, workerID int) {
	logx.Debugf("CV worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Debugf("CV worker %d stopping", workerID)
			return
		default:
		}

		payload, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logx.Errorf("CV worker %d dequeue failed: %v", workerID, err)
			time.Sleep(time.Second)
			continue
		}

		if payload == nil {
			continue
		}

		var job document.ProcessingJob
		if err := json.Unmarshal(payload, &job); err != nil {
			logx.Errorf("CV worker %d received malformed job payload: %v", workerID, err)
			continue
		}

		logx.Infof("CV worker %d processing job %s (candidate %s, attempt %d)",
			workerID, job.ID, job.CandidateID, job.AttemptCount+1)

		if err := w.service.ProcessJob(ctx, &job); err != nil {
			logx.Errorf("CV worker %d job %s failed: %v", workerID, job.ID, err)
			continue
		}

		logx.Infof("CV worker %d completed job %s", workerID, job.ID)
	}
}

// moveDelayedJobs periodically promotes retry jobs whose backoff has
// expired back onto the ready queue.
func (w *CVWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(delayedMoveEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			moved, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed CV jobs: %v", err)
				continue
			}
			if moved > 0 {
				logx.Infof("Moved %d delayed CV jobs back to the ready queue", moved)
			}
		}
	}
}
