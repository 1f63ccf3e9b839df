package report

import (
	"context"
	"log"
)

// WorkerPool manages a pool of workers compiling report jobs.
type WorkerPool struct {
	size int
	jobs chan string
	run  func(ctx context.Context, jobID string)
}

// NewWorkerPool creates a new worker pool. run is invoked once per
// dispatched job id.
func NewWorkerPool(size, queueSize int, run func(ctx context.Context, jobID string)) *WorkerPool {
	return &WorkerPool{
		size: size,
		jobs: make(chan string, queueSize),
		run:  run,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Report worker %d started", id)
	for {
		select {
		case jobID := <-wp.jobs:
			log.Printf("Report worker %d compiling job %s", id, jobID)
			wp.run(ctx, jobID)
		case <-ctx.Done():
			log.Printf("Report worker %d shutting down", id)
			return
		}
	}
}

// Dispatch hands a job to the pool. Triggering a report must not block
// the caller, so when the queue is full the enqueue moves to its own
// goroutine.
func (wp *WorkerPool) Dispatch(jobID string) {
	select {
	case wp.jobs <- jobID:
	default:
		go func() { wp.jobs <- jobID }()
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}
