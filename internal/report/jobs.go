package report

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Manager exposes the trigger/poll contract for report jobs.
//
// Completed jobs are tracked in a concurrent registry of job id to
// artifact path, so polling does not depend on filesystem existence
// checks. An id absent from the registry is reported as still running;
// a never-triggered id is deliberately indistinguishable from an
// in-flight one, and a job whose compilation failed stays pending
// forever (callers re-trigger).
type Manager struct {
	compiler *Compiler
	pool     *WorkerPool
	// completed maps job id -> artifact path. Entries never expire;
	// artifacts stay retrievable for the life of the process.
	completed *cache.Cache
}

// NewManager creates a report job manager backed by the given compiler.
func NewManager(compiler *Compiler, poolSize, queueSize int) *Manager {
	m := &Manager{
		compiler:  compiler,
		completed: cache.New(cache.NoExpiration, 0),
	}
	m.pool = NewWorkerPool(poolSize, queueSize, m.compileJob)
	return m
}

// Start launches the compilation workers.
func (m *Manager) Start(ctx context.Context) {
	m.pool.Start(ctx)
}

// Trigger allocates a fresh job id and queues its compilation. It
// returns immediately; callers poll with Fetch.
func (m *Manager) Trigger() string {
	jobID := uuid.NewString()
	m.pool.Dispatch(jobID)
	return jobID
}

// Fetch returns the artifact path for a completed job. ready is false
// while the job is still running — or was never triggered, which looks
// identical from the outside.
func (m *Manager) Fetch(jobID string) (path string, ready bool) {
	v, found := m.completed.Get(jobID)
	if !found {
		return "", false
	}
	return v.(string), true
}

// compileJob runs one compilation and records the artifact on success.
// A failed compile is logged and leaves the job pending; no artifact,
// no registry entry.
func (m *Manager) compileJob(ctx context.Context, jobID string) {
	path, err := m.compiler.Compile(ctx, jobID)
	if err != nil {
		log.Printf("Report job %s failed: %v", jobID, err)
		return
	}
	m.completed.Set(jobID, path, cache.NoExpiration)
	log.Printf("Report job %s complete: %s", jobID, path)
}
