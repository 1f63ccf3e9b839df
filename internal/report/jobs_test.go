package report

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolDispatch(t *testing.T) {
	wp := NewWorkerPool(1, 4, func(ctx context.Context, jobID string) {})

	wp.Dispatch("job-123")

	select {
	case job := <-wp.Jobs():
		assert.Equal(t, "job-123", job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPoolDispatchDoesNotBlockWhenFull(t *testing.T) {
	// No workers draining and a single-slot queue: the second dispatch
	// must still return promptly.
	wp := NewWorkerPool(0, 1, func(ctx context.Context, jobID string) {})

	done := make(chan struct{})
	go func() {
		wp.Dispatch("job-1")
		wp.Dispatch("job-2")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
}

func TestManagerFetchUnknownID(t *testing.T) {
	manager := NewManager(NewCompiler(newTestStore(t), t.TempDir()), 1, 4)

	// Never-triggered ids look exactly like running ones.
	_, ready := manager.Fetch("no-such-job")
	assert.False(t, ready)
}

func TestManagerTriggerBeforeCompletion(t *testing.T) {
	// Workers are never started, so the job stays queued and the fetch
	// deterministically sees the pending state.
	manager := NewManager(NewCompiler(newTestStore(t), t.TempDir()), 1, 4)

	jobID := manager.Trigger()
	require.NotEmpty(t, jobID)

	_, ready := manager.Fetch(jobID)
	assert.False(t, ready)
}

func TestManagerTriggerThenFetch(t *testing.T) {
	manager := NewManager(NewCompiler(newTestStore(t), t.TempDir()), 1, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	jobID := manager.Trigger()

	var path string
	assert.Eventually(t, func() bool {
		p, ready := manager.Fetch(jobID)
		path = p
		return ready
	}, 5*time.Second, 10*time.Millisecond, "report should complete")

	_, err := os.Stat(path)
	assert.NoError(t, err, "artifact file should exist at the fetched path")
}

func TestManagerTriggersAreIndependent(t *testing.T) {
	manager := NewManager(NewCompiler(newTestStore(t), t.TempDir()), 2, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	first := manager.Trigger()
	second := manager.Trigger()
	assert.NotEqual(t, first, second, "concurrent triggers get independent job ids")

	assert.Eventually(t, func() bool {
		p1, ok1 := manager.Fetch(first)
		p2, ok2 := manager.Fetch(second)
		return ok1 && ok2 && p1 != p2
	}, 5*time.Second, 10*time.Millisecond)
}
