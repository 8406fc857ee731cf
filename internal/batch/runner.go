package batch

import (
	"context"
	"sync"

	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/google/uuid"
)

// Runner keeps at most one job alive. Starting a job cancels the previous
// one and waits for it to return first.
type Runner struct {
	startMu sync.Mutex // serializes Start

	mu     sync.Mutex
	id     string
	cancel context.CancelFunc
	done   chan struct{}
}

// Start launches fn in its own goroutine with a fresh job ID, after the
// previous job has stopped. fn must honour ctx.
func (r *Runner) Start(parent context.Context, fn func(ctx context.Context, id string)) string {
	r.startMu.Lock()
	defer r.startMu.Unlock()

	if prev := r.Current(); prev != "" {
		logger.Debugf("Runner: cancelling job %s", prev)
	}
	r.Cancel()
	r.Wait()

	ctx, cancel := context.WithCancel(parent)
	id := uuid.NewString()
	done := make(chan struct{})

	r.mu.Lock()
	r.id, r.cancel, r.done = id, cancel, done
	r.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()
		fn(ctx, id)

		r.mu.Lock()
		if r.id == id {
			r.id, r.cancel = "", nil
		}
		r.mu.Unlock()
	}()
	return id
}

// Cancel requests the live job to stop. It does not wait.
func (r *Runner) Cancel() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the most recently started job has returned.
func (r *Runner) Wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Current returns the ID of the live job, or "" when idle.
func (r *Runner) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id
}

// IsCurrent reports whether id still names the live job. Results of a
// replaced job should be dropped.
func (r *Runner) IsCurrent(id string) bool {
	return id != "" && r.Current() == id
}
