// Package jobs runs persistence writes and PDF exports off the interactive
// loop. The runner is bounded at a fixed number of concurrent jobs and hands
// the caller an explicit handle with a done channel and error state instead
// of fire-and-forget polling.
package jobs

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// DefaultCapacity matches the two-worker bound the tool has always used for
// background saves and exports.
const DefaultCapacity = 2

// Handle tracks one submitted job. Err is meaningful only after Done is
// closed.
type Handle struct {
	ID   string
	Name string

	done chan struct{}
	err  error
}

// Done is closed when the job finishes, successfully or not.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err returns the job's error. Callers wait on Done first.
func (h *Handle) Err() error {
	<-h.done
	return h.err
}

// Runner executes jobs with bounded concurrency.
type Runner struct {
	sem *semaphore.Weighted
	log *zap.Logger
	wg  sync.WaitGroup
}

// NewRunner returns a runner allowing capacity concurrent jobs. Non-positive
// capacity falls back to DefaultCapacity. A nil logger disables logging.
func NewRunner(capacity int64, log *zap.Logger) *Runner {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		sem: semaphore.NewWeighted(capacity),
		log: log,
	}
}

// Submit schedules fn and returns immediately with its handle. The job
// starts once a slot frees up; ctx cancellation while queued fails the job
// without running it.
func (r *Runner) Submit(ctx context.Context, name string, fn func() error) *Handle {
	h := &Handle{
		ID:   uuid.NewString(),
		Name: name,
		done: make(chan struct{}),
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(h.done)

		if err := r.sem.Acquire(ctx, 1); err != nil {
			h.err = err
			r.log.Warn("job cancelled before start", zap.String("job", name), zap.String("id", h.ID))
			return
		}
		defer r.sem.Release(1)

		r.log.Debug("job started", zap.String("job", name), zap.String("id", h.ID))
		h.err = fn()
		if h.err != nil {
			r.log.Warn("job failed", zap.String("job", name), zap.String("id", h.ID), zap.Error(h.err))
			return
		}
		r.log.Debug("job finished", zap.String("job", name), zap.String("id", h.ID))
	}()

	return h
}

// Wait blocks until every submitted job has finished. Called at shutdown so
// an in-flight history write completes before the process exits.
func (r *Runner) Wait() {
	r.wg.Wait()
}
