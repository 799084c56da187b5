package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/tube-notes/internal/processor"
)

func (r *implRunner) Submit(link string) (Job, error) {
	if !r.sem.tryAcquire() {
		r.logger.Warn(r.baseCtx, "Rejected submission while busy: %s", link)
		return Job{}, ErrBusy
	}

	ctx, cancel := r.jobContext(r.baseCtx)
	e := &entry{
		job: Job{
			ID:        uuid.NewString(),
			Link:      link,
			Status:    StatusRunning,
			StartedAt: time.Now(),
		},
		cancel: cancel,
		done:   make(chan struct{}),
	}

	r.mu.Lock()
	r.jobs[e.job.ID] = e
	r.order = append(r.order, e.job.ID)
	r.evictLocked()
	snapshot := e.job
	r.mu.Unlock()

	r.logger.Info(ctx, "Job %s started: %s", e.job.ID, link)

	r.wg.Add(1)
	go r.execute(ctx, e)

	return snapshot, nil
}

func (r *implRunner) execute(ctx context.Context, e *entry) {
	defer r.wg.Done()

	res, err := r.process(ctx, e.job.Link)
	e.cancel()
	// Free the slot before waiters observe completion.
	r.sem.release()

	r.mu.Lock()
	e.job.Result = res
	e.job.Err = err
	e.job.FinishedAt = time.Now()
	e.job.Status = statusFor(err)
	id, status, elapsed := e.job.ID, e.job.Status, e.job.FinishedAt.Sub(e.job.StartedAt)
	r.mu.Unlock()
	close(e.done)

	r.logger.Info(ctx, "Job %s %s in %s", id, status, elapsed)
}

func (r *implRunner) Run(ctx context.Context, link string) (processor.Result, error) {
	if err := r.sem.acquire(ctx); err != nil {
		return processor.Result{}, err
	}
	defer r.sem.release()

	ctx, cancel := r.jobContext(ctx)
	defer cancel()

	return r.process(ctx, link)
}

func (r *implRunner) jobContext(parent context.Context) (context.Context, context.CancelFunc) {
	if r.timeout > 0 {
		return context.WithTimeout(parent, r.timeout)
	}
	return context.WithCancel(parent)
}

func (r *implRunner) process(ctx context.Context, link string) (processor.Result, error) {
	res, err := r.proc.Process(ctx, link)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("request timed out after %s: %w", r.timeout, err)
	}
	return res, err
}

func statusFor(err error) Status {
	switch {
	case err == nil:
		return StatusSucceeded
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	default:
		return StatusFailed
	}
}

func (r *implRunner) Get(id string) (Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return e.job, nil
}

// Cancel aborts a running job. Cancelling a finished job is a no-op.
func (r *implRunner) Cancel(id string) error {
	r.mu.Lock()
	e, ok := r.jobs[id]
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.cancel()
	r.logger.Info(r.baseCtx, "Job %s cancel requested", id)
	return nil
}

func (r *implRunner) Wait(ctx context.Context, id string) (Job, error) {
	r.mu.Lock()
	e, ok := r.jobs[id]
	r.mu.Unlock()
	if !ok {
		return Job{}, ErrNotFound
	}

	select {
	case <-e.done:
		return r.Get(id)
	case <-ctx.Done():
		return Job{}, ctx.Err()
	}
}

func (r *implRunner) Shutdown(ctx context.Context) error {
	r.baseCancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// evictLocked drops the oldest finished jobs beyond maxJobs. Running jobs are
// never evicted.
func (r *implRunner) evictLocked() {
	if len(r.order) <= r.maxJobs {
		return
	}

	excess := len(r.order) - r.maxJobs
	kept := r.order[:0]
	for _, id := range r.order {
		e := r.jobs[id]
		if excess > 0 && e.job.Done() {
			delete(r.jobs, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
}
