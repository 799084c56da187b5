package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tube-notes/internal/logger"
	"github.com/nguyentantai21042004/tube-notes/internal/processor"
)

// blockingProcessor returns once release is closed or ctx ends.
type blockingProcessor struct {
	started chan string
	release chan struct{}
	result  processor.Result
	err     error
}

func newBlockingProcessor() *blockingProcessor {
	return &blockingProcessor{
		started: make(chan string, 10),
		release: make(chan struct{}),
	}
}

func (p *blockingProcessor) Process(ctx context.Context, link string) (processor.Result, error) {
	p.started <- link
	select {
	case <-p.release:
		return p.result, p.err
	case <-ctx.Done():
		return processor.Result{}, ctx.Err()
	}
}

type instantProcessor struct {
	summary string
}

func (p instantProcessor) Process(ctx context.Context, link string) (processor.Result, error) {
	return processor.Result{Summary: p.summary + link}, nil
}

func waitJob(t *testing.T, r Runner, id string) Job {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	job, err := r.Wait(ctx, id)
	require.NoError(t, err)
	return job
}

func TestSubmitSucceeds(t *testing.T) {
	proc := newBlockingProcessor()
	proc.result = processor.Result{VideoID: "vid", Summary: "notes"}
	r := New(proc, logger.Discard(), 1, time.Minute, 10)

	job, err := r.Submit("https://www.youtube.com/watch?v=vid")
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, job.Status)
	assert.NotEmpty(t, job.ID)

	<-proc.started
	close(proc.release)

	done := waitJob(t, r, job.ID)
	assert.Equal(t, StatusSucceeded, done.Status)
	assert.Equal(t, "notes", done.Result.Summary)
	assert.NoError(t, done.Err)
	assert.False(t, done.FinishedAt.IsZero())
}

func TestSubmitWhileBusy(t *testing.T) {
	proc := newBlockingProcessor()
	r := New(proc, logger.Discard(), 1, time.Minute, 10)

	first, err := r.Submit("link-1")
	require.NoError(t, err)
	<-proc.started

	_, err = r.Submit("link-2")
	assert.ErrorIs(t, err, ErrBusy)

	close(proc.release)
	waitJob(t, r, first.ID)

	// Slot is free again once the first job finished
	second, err := r.Submit("link-3")
	require.NoError(t, err)
	waitJob(t, r, second.ID)
}

func TestCancel(t *testing.T) {
	proc := newBlockingProcessor()
	r := New(proc, logger.Discard(), 1, time.Minute, 10)

	job, err := r.Submit("link")
	require.NoError(t, err)
	<-proc.started

	require.NoError(t, r.Cancel(job.ID))

	done := waitJob(t, r, job.ID)
	assert.Equal(t, StatusCanceled, done.Status)
	assert.ErrorIs(t, done.Err, context.Canceled)
}

func TestTimeout(t *testing.T) {
	proc := newBlockingProcessor()
	r := New(proc, logger.Discard(), 1, 20*time.Millisecond, 10)

	job, err := r.Submit("link")
	require.NoError(t, err)

	done := waitJob(t, r, job.ID)
	assert.Equal(t, StatusFailed, done.Status)
	assert.ErrorIs(t, done.Err, context.DeadlineExceeded)
	assert.Contains(t, done.Err.Error(), "timed out")
}

func TestFailedJob(t *testing.T) {
	proc := newBlockingProcessor()
	proc.err = errors.New("boom")
	close(proc.release)
	r := New(proc, logger.Discard(), 1, time.Minute, 10)

	job, err := r.Submit("link")
	require.NoError(t, err)

	done := waitJob(t, r, job.ID)
	assert.Equal(t, StatusFailed, done.Status)
	assert.EqualError(t, done.Err, "boom")
}

func TestUnknownJob(t *testing.T) {
	r := New(instantProcessor{}, logger.Discard(), 1, time.Minute, 10)

	_, err := r.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.Cancel("missing"), ErrNotFound)
	_, err = r.Wait(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEviction(t *testing.T) {
	r := New(instantProcessor{}, logger.Discard(), 1, time.Minute, 2)

	var ids []string
	for i := 0; i < 4; i++ {
		job, err := r.Submit("link")
		require.NoError(t, err)
		waitJob(t, r, job.ID)
		ids = append(ids, job.ID)
	}

	_, err := r.Get(ids[0])
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get(ids[3])
	assert.NoError(t, err)
}

func TestRun(t *testing.T) {
	r := New(instantProcessor{summary: "notes for "}, logger.Discard(), 1, time.Minute, 10)

	res, err := r.Run(context.Background(), "link")
	require.NoError(t, err)
	assert.Equal(t, "notes for link", res.Summary)
}

func TestRunWaitsForSlot(t *testing.T) {
	proc := newBlockingProcessor()
	r := New(proc, logger.Discard(), 1, time.Minute, 10)

	_, err := r.Submit("link")
	require.NoError(t, err)
	<-proc.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = r.Run(ctx, "other")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(proc.release)
}

func TestShutdownCancelsRunningJobs(t *testing.T) {
	proc := newBlockingProcessor()
	r := New(proc, logger.Discard(), 1, time.Minute, 10)

	job, err := r.Submit("link")
	require.NoError(t, err)
	<-proc.started

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, r.Shutdown(ctx))

	done, err := r.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, done.Status)
}
