package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentantai21042004/tube-notes/internal/processor"
)

var (
	// ErrBusy is returned by Submit while the in-flight limit is reached.
	ErrBusy     = errors.New("a request is already in progress")
	ErrNotFound = errors.New("job not found")
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Job is a snapshot of one submitted request.
type Job struct {
	ID         string
	Link       string
	Status     Status
	Result     processor.Result
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

func (j Job) Done() bool {
	return j.Status != StatusRunning
}

// Runner executes processor requests in the background, each with its own
// timeout and cancel func.
type Runner interface {
	// Submit starts a job without waiting for a slot; it fails with ErrBusy
	// instead of queueing.
	Submit(link string) (Job, error)
	// Run waits for a slot, then processes link synchronously.
	Run(ctx context.Context, link string) (processor.Result, error)
	Get(id string) (Job, error)
	Cancel(id string) error
	Wait(ctx context.Context, id string) (Job, error)
	// Shutdown cancels running jobs and waits for them to return.
	Shutdown(ctx context.Context) error
}
