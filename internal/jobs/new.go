package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/nguyentantai21042004/tube-notes/internal/logger"
	"github.com/nguyentantai21042004/tube-notes/internal/processor"
)

type entry struct {
	job    Job
	cancel context.CancelFunc
	done   chan struct{}
}

type implRunner struct {
	proc    processor.Processor
	logger  logger.Logger
	timeout time.Duration
	maxJobs int
	sem     *semaphore

	baseCtx    context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup

	mu    sync.Mutex
	jobs  map[string]*entry
	order []string
}

// New creates a Runner allowing maxConcurrent in-flight jobs, each bounded by
// timeout. At most maxJobs finished jobs are kept for lookup.
func New(proc processor.Processor, log logger.Logger, maxConcurrent int, timeout time.Duration, maxJobs int) Runner {
	if maxJobs <= 0 {
		maxJobs = 20
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &implRunner{
		proc:       proc,
		logger:     log,
		timeout:    timeout,
		maxJobs:    maxJobs,
		sem:        newSemaphore(maxConcurrent),
		baseCtx:    ctx,
		baseCancel: cancel,
		jobs:       make(map[string]*entry),
	}
}
