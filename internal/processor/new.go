package processor

import (
	"github.com/nguyentantai21042004/tube-notes/internal/logger"
	"github.com/nguyentantai21042004/tube-notes/internal/summarizer"
	"github.com/nguyentantai21042004/tube-notes/internal/transcript"
)

type implProcessor struct {
	fetcher    transcript.Fetcher
	summarizer summarizer.Summarizer
	logger     logger.Logger
}

// New creates a new Processor instance
func New(fetcher transcript.Fetcher, sum summarizer.Summarizer, log logger.Logger) Processor {
	return &implProcessor{
		fetcher:    fetcher,
		summarizer: sum,
		logger:     log,
	}
}
