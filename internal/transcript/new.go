package transcript

import (
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/tube-notes/internal/config"
	"github.com/nguyentantai21042004/tube-notes/internal/logger"
	"github.com/nguyentantai21042004/tube-notes/pkg/executor"
)

type implFetcher struct {
	source Source
	logger logger.Logger
}

// New creates a Fetcher backed by the given caption source.
func New(source Source, log logger.Logger) Fetcher {
	return &implFetcher{
		source: source,
		logger: log,
	}
}

// NewSource builds the caption source selected by cfg.Provider.
func NewSource(cfg config.CaptionsConfig, paths config.PathsConfig, exec executor.Executor, log logger.Logger) (Source, error) {
	switch cfg.Provider {
	case config.ProviderTimedText:
		return &timedTextSource{
			watchURL:  cfg.WatchURL,
			language:  cfg.Language,
			userAgent: cfg.UserAgent,
			client:    &http.Client{Timeout: cfg.Timeout},
		}, nil
	case config.ProviderYtDlp:
		return &ytDlpSource{
			binary:   cfg.YtDlpPath,
			language: cfg.Language,
			watchURL: cfg.WatchURL,
			tempDir:  paths.Temp,
			executor: exec,
			logger:   log,
		}, nil
	default:
		return nil, fmt.Errorf("unknown captions provider %q", cfg.Provider)
	}
}
