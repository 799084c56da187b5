package server

import (
	"embed"
	"html/template"
	"strings"

	"github.com/nguyentantai21042004/tube-notes/internal/config"
	"github.com/nguyentantai21042004/tube-notes/internal/jobs"
	"github.com/nguyentantai21042004/tube-notes/internal/logger"
	"github.com/nguyentantai21042004/tube-notes/internal/summarizer"
)

// WarningMarker prefixes every user-visible error.
const WarningMarker = "⚠️"

//go:embed templates/*.html
var templateFS embed.FS

type implServer struct {
	cfg        *config.Config
	runner     jobs.Runner
	summarizer summarizer.Summarizer
	logger     logger.Logger
	templates  *template.Template
}

// New creates a Server backed by the job runner and summarizer.
func New(cfg *config.Config, runner jobs.Runner, sum summarizer.Summarizer, log logger.Logger) Server {
	funcs := template.FuncMap{
		"marker": func() string { return WarningMarker },
		"join":   strings.Join,
	}

	return &implServer{
		cfg:        cfg,
		runner:     runner,
		summarizer: sum,
		logger:     log,
		templates:  template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}
