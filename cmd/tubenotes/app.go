package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nguyentantai21042004/tube-notes/internal/config"
	"github.com/nguyentantai21042004/tube-notes/internal/jobs"
	"github.com/nguyentantai21042004/tube-notes/internal/logger"
	"github.com/nguyentantai21042004/tube-notes/internal/processor"
	"github.com/nguyentantai21042004/tube-notes/internal/summarizer"
	"github.com/nguyentantai21042004/tube-notes/internal/transcript"
	"github.com/nguyentantai21042004/tube-notes/internal/watcher"
	"github.com/nguyentantai21042004/tube-notes/pkg/executor"
)

// app holds the wired dependencies shared by every subcommand.
type app struct {
	cfg        *config.Config
	log        logger.Logger
	summarizer summarizer.Summarizer
	runner     jobs.Runner
}

// loadConfig reads the config file, falling back to defaults when the file
// does not exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if err := cfg.LoadCredentials(".env"); err != nil {
		log.Error(ctx, "Failed to read credentials: %v", err)
	}
	if cfg.Gemini.APIKey == "" {
		log.Warn(ctx, "%s is not set; summaries will fail until it is configured", cfg.Gemini.APIKeyEnv)
	}

	if err := os.MkdirAll(cfg.Paths.Temp, 0755); err != nil {
		return nil, fmt.Errorf("create temp directory %s: %w", cfg.Paths.Temp, err)
	}

	source, err := transcript.NewSource(cfg.Captions, cfg.Paths, executor.New(), log)
	if err != nil {
		return nil, fmt.Errorf("create caption source: %w", err)
	}

	sum := summarizer.New(cfg.Gemini, log)
	if cfg.Summarizer.PromptFile != "" {
		prompt, err := summarizer.LoadPromptFile(cfg.Summarizer.PromptFile)
		if err != nil {
			return nil, fmt.Errorf("load prompt: %w", err)
		}
		sum.SetPrompt(prompt)
		log.Info(ctx, "Using prompt template from %s", cfg.Summarizer.PromptFile)
	}

	proc := processor.New(transcript.New(source, log), sum, log)
	runner := jobs.New(proc, log, cfg.Performance.MaxConcurrent, cfg.Server.RequestTimeout, cfg.Server.MaxJobs)

	return &app{cfg: cfg, log: log, summarizer: sum, runner: runner}, nil
}

// watchPrompt reloads the prompt template whenever the override file changes.
// It returns nil when no override is configured.
func (a *app) watchPrompt() (watcher.Watcher, error) {
	if a.cfg.Summarizer.PromptFile == "" {
		return nil, nil
	}

	return watcher.New(a.cfg.Summarizer.PromptFile, func(ctx context.Context, path string) error {
		prompt, err := summarizer.LoadPromptFile(path)
		if err != nil {
			return err
		}
		a.summarizer.SetPrompt(prompt)
		a.log.Info(ctx, "Reloaded prompt template from %s", path)
		return nil
	}, a.log)
}
