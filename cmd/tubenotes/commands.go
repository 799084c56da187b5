package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/tube-notes/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notes web page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		w, err := a.watchPrompt()
		if err != nil {
			return fmt.Errorf("watch prompt: %w", err)
		}
		if w != nil {
			defer w.Stop()
			go func() {
				if err := w.Start(ctx); err != nil && err != context.Canceled {
					a.log.Error(ctx, "Prompt watcher error: %v", err)
				}
			}()
		}

		a.log.Info(ctx, "========================================")
		a.log.Info(ctx, "Video Transcript to Detailed Notes")
		a.log.Info(ctx, "Model: %s (temperature %.1f)", a.cfg.Gemini.Model, a.cfg.Gemini.Temperature)
		a.log.Info(ctx, "Captions: %s (%s)", a.cfg.Captions.Provider, a.cfg.Captions.Language)
		a.log.Info(ctx, "Request timeout: %s", a.cfg.Server.RequestTimeout)
		a.log.Info(ctx, "Press Ctrl+C to stop")
		a.log.Info(ctx, "========================================")

		srv := server.New(a.cfg, a.runner, a.summarizer, a.log)
		serveErr := srv.ListenAndServe(ctx)

		a.log.Info(context.Background(), "Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.runner.Shutdown(shutdownCtx); err != nil {
			a.log.Warn(shutdownCtx, "Jobs did not stop in time: %v", err)
		}

		return serveErr
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <link>",
	Short: "Print detailed notes for one video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		res, err := a.runner.Run(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, res.Summary)
		return nil
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the Gemini models available to the configured key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, a.cfg.Server.ModelsTimeout)
		defer cancel()

		models, err := a.summarizer.ListModels(ctx)
		if err != nil {
			return err
		}
		for _, m := range models {
			fmt.Fprintf(os.Stdout, "%s\t%s\t%v\n", m.Name, m.DisplayName, m.SupportedActions)
		}
		return nil
	},
}
