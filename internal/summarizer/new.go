package summarizer

import (
	"context"
	"iter"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/tube-notes/internal/config"
	"github.com/nguyentantai21042004/tube-notes/internal/logger"
)

// modelService is the subset of *genai.Models used here.
type modelService interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	All(ctx context.Context) iter.Seq2[*genai.Model, error]
}

type serviceFactory func(ctx context.Context, apiKey string) (modelService, error)

type implSummarizer struct {
	apiKey      string
	model       string
	temperature float32
	logger      logger.Logger
	newService  serviceFactory

	mu     sync.RWMutex
	prompt string
}

// New creates a Summarizer for the Gemini API. The credential is taken from
// cfg.APIKey; an empty key only fails when a call is attempted.
func New(cfg config.GeminiConfig, log logger.Logger) Summarizer {
	return newWithFactory(cfg, log, func(ctx context.Context, apiKey string) (modelService, error) {
		return newGeminiService(ctx, apiKey, cfg.BaseURL)
	})
}

func newWithFactory(cfg config.GeminiConfig, log logger.Logger, factory serviceFactory) *implSummarizer {
	return &implSummarizer{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      log,
		newService:  factory,
		prompt:      DefaultPrompt,
	}
}

// newGeminiService connects to the Gemini API, or to baseURL when set.
func newGeminiService(ctx context.Context, apiKey, baseURL string) (modelService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}
