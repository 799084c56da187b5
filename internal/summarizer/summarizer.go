package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Summarize sends the prompt plus transcript to Gemini and returns its text.
// No retries: a failed call is reported to the caller as ErrGeneration.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if s.apiKey == "" {
		return "", ErrConfiguration
	}

	startTime := time.Now()
	s.logger.Info(ctx, "Generating summary with %s (temperature %.2f, %d transcript chars)", s.model, s.temperature, len(transcript))

	text, err := s.callGemini(ctx, s.Prompt()+transcript)
	if err != nil {
		s.logger.Error(ctx, "Summary generation failed: %v", err)
		return "", err
	}

	s.logger.Info(ctx, "Summary generated: %d chars in %s", len(text), time.Since(startTime))
	return text, nil
}

// callGemini issues one GenerateContent call and concatenates the text parts
// of the first candidate.
func (s *implSummarizer) callGemini(ctx context.Context, prompt string) (string, error) {
	svc, err := s.newService(ctx, s.apiKey)
	if err != nil {
		return "", fmt.Errorf("%w: create client: %w", ErrGeneration, err)
	}

	result, err := svc.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(s.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrGeneration, classify(err), err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		if strings.TrimSpace(text.String()) != "" {
			return text.String(), nil
		}
	}

	return "", fmt.Errorf("%w: empty response from Gemini", ErrGeneration)
}

// classify names the failure class of an API error for the user-facing message.
func classify(err error) string {
	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED"):
		return "quota exhausted"
	case strings.Contains(errMsg, "401") || strings.Contains(errMsg, "403") ||
		strings.Contains(errMsg, "API_KEY_INVALID") || strings.Contains(errMsg, "PERMISSION_DENIED"):
		return "authentication failed"
	case strings.Contains(errMsg, "context deadline exceeded"):
		return "timed out"
	case strings.Contains(errMsg, "context canceled"):
		return "canceled"
	default:
		return "api error"
	}
}

// ListModels returns every model the account can see, in API order.
func (s *implSummarizer) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if s.apiKey == "" {
		return nil, ErrConfiguration
	}

	svc, err := s.newService(ctx, s.apiKey)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	var models []ModelInfo
	for m, err := range svc.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list models: %w", err)
		}
		models = append(models, ModelInfo{
			Name:             m.Name,
			DisplayName:      m.DisplayName,
			SupportedActions: m.SupportedActions,
		})
	}

	s.logger.Debug(ctx, "Listed %d models", len(models))
	return models, nil
}
