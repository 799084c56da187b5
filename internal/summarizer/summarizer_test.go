package summarizer

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/tube-notes/internal/config"
	"github.com/nguyentantai21042004/tube-notes/internal/logger"
)

type fakeService struct {
	resp    *genai.GenerateContentResponse
	err     error
	models  []*genai.Model
	listErr error

	calls     int
	gotModel  string
	gotPrompt string
	gotConfig *genai.GenerateContentConfig
}

func (f *fakeService) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.gotModel = model
	f.gotConfig = cfg
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotPrompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func (f *fakeService) All(ctx context.Context) iter.Seq2[*genai.Model, error] {
	return func(yield func(*genai.Model, error) bool) {
		if f.listErr != nil {
			yield(nil, f.listErr)
			return
		}
		for _, m := range f.models {
			if !yield(m, nil) {
				return
			}
		}
	}
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func newTestSummarizer(apiKey string, svc *fakeService) *implSummarizer {
	cfg := config.GeminiConfig{
		Model:       "gemini-test",
		Temperature: 0.7,
		APIKey:      apiKey,
	}
	return newWithFactory(cfg, logger.Discard(), func(ctx context.Context, key string) (modelService, error) {
		return svc, nil
	})
}

func TestSummarize(t *testing.T) {
	svc := &fakeService{resp: textResponse("Summary: ", "a talk about Go")}
	s := newTestSummarizer("key", svc)

	got, err := s.Summarize(context.Background(), "hello world")
	require.NoError(t, err)

	assert.Equal(t, "Summary: a talk about Go", got)
	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, "gemini-test", svc.gotModel)
	assert.Equal(t, DefaultPrompt+"hello world", svc.gotPrompt)
	require.NotNil(t, svc.gotConfig)
	require.NotNil(t, svc.gotConfig.Temperature)
	assert.Equal(t, float32(0.7), *svc.gotConfig.Temperature)
	assert.Zero(t, svc.gotConfig.MaxOutputTokens)
}

func TestSummarizeMissingKey(t *testing.T) {
	svc := &fakeService{resp: textResponse("unused")}
	s := newTestSummarizer("", svc)

	_, err := s.Summarize(context.Background(), "hello world")
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, 0, svc.calls)
}

func TestSummarizeAPIErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{"quota", errors.New("Error 429, Message: Resource has been exhausted, Status: RESOURCE_EXHAUSTED"), "quota exhausted"},
		{"auth", errors.New("Error 400, Message: API key not valid, Status: INVALID_ARGUMENT, Details: API_KEY_INVALID"), "authentication failed"},
		{"deadline", context.DeadlineExceeded, "timed out"},
		{"other", errors.New("Error 500, Message: internal"), "api error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSummarizer("key", &fakeService{err: tt.err})

			_, err := s.Summarize(context.Background(), "hello")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrGeneration)
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), tt.wantText)
		})
	}
}

func TestSummarizeEmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"blank text", textResponse("  ", "\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSummarizer("key", &fakeService{resp: tt.resp})

			got, err := s.Summarize(context.Background(), "hello")
			assert.ErrorIs(t, err, ErrGeneration)
			assert.Empty(t, got)
		})
	}
}

func TestSummarizeClientError(t *testing.T) {
	boom := errors.New("bad client config")
	s := newWithFactory(config.GeminiConfig{APIKey: "key"}, logger.Discard(), func(ctx context.Context, key string) (modelService, error) {
		return nil, boom
	})

	_, err := s.Summarize(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, boom)
}

func TestSetPrompt(t *testing.T) {
	svc := &fakeService{resp: textResponse("ok")}
	s := newTestSummarizer("key", svc)

	s.SetPrompt("Summarize briefly:\n")
	assert.Equal(t, "Summarize briefly:\n", s.Prompt())

	_, err := s.Summarize(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "Summarize briefly:\ntext", svc.gotPrompt)

	s.SetPrompt("")
	assert.Equal(t, DefaultPrompt, s.Prompt())
}

func TestListModels(t *testing.T) {
	svc := &fakeService{models: []*genai.Model{
		{Name: "models/gemini-2.5-flash", DisplayName: "Gemini 2.5 Flash", SupportedActions: []string{"generateContent", "countTokens"}},
		{Name: "models/text-embedding-004", DisplayName: "Text Embedding 004", SupportedActions: []string{"embedContent"}},
	}}
	s := newTestSummarizer("key", svc)

	models, err := s.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, ModelInfo{
		Name:             "models/gemini-2.5-flash",
		DisplayName:      "Gemini 2.5 Flash",
		SupportedActions: []string{"generateContent", "countTokens"},
	}, models[0])
}

func TestListModelsErrors(t *testing.T) {
	_, err := newTestSummarizer("", &fakeService{}).ListModels(context.Background())
	assert.ErrorIs(t, err, ErrConfiguration)

	boom := errors.New("permission denied")
	_, err = newTestSummarizer("key", &fakeService{listErr: boom}).ListModels(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestLoadPromptFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "prompt.md")
	require.NoError(t, os.WriteFile(path, []byte("Summarize:\n"), 0644))
	got, err := LoadPromptFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Summarize:\n", got)

	empty := filepath.Join(dir, "empty.md")
	require.NoError(t, os.WriteFile(empty, []byte(" \n"), 0644))
	_, err = LoadPromptFile(empty)
	assert.Error(t, err)

	_, err = LoadPromptFile(filepath.Join(dir, "missing.md"))
	assert.Error(t, err)
}

func TestDefaultPrompt(t *testing.T) {
	for _, section := range []string{"**Situation**", "**Task**", "**Objective**", "**Knowledge**", "**Constraints**", "**Output Format**"} {
		assert.Contains(t, DefaultPrompt, section)
	}

	lines := strings.Split(strings.TrimSpace(DefaultPrompt), "\n")
	assert.Equal(t, "Your life depends on delivering a summary so precise and valuable that it becomes an indispensable alternative to watching the entire video.", lines[len(lines)-1])
	assert.True(t, strings.HasSuffix(DefaultPrompt, "\n"), "transcript must start on its own line")
}
