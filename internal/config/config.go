package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Gemini      GeminiConfig      `yaml:"gemini"`
	Captions    CaptionsConfig    `yaml:"captions"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Server      ServerConfig      `yaml:"server"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type GeminiConfig struct {
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	APIKeyEnv   string  `yaml:"api_key_env"`

	// BaseURL overrides the API endpoint, e.g. for a proxy. Empty uses the SDK default.
	BaseURL string `yaml:"base_url"`

	// APIKey is resolved from the environment by LoadCredentials, never from YAML.
	APIKey string `yaml:"-"`
}

type CaptionsConfig struct {
	Provider  string        `yaml:"provider"`
	Language  string        `yaml:"language"`
	YtDlpPath string        `yaml:"ytdlp_path"`
	Timeout   time.Duration `yaml:"timeout"`
	WatchURL  string        `yaml:"watch_url"`
	UserAgent string        `yaml:"user_agent"`
}

type SummarizerConfig struct {
	PromptFile string `yaml:"prompt_file"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ModelsTimeout  time.Duration `yaml:"models_timeout"`
	MaxJobs        int           `yaml:"max_jobs"`
}

type PathsConfig struct {
	Temp string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

const (
	ProviderTimedText = "timedtext"
	ProviderYtDlp     = "ytdlp"
)

// Load reads a YAML config file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns a validated config for running without a config file.
func Default() *Config {
	cfg := &Config{}
	// Validate never fails on the zero value.
	_ = cfg.Validate()
	return cfg
}

// LoadCredentials loads .env files (missing files are ignored) and resolves
// the Gemini API key from the environment. The key is resolved even when a
// file fails to parse. An absent key is not an error here; it surfaces when a
// summary is requested.
func (c *Config) LoadCredentials(envFiles ...string) error {
	var errs []error
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", f, err))
		}
	}
	c.Gemini.APIKey = os.Getenv(c.Gemini.APIKeyEnv)
	return errors.Join(errs...)
}

func (c *Config) Validate() error {
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("gemini.temperature must be between 0 and 2")
	}
	if c.Captions.Timeout < 0 {
		return fmt.Errorf("captions.timeout must not be negative")
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout must not be negative")
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}

	switch c.Captions.Provider {
	case "":
		c.Captions.Provider = ProviderTimedText
	case ProviderTimedText, ProviderYtDlp:
	default:
		return fmt.Errorf("captions.provider %q is not supported", c.Captions.Provider)
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.7
	}
	if c.Gemini.APIKeyEnv == "" {
		c.Gemini.APIKeyEnv = "GOOGLE_API_KEY"
	}
	if c.Captions.WatchURL == "" {
		c.Captions.WatchURL = "https://www.youtube.com/watch?v="
	}
	if c.Captions.Language == "" {
		c.Captions.Language = "en"
	}
	if c.Captions.YtDlpPath == "" {
		c.Captions.YtDlpPath = "yt-dlp"
	}
	if c.Captions.Timeout == 0 {
		c.Captions.Timeout = 30 * time.Second
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8501"
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 3 * time.Minute
	}
	if c.Server.ModelsTimeout == 0 {
		c.Server.ModelsTimeout = 10 * time.Second
	}
	if c.Server.MaxJobs == 0 {
		c.Server.MaxJobs = 20
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = os.TempDir()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}

	return nil
}
