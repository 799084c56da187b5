package summarizer

import "errors"

var (
	// ErrConfiguration is returned when no API credential is configured.
	ErrConfiguration = errors.New("gemini api key is not configured")
	// ErrGeneration wraps every failed or empty generation call.
	ErrGeneration = errors.New("summary generation failed")
)
