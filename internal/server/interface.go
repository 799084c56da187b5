package server

import (
	"context"
	"net/http"
)

// Server serves the single-page notes UI.
type Server interface {
	Handler() http.Handler
	// ListenAndServe blocks until ctx ends, then shuts down gracefully.
	ListenAndServe(ctx context.Context) error
}
