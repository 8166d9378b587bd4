package llm

import (
	"context"
	"errors"
)

// Client abstracts the text-generation provider: one prompt in, free text out.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrUpstream wraps provider failures so handlers can map them uniformly.
var ErrUpstream = errors.New("model request failed")

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is a stub used when no provider credentials are present.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
