// Package llm abstracts the external text-completion capability. Every
// call site in the pipeline must treat a Complete call as independently
// failable; latency is unbounded from the caller's perspective.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/prebunk/prebunk/internal/model"
)

// Completer is the text-completion capability the pipeline depends on
type Completer interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt and returns the raw completion text
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewCompleter creates a completer from configuration. An empty provider
// returns (nil, nil), meaning LLM assistance is disabled.
func NewCompleter(cfg model.LLMConfig) (Completer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAICompleter(cfg)
	case "ollama":
		return NewOllamaCompleter(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}
