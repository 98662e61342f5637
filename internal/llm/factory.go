package llm

import (
	"context"
	"fmt"

	"github.com/kulugbekwork/lema/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with the
// retry and audit-logging middleware.
func NewProvider(ctx context.Context, cfg Config, calls store.AICallRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Middleware order: caller → retry → logging → base, so each retry
	// attempt produces its own audit row.
	logged := WithLogging(base, cfg.Provider, calls)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}
