package llm

import (
	"context"
	"time"

	"github.com/kulugbekwork/lema/internal/store"
)

// LoggingProvider is a decorator that records every generation call in
// the AI call audit log. Prompt and response bodies are not persisted,
// only token counts, latency and outcome.
type LoggingProvider struct {
	inner    Provider
	provider string
	calls    store.AICallRepo
}

// WithLogging wraps a Provider with audit logging.
func WithLogging(p Provider, providerName string, calls store.AICallRepo) Provider {
	return &LoggingProvider{inner: p, provider: providerName, calls: calls}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.AICallData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Audit failures never fail the request; Append logs its own warning.
	_ = l.calls.Append(ctx, data)

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
