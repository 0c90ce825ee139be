package llm

import (
	"context"
	"errors"
	"time"

	"jobprep-backend/internal/shared/metrics"
	"jobprep-backend/internal/shared/telemetry"
)

// FailurePrefix starts the text Chat returns in place of model output when the provider fails.
const FailurePrefix = "LLM call failed: "

// Options fixes the sampling parameters of every call made through a Gateway.
type Options struct {
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// Gateway makes exactly one provider call per Chat with a bounded timeout.
type Gateway struct {
	client Client
	opts   Options
	now    func() time.Time
}

func NewGateway(client Client, opts Options) *Gateway {
	return &Gateway{client: client, opts: opts, now: time.Now}
}

// Chat returns the model's reply to the prompt pair. A provider failure,
// including the per-call timeout, is not an error: the returned text is
// FailurePrefix followed by the cause. Chat only errors when ctx itself is
// done, so callers can skip dependent writes for abandoned requests.
func (g *Gateway) Chat(ctx context.Context, system, user string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	callCtx := ctx
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	start := g.now()
	resp, err := g.client.Complete(callCtx, ChatRequest{
		System:      system,
		User:        user,
		MaxTokens:   g.opts.MaxTokens,
		Temperature: g.opts.Temperature,
	})
	elapsed := g.now().Sub(start)
	metrics.IncLLMCall(g.opts.Provider)
	metrics.ObserveLLMDuration(g.opts.Provider, elapsed)

	if err == nil && resp.Text == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, context.DeadlineExceeded) {
			err = errors.New("timed out after " + g.opts.Timeout.String())
		}
		metrics.IncLLMFailure(g.opts.Provider)
		telemetry.Error("llm.call_failed", map[string]any{
			"provider":    g.opts.Provider,
			"model":       g.opts.Model,
			"duration_ms": elapsed.Milliseconds(),
			"error":       err,
		})
		return FailurePrefix + err.Error(), nil
	}

	fields := map[string]any{
		"provider":    g.opts.Provider,
		"model":       g.opts.Model,
		"duration_ms": elapsed.Milliseconds(),
	}
	if resp.Usage != nil {
		fields["prompt_tokens"] = resp.Usage.PromptTokens
		fields["completion_tokens"] = resp.Usage.CompletionTokens
		fields["total_tokens"] = resp.Usage.TotalTokens
	}
	telemetry.Info("llm.call_complete", fields)
	return resp.Text, nil
}
