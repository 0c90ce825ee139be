// Package llm talks to hosted chat-completion models.
package llm

import (
	"context"
	"errors"
)

// Client is a single chat-completion provider.
type Client interface {
	Complete(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// ChatRequest is one system/user prompt pair with sampling limits.
type ChatRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// ChatResponse carries the model text. Usage is nil when the provider does not report it.
type ChatResponse struct {
	Text  string
	Usage *Usage
}

// Usage is token accounting; the tags follow the OpenAI wire names.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ErrEmptyResponse is returned by providers that answered without any text.
var ErrEmptyResponse = errors.New("empty model response")
