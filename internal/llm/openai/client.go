package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jobprep-backend/internal/llm"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client calls the Chat Completions endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithBaseURL points the client at a compatible endpoint, such as a proxy or a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// NewClient checks the credentials up front. The gateway's context carries the
// per-call deadline; the HTTP timeout only stops a hung connection.
func NewClient(apiKey, model string, opts ...Option) (*Client, error) {
	switch {
	case strings.TrimSpace(apiKey) == "":
		return nil, errors.New("OPENAI_API_KEY is required")
	case strings.TrimSpace(model) == "":
		return nil, errors.New("LLM_MODEL is required for OpenAI")
	}
	c := &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model               string    `json:"model"`
	Messages            []message `json:"messages"`
	Temperature         *float32  `json:"temperature,omitempty"`
	MaxTokens           int       `json:"max_tokens,omitempty"`
	MaxCompletionTokens int       `json:"max_completion_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Usage *llm.Usage `json:"usage,omitempty"`
	Error *apiError  `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("openai error: %s (%s)", e.Message, e.Type)
}

func (c *Client) newRequest(in llm.ChatRequest) completionRequest {
	req := completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: in.System},
			{Role: "user", Content: in.User},
		},
	}
	// gpt-5 models reject max_tokens and any non-default temperature
	if isGPT5(c.model) {
		req.MaxCompletionTokens = in.MaxTokens
		return req
	}
	temperature := in.Temperature
	req.Temperature = &temperature
	req.MaxTokens = in.MaxTokens
	return req
}

// Complete sends the prompt pair as one system and one user message.
func (c *Client) Complete(ctx context.Context, in llm.ChatRequest) (llm.ChatResponse, error) {
	payload, err := json.Marshal(c.newRequest(in))
	if err != nil {
		return llm.ChatResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return llm.ChatResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return llm.ChatResponse{}, fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.ChatResponse{}, err
	}
	return decodeCompletion(resp.StatusCode, body)
}

func decodeCompletion(status int, body []byte) (llm.ChatResponse, error) {
	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if status >= http.StatusMultipleChoices {
			return llm.ChatResponse{}, fmt.Errorf("openai status %d", status)
		}
		return llm.ChatResponse{}, fmt.Errorf("decode openai response: %w", err)
	}
	switch {
	case parsed.Error != nil:
		return llm.ChatResponse{}, parsed.Error
	case status >= http.StatusMultipleChoices:
		return llm.ChatResponse{}, fmt.Errorf("openai status %d", status)
	case len(parsed.Choices) == 0:
		return llm.ChatResponse{}, errors.New("openai response has no choices")
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return llm.ChatResponse{}, llm.ErrEmptyResponse
	}
	return llm.ChatResponse{Text: text, Usage: parsed.Usage}, nil
}

func isGPT5(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gpt-5")
}

var _ llm.Client = (*Client)(nil)
