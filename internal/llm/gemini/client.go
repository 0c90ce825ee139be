// Package gemini adapts the Google Gen AI SDK to llm.Client.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"jobprep-backend/internal/llm"
)

// generator is the slice of *genai.Models used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Client struct {
	models generator
	model  string
}

// NewClient builds a Gemini API backed client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{models: client.Models, model: model}, nil
}

func (c *Client) Complete(ctx context.Context, in llm.ChatRequest) (llm.ChatResponse, error) {
	temp := in.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:       &temp,
		MaxOutputTokens:   int32(in.MaxTokens),
		SystemInstruction: genai.NewContentFromText(in.System, genai.RoleUser),
	}
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(in.User), config)
	if err != nil {
		return llm.ChatResponse{}, fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return llm.ChatResponse{}, llm.ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return llm.ChatResponse{}, llm.ErrEmptyResponse
	}
	out := llm.ChatResponse{Text: text}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = &llm.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return out, nil
}

var _ llm.Client = (*Client)(nil)
