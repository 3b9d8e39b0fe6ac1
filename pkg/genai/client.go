// Package genai produces chatbot replies through a generative text model.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-1.5-flash"

// ErrEmptyReply is returned when the model answers with no text.
var ErrEmptyReply = errors.New("genai: empty reply from model")

// Client generates assistant replies for portfolio visitors.
type Client struct {
	model       llms.Model
	temperature float64
}

// NewClient wraps an existing model. Tests pass a fake model here.
func NewClient(model llms.Model) *Client {
	return &Client{model: model, temperature: 0.7}
}

// NewGeminiClient connects to the Gemini API with apiKey.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("genai: create gemini client: %w", err)
	}
	return NewClient(llm), nil
}

// Reply answers a visitor message in the portfolio owner's voice.
func (c *Client) Reply(ctx context.Context, message string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, BuildPrompt(message),
		llms.WithTemperature(c.temperature))
	if err != nil {
		return "", fmt.Errorf("genai: generate: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmptyReply
	}
	return out, nil
}

// BuildPrompt wraps the visitor message in the assistant instructions.
func BuildPrompt(message string) string {
	var b strings.Builder
	b.WriteString("You are the virtual assistant for a professional portfolio website.\n")
	b.WriteString("The user asked: \"")
	b.WriteString(message)
	b.WriteString("\"\n")
	b.WriteString("Please respond in a professional manner, maintaining the portfolio owner's brand voice. ")
	b.WriteString("If the inquiry requires personal attention, suggest scheduling a consultation.")
	return b.String()
}
