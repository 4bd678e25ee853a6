// Package llm defines the completion interface the advisor uses to talk to a
// generative model, plus the Gemini implementation.
package llm

import (
	"context"
	"errors"
)

// Roles used in Message.Role.
const (
	RoleUser   = "user"
	RoleModel  = "model"
	RoleSystem = "system"
)

// ErrNotConfigured is returned by providers that have no credential.
var ErrNotConfigured = errors.New("llm provider not configured")

// Provider defines the interface for LLM completions.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	ModelName() string
}

// CompletionRequest represents a request to the LLM.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system,omitempty"`

	// JSON asks the model for an application/json response body
	JSON bool `json:"json,omitempty"`
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionResponse represents an LLM response.
type CompletionResponse struct {
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Unavailable is a Provider that always fails with ErrNotConfigured. It is
// used when no API key is present so callers take their fallback paths.
type Unavailable struct{}

// Complete always returns ErrNotConfigured.
func (Unavailable) Complete(context.Context, CompletionRequest) (*CompletionResponse, error) {
	return nil, ErrNotConfigured
}

// ModelName returns "none".
func (Unavailable) ModelName() string {
	return "none"
}
