// Package llm is a small provider-neutral layer over the Gemini, Anthropic
// and OpenAI SDKs. Callers build a Request with an optional JSON schema and
// get validated JSON back.
package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// When req.Schema is set the provider uses its native structured output
	// mechanism and Content is JSON validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Wordwise only sends single-turn
	// requests, so this is one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil,
	// Content is the raw text response.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness in the range 0.0 - 1.0.
	Temperature float64
}

// Message is a single turn. Images are sent as inline parts after the text.
type Message struct {
	Role    Role
	Content string
	Images  []Image
}

// Image is inline binary image data such as a scanned worksheet.
type Image struct {
	Data      []byte
	MediaType string // "image/jpeg", "image/png", ...
}

// Base64 returns the standard base64 encoding of the image bytes.
func (img Image) Base64() string {
	return base64.StdEncoding.EncodeToString(img.Data)
}

// DataURL returns the image as a data: URL.
func (img Image) DataURL() string {
	return "data:" + img.MediaType + ";base64," + img.Base64()
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema. It is the schema name for OpenAI and the
	// cache key for validation. Kebab-case, e.g. "similar-questions".
	Name string

	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the validated JSON object when a Schema was given, and
	// the raw text otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
