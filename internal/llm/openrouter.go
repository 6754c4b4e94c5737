package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "google/gemini-3-flash-preview"

	// Attribution headers OpenRouter shows on its usage dashboard.
	openRouterReferer = "https://github.com/abhisek/wordwise"
	openRouterTitle   = "Wordwise"
)

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible endpoint. Model
// IDs are vendor-qualified ("google/gemini-3-flash-preview") and passed
// through unmapped; image parts go out as OpenAI image_url blocks.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenRouterModel
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	}, &attributionDoer{next: http.DefaultClient})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// attributionDoer stamps every request with the app's OpenRouter headers.
type attributionDoer struct {
	next openai.HTTPDoer
}

func (d *attributionDoer) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return d.next.Do(req)
}
