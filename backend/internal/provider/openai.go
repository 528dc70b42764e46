package provider

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// OpenAIProvider implements the Provider interface for OpenAI and
// OpenAI-compatible APIs (Groq, Together, vLLM and friends).
type OpenAIProvider struct {
	*BaseProvider
}

// OpenAIChatResponse represents an OpenAI chat completion response.
type OpenAIChatResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []OpenAIChatChoice `json:"choices"`
	Usage   OpenAIUsage        `json:"usage"`
}

// OpenAIChatChoice represents a choice in the response.
type OpenAIChatChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// OpenAIUsage represents token usage in the response.
type OpenAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(baseURL, apiKey string, timeout time.Duration) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIProvider{
		BaseProvider: NewBaseProvider(baseURL, apiKey, timeout),
	}
}

// Name returns the provider identifier.
func (o *OpenAIProvider) Name() string {
	return "openai"
}

// ForwardRequest sends the request to the provider, resolving relative
// URLs against the configured base URL and attaching the API key.
func (o *OpenAIProvider) ForwardRequest(r *http.Request) (*http.Response, error) {
	if !r.URL.IsAbs() {
		base, err := url.Parse(o.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", o.BaseURL, err)
		}
		r.URL = base.ResolveReference(r.URL)
		r.Host = r.URL.Host
	}
	if o.APIKey != "" {
		r.Header.Set("Authorization", "Bearer "+o.APIKey)
	}
	r.Header.Set("Content-Type", "application/json")
	return o.Client.Do(r)
}

// ParseResponse parses an OpenAI response body into the normalized shape.
func (o *OpenAIProvider) ParseResponse(body []byte) (*ChatResponse, error) {
	var resp OpenAIChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}
	out := &ChatResponse{Model: resp.Model}
	for _, c := range resp.Choices {
		out.Choices = append(out.Choices, Choice{
			Index:        c.Index,
			Message:      c.Message,
			FinishReason: c.FinishReason,
		})
	}
	return out, nil
}
