package provider

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// OllamaProvider implements the Provider interface for a local Ollama
// server through its OpenAI-compatible endpoint.
type OllamaProvider struct {
	*BaseProvider
}

// OllamaChatResponse represents an Ollama chat response. Ollama's
// OpenAI-compatible endpoint returns the OpenAI shape; the native /api
// shape with a single message is accepted as a fallback.
type OllamaChatResponse struct {
	Model   string             `json:"model"`
	Choices []OpenAIChatChoice `json:"choices"`
	Message *Message           `json:"message,omitempty"`
	Done    bool               `json:"done,omitempty"`
}

// NewOllamaProvider creates a new Ollama provider.
func NewOllamaProvider(baseURL string, timeout time.Duration) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaProvider{
		BaseProvider: NewBaseProvider(baseURL, "", timeout),
	}
}

// Name returns the provider identifier.
func (o *OllamaProvider) Name() string {
	return "ollama"
}

// ForwardRequest sends the request to Ollama, resolving relative URLs
// against the configured base URL.
func (o *OllamaProvider) ForwardRequest(r *http.Request) (*http.Response, error) {
	if !r.URL.IsAbs() {
		base, err := url.Parse(o.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", o.BaseURL, err)
		}
		r.URL = base.ResolveReference(r.URL)
		r.Host = r.URL.Host
	}
	r.Header.Set("Content-Type", "application/json")
	return o.Client.Do(r)
}

// ParseResponse parses an Ollama response body into the normalized shape.
func (o *OllamaProvider) ParseResponse(body []byte) (*ChatResponse, error) {
	var resp OllamaChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse Ollama response: %w", err)
	}
	out := &ChatResponse{Model: resp.Model}
	for _, c := range resp.Choices {
		out.Choices = append(out.Choices, Choice{
			Index:        c.Index,
			Message:      c.Message,
			FinishReason: c.FinishReason,
		})
	}
	if len(out.Choices) == 0 && resp.Message != nil {
		out.Choices = append(out.Choices, Choice{Message: *resp.Message})
	}
	return out, nil
}
