package provider

import (
	"net/http"
	"time"
)

// Message is a single chat message in the normalized request shape.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a normalized completion request across providers.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// Choice is one completion alternative in a normalized response.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// ChatResponse is a normalized completion response across providers.
type ChatResponse struct {
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

// Provider is the interface all completion backends implement.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// ForwardRequest sends the request to the provider and returns the
	// raw response. Relative request URLs are resolved against the
	// provider's base URL.
	ForwardRequest(r *http.Request) (*http.Response, error)

	// ParseResponse parses a raw response body into the normalized shape.
	ParseResponse(body []byte) (*ChatResponse, error)
}

// BaseProvider provides common functionality for all providers.
type BaseProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewBaseProvider creates a base provider with the given request timeout.
func NewBaseProvider(baseURL, apiKey string, timeout time.Duration) *BaseProvider {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &BaseProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}
