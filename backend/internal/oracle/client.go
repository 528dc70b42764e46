// Package oracle implements the optional AI-assisted privacy assessor on
// top of an OpenAI-compatible completion provider. The model is asked to
// quote sensitive strings verbatim rather than report offsets, because
// small models get offsets wrong; the engine locates occurrences in the
// original text itself.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/inkwell-labs/content-guard/backend/internal/metrics"
	"github.com/inkwell-labs/content-guard/backend/internal/privacy"
	"github.com/inkwell-labs/content-guard/backend/internal/provider"
)

const assessPrompt = `You are a content privacy reviewer. Analyze the following text for information that could expose a person or organization.
Return your analysis strictly as a JSON object with the following fields, each an array of exact substrings quoted verbatim from the text:
- personal_names: full names of real people.
- organization_names: names of companies or organizations.
- financial_info: salaries, account details, revenue figures, payment information.
- locations: addresses or phrases that reveal where someone lives or works.
- confidential_info: anything marked internal, secret, or not for publication.

Omit a field or use an empty array when nothing matches. Do not explain.

Text:
%s

JSON Output:`

// Client calls a completion provider and parses its output into the
// engine's assessment shape. It implements privacy.Assessor.
type Client struct {
	provider provider.Provider
	model    string
	logger   *log.Logger
}

// NewClient creates an oracle client for the given provider and model.
func NewClient(p provider.Provider, model string, logger *log.Logger) *Client {
	return &Client{provider: p, model: model, logger: logger}
}

// Assess sends text to the provider and parses the structured assessment
// out of the completion. Any transport or parse failure is returned as an
// error; the engine treats that as "no AI findings this call".
func (c *Client) Assess(ctx context.Context, text string) (*privacy.Assessment, error) {
	req := provider.ChatRequest{
		Model: c.model,
		Messages: []provider.Message{
			{Role: "user", Content: fmt.Sprintf(assessPrompt, text)},
		},
		Temperature: 0.1, // low temperature for consistent JSON
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, "/v1/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.provider.ForwardRequest(httpReq)
	if err != nil {
		metrics.RecordOracleFailure("transport")
		return nil, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordOracleFailure("status")
		return nil, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	rawResp, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordOracleFailure("transport")
		return nil, fmt.Errorf("failed to read oracle response: %w", err)
	}

	parsed, err := c.provider.ParseResponse(rawResp)
	if err != nil {
		metrics.RecordOracleFailure("parse")
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if len(parsed.Choices) == 0 {
		metrics.RecordOracleFailure("parse")
		return nil, fmt.Errorf("no choices returned from oracle")
	}

	assessment, err := extractAssessment(parsed.Choices[0].Message.Content)
	if err != nil {
		metrics.RecordOracleFailure("parse")
		return nil, err
	}
	c.logDebug("oracle assessment: %d names, %d orgs, %d financial, %d locations, %d confidential",
		len(assessment.PersonalNames), len(assessment.OrganizationNames),
		len(assessment.FinancialInfo), len(assessment.Locations),
		len(assessment.ConfidentialInfo))
	return assessment, nil
}

// extractAssessment pulls the JSON object out of a completion that may be
// wrapped in prose or code fences.
func extractAssessment(content string) (*privacy.Assessment, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start > end {
		return nil, fmt.Errorf("failed to find JSON object in oracle response")
	}
	var assessment privacy.Assessment
	if err := json.Unmarshal([]byte(content[start:end+1]), &assessment); err != nil {
		return nil, fmt.Errorf("failed to parse oracle JSON: %w", err)
	}
	return &assessment, nil
}

func (c *Client) logDebug(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf("[DEBUG] "+format, args...)
	}
}
