package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inkwell-labs/content-guard/backend/internal/config"
	"github.com/inkwell-labs/content-guard/backend/internal/privacy"
)

func newTestHandlerConfig() *HandlerConfig {
	return &HandlerConfig{
		Config: &config.Config{},
		Engine: privacy.NewEngine(nil, true, nil),
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAnalyzeHandler(t *testing.T) {
	hc := newTestHandlerConfig()
	rec := postJSON(t, AnalyzeHandler(hc), `{"text":"Contact me at john.doe@example.com for more info"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-ContentGuard-Request-ID") == "" {
		t.Errorf("missing request id header")
	}

	var resp struct {
		RequestID string          `json:"request_id"`
		Analysis  *privacy.Result `json:"analysis"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Analysis == nil || resp.Analysis.RiskLevel != privacy.RiskHigh {
		t.Errorf("analysis = %+v", resp.Analysis)
	}
	if want := "Contact me at [EMAIL_REDACTED] for more info"; resp.Analysis.FilteredText != want {
		t.Errorf("filtered = %q, want %q", resp.Analysis.FilteredText, want)
	}
}

func TestFilterHandlerDefaultsToEnabled(t *testing.T) {
	hc := newTestHandlerConfig()
	rec := postJSON(t, FilterHandler(hc), `{"text":"Mail a@b.io now"}`)

	var resp struct {
		FilteredText string          `json:"filtered_text"`
		Analysis     *privacy.Result `json:"analysis"`
		Enabled      bool            `json:"enabled"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.Enabled {
		t.Fatalf("filter should be enabled by default")
	}
	if !strings.Contains(resp.FilteredText, "[EMAIL_REDACTED]") {
		t.Errorf("filtered = %q", resp.FilteredText)
	}
}

func TestFilterHandlerRespectsDisable(t *testing.T) {
	hc := newTestHandlerConfig()
	rec := postJSON(t, FilterHandler(hc), `{"text":"Mail a@b.io now","enable_filter":false}`)

	var resp struct {
		FilteredText string          `json:"filtered_text"`
		Analysis     *privacy.Result `json:"analysis"`
		Enabled      bool            `json:"enabled"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Enabled {
		t.Errorf("filter should be disabled")
	}
	if resp.FilteredText != "Mail a@b.io now" {
		t.Errorf("disabled filter must echo input, got %q", resp.FilteredText)
	}
	if resp.Analysis != nil {
		t.Errorf("disabled filter must not include analysis")
	}
}

func TestCheckHandler(t *testing.T) {
	hc := newTestHandlerConfig()

	rec := postJSON(t, CheckHandler(hc), `{"text":"Nothing to see"}`)
	var safeResp checkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &safeResp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !safeResp.Safe || safeResp.RiskLevel != privacy.RiskLow {
		t.Errorf("safe response = %+v", safeResp)
	}

	rec = postJSON(t, CheckHandler(hc), `{"text":"My SSN is 123-45-6789"}`)
	var unsafeResp checkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &unsafeResp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if unsafeResp.Safe || unsafeResp.RiskLevel != privacy.RiskHigh {
		t.Errorf("unsafe response = %+v", unsafeResp)
	}
}

func TestSuggestionsHandlerHidesRawValues(t *testing.T) {
	hc := newTestHandlerConfig()
	rec := postJSON(t, SuggestionsHandler(hc), `{"text":"Mail sam@example.org today"}`)

	body := rec.Body.String()
	if strings.Contains(body, "sam@example.org") {
		t.Errorf("suggestions view leaks raw value: %s", body)
	}

	var report privacy.SuggestionReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if report.RiskLevel != privacy.RiskHigh || len(report.Findings) != 1 {
		t.Errorf("report = %+v", report)
	}
	if report.Findings[0].Placeholder != "[EMAIL_REDACTED]" {
		t.Errorf("placeholder = %q", report.Findings[0].Placeholder)
	}
}

func TestHandlersRejectNonPost(t *testing.T) {
	hc := newTestHandlerConfig()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	AnalyzeHandler(hc)(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandlersRejectMalformedBody(t *testing.T) {
	hc := newTestHandlerConfig()
	rec := postJSON(t, FilterHandler(hc), `{"text": `)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	if errResp.Code != "invalid_request" {
		t.Errorf("error code = %q", errResp.Code)
	}
}
