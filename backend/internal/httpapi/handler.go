package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/content-guard/backend/internal/audit"
	"github.com/inkwell-labs/content-guard/backend/internal/config"
	"github.com/inkwell-labs/content-guard/backend/internal/gate"
	"github.com/inkwell-labs/content-guard/backend/internal/metrics"
	"github.com/inkwell-labs/content-guard/backend/internal/privacy"
)

// HandlerConfig holds the collaborators shared by all API handlers
type HandlerConfig struct {
	Config *config.Config
	Engine *privacy.Engine
	Gate   *gate.Engine // nil = no publish gate
	Audit  *audit.Logger
	Logger *log.Logger
}

// ErrorResponse is the JSON error envelope for all endpoints
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	RequestID string                 `json:"request_id"`
	Analysis  *privacy.Result        `json:"analysis"`
	Gate      *gate.EvaluationResult `json:"gate,omitempty"`
}

type filterRequest struct {
	Text string `json:"text"`
	// Pointer so that an absent field keeps its default of true.
	EnableFilter *bool `json:"enable_filter"`
	ForceFilter  bool  `json:"force_filter"`
}

type filterResponse struct {
	RequestID    string                 `json:"request_id"`
	FilteredText string                 `json:"filtered_text"`
	Analysis     *privacy.Result        `json:"analysis,omitempty"`
	Enabled      bool                   `json:"enabled"`
	Gate         *gate.EvaluationResult `json:"gate,omitempty"`
}

type checkResponse struct {
	RequestID string            `json:"request_id"`
	Safe      bool              `json:"safe"`
	RiskLevel privacy.RiskLevel `json:"risk_level"`
}

// AnalyzeHandler returns the handler for POST /api/analyze
func AnalyzeHandler(hc *HandlerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		requestID := uuid.New().String()

		var req analyzeRequest
		if !hc.decodeBody(w, r, requestID, &req) {
			return
		}

		res := hc.Engine.Analyze(r.Context(), req.Text)
		hc.recordAnalysis(res, startTime)

		resp := analyzeResponse{RequestID: requestID, Analysis: res}
		if hc.Gate != nil {
			eval := hc.Gate.Evaluate(res, true)
			metrics.RecordGateDecision(string(eval.Decision))
			resp.Gate = &eval
		}

		hc.auditLog(audit.Entry{
			RequestID:    requestID,
			Action:       "analyze",
			RiskLevel:    string(res.RiskLevel),
			Categories:   categoryNames(res.Findings),
			FindingCount: len(res.Findings),
			FilterUsed:   true,
			GateDecision: gateDecision(resp.Gate),
			GateReason:   gateReason(resp.Gate),
			Degraded:     res.Error != "",
			Latency:      time.Since(startTime),
		})

		writeJSON(w, http.StatusOK, requestID, resp)
	}
}

// FilterHandler returns the handler for POST /api/filter
func FilterHandler(hc *HandlerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		requestID := uuid.New().String()

		var req filterRequest
		if !hc.decodeBody(w, r, requestID, &req) {
			return
		}

		opts := privacy.DefaultFilterOptions()
		if req.EnableFilter != nil {
			opts.EnableFilter = *req.EnableFilter
		}
		opts.ForceFilter = req.ForceFilter

		result := hc.Engine.Filter(r.Context(), req.Text, opts)

		resp := filterResponse{
			RequestID:    requestID,
			FilteredText: result.FilteredText,
			Analysis:     result.Analysis,
			Enabled:      result.Enabled,
		}

		entry := audit.Entry{
			RequestID:  requestID,
			Action:     "filter",
			FilterUsed: result.Enabled,
			Latency:    time.Since(startTime),
		}
		if result.Analysis != nil {
			hc.recordAnalysis(result.Analysis, startTime)
			entry.RiskLevel = string(result.Analysis.RiskLevel)
			entry.Categories = categoryNames(result.Analysis.Findings)
			entry.FindingCount = len(result.Analysis.Findings)
			entry.Degraded = result.Analysis.Error != ""
			if hc.Gate != nil {
				eval := hc.Gate.Evaluate(result.Analysis, result.Enabled)
				metrics.RecordGateDecision(string(eval.Decision))
				resp.Gate = &eval
				entry.GateDecision = string(eval.Decision)
				entry.GateReason = eval.Reason
			}
		}
		hc.auditLog(entry)

		writeJSON(w, http.StatusOK, requestID, resp)
	}
}

// CheckHandler returns the handler for POST /api/check
func CheckHandler(hc *HandlerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		requestID := uuid.New().String()

		var req analyzeRequest
		if !hc.decodeBody(w, r, requestID, &req) {
			return
		}

		res := hc.Engine.Analyze(r.Context(), req.Text)
		hc.recordAnalysis(res, startTime)

		hc.auditLog(audit.Entry{
			RequestID:    requestID,
			Action:       "check",
			RiskLevel:    string(res.RiskLevel),
			FindingCount: len(res.Findings),
			FilterUsed:   true,
			Degraded:     res.Error != "",
			Latency:      time.Since(startTime),
		})

		writeJSON(w, http.StatusOK, requestID, checkResponse{
			RequestID: requestID,
			Safe:      res.RiskLevel == privacy.RiskLow,
			RiskLevel: res.RiskLevel,
		})
	}
}

// SuggestionsHandler returns the handler for POST /api/suggestions.
// The response never contains raw matched values.
func SuggestionsHandler(hc *HandlerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		requestID := uuid.New().String()

		var req analyzeRequest
		if !hc.decodeBody(w, r, requestID, &req) {
			return
		}

		report := hc.Engine.Suggestions(r.Context(), req.Text)

		hc.auditLog(audit.Entry{
			RequestID:    requestID,
			Action:       "suggest",
			RiskLevel:    string(report.RiskLevel),
			FindingCount: len(report.Findings),
			FilterUsed:   true,
			Latency:      time.Since(startTime),
		})

		writeJSON(w, http.StatusOK, requestID, report)
	}
}

// decodeBody reads and decodes the request body, answering with a 400/405
// envelope on failure. Returns false when the request was already handled.
func (hc *HandlerConfig) decodeBody(w http.ResponseWriter, r *http.Request, requestID string, dst interface{}) bool {
	if r.Method != http.MethodPost {
		sendErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use POST", requestID)
		return false
	}
	maxSize := int64(1 << 20)
	if hc.Config != nil && hc.Config.Server.MaxRequestSize > 0 {
		maxSize = hc.Config.Server.MaxRequestSize
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		hc.logError("Failed to decode request body: %v", err)
		sendErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body", requestID)
		return false
	}
	return true
}

func (hc *HandlerConfig) recordAnalysis(res *privacy.Result, startTime time.Time) {
	metrics.RecordAnalysis(string(res.RiskLevel), time.Since(startTime).Seconds())
	for _, f := range res.Findings {
		metrics.RecordFinding(string(f.Category))
	}
}

func (hc *HandlerConfig) auditLog(entry audit.Entry) {
	if hc.Audit != nil {
		hc.Audit.Log(entry)
	}
}

func categoryNames(findings []privacy.Finding) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range findings {
		c := string(f.Category)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func gateDecision(eval *gate.EvaluationResult) string {
	if eval == nil {
		return ""
	}
	return string(eval.Decision)
}

func gateReason(eval *gate.EvaluationResult) string {
	if eval == nil {
		return ""
	}
	return eval.Reason
}

// writeJSON writes a JSON response with the request id header
func writeJSON(w http.ResponseWriter, status int, requestID string, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-ContentGuard-Request-ID", requestID)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, requestID, ErrorResponse{
		Error:     code,
		Code:      code,
		Message:   message,
		RequestID: requestID,
	})
}

// Logging helpers
func (hc *HandlerConfig) logError(format string, args ...interface{}) {
	if hc.Logger != nil {
		hc.Logger.Printf("[ERROR] "+format, args...)
	}
}
