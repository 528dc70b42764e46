package privacy

import (
	"context"
	"fmt"
	"log"
)

// Engine orchestrates detection, risk aggregation, redaction and
// suggestion generation behind two entry points: Analyze and Filter.
// It holds no mutable state after construction and is safe for
// concurrent use.
type Engine struct {
	assessor      Assessor // nil = pattern-only analysis
	filterEnabled bool     // process-wide default for Filter gating
	logger        *log.Logger
}

// NewEngine creates an engine. assessor may be nil; the engine is fully
// functional without it. filterEnabled is the process-wide configuration
// flag consulted by Filter.
func NewEngine(assessor Assessor, filterEnabled bool, logger *log.Logger) *Engine {
	return &Engine{
		assessor:      assessor,
		filterEnabled: filterEnabled,
		logger:        logger,
	}
}

// Analyze runs the full pipeline over text and returns a complete result.
// Pattern detection always runs; the external oracle is consulted only
// when configured, and any oracle failure is logged and degrades to
// pattern-only results. An unexpected internal failure is recovered here
// and reported as a high-risk result: an analysis failure must never be
// mistaken for "no risk found".
func (e *Engine) Analyze(ctx context.Context, text string) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logError("analysis panic, failing closed: %v", r)
			res = failClosed(text, r)
		}
	}()

	findings := detectAll(text)

	if e.assessor != nil {
		assessment, err := e.assessor.Assess(ctx, text)
		if err != nil {
			e.logWarn("oracle assessment failed, continuing pattern-only: %v", err)
		} else {
			findings = append(findings, adaptAssessment(text, assessment)...)
		}
	}

	risk := riskLevel(findings)
	filtered, redactionMap := redact(text, findings)

	return &Result{
		OriginalText: text,
		FilteredText: filtered,
		Findings:     findings,
		RiskLevel:    risk,
		Suggestions:  suggestions(findings, risk),
		RedactionMap: redactionMap,
	}
}

// failClosed builds the degraded result returned when analysis itself
// broke. The text is passed through unredacted, so the high risk level is
// the only thing standing between the caller and publishing it.
func failClosed(text string, cause interface{}) *Result {
	return &Result{
		OriginalText: text,
		FilteredText: text,
		Findings:     []Finding{},
		RiskLevel:    RiskHigh,
		Suggestions: []string{
			"Automated privacy analysis failed; treat this content as high risk and review it manually.",
		},
		RedactionMap: map[string]string{},
		Error:        fmt.Sprintf("analysis failed: %v", cause),
	}
}

// FilterOptions controls the gated Filter entry point.
type FilterOptions struct {
	// EnableFilter is the caller-side switch; when false the text passes
	// through untouched regardless of configuration.
	EnableFilter bool `json:"enable_filter"`
	// ForceFilter runs the filter even when the process-wide flag is off.
	ForceFilter bool `json:"force_filter"`
}

// DefaultFilterOptions returns the options used when a caller supplies
// none: filtering requested, not forced.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{EnableFilter: true}
}

// FilterResult is the outcome of a gated filter call. Analysis is nil
// when filtering was disabled for this call.
type FilterResult struct {
	FilteredText string  `json:"filtered_text"`
	Analysis     *Result `json:"analysis,omitempty"`
	Enabled      bool    `json:"enabled"`
}

// Filter analyzes and redacts text when enabled. Filtering runs when the
// caller asks for it and either the process-wide flag is on or the caller
// forces it; otherwise the input is returned unchanged with no analysis.
func (e *Engine) Filter(ctx context.Context, text string, opts FilterOptions) FilterResult {
	enabled := opts.EnableFilter && (e.filterEnabled || opts.ForceFilter)
	if !enabled {
		return FilterResult{FilteredText: text, Enabled: false}
	}
	res := e.Analyze(ctx, text)
	return FilterResult{FilteredText: res.FilteredText, Analysis: res, Enabled: true}
}

// IsSafe reports whether a full analysis of text yields low risk.
func (e *Engine) IsSafe(ctx context.Context, text string) bool {
	return e.Analyze(ctx, text).RiskLevel == RiskLow
}

// SuggestionReport is the suggestions-only view: advice and value-free
// finding summaries, never the raw matched substrings.
type SuggestionReport struct {
	RiskLevel   RiskLevel        `json:"risk_level"`
	Suggestions []string         `json:"suggestions"`
	Findings    []FindingSummary `json:"findings"`
}

// Suggestions runs an analysis and returns only the advisory view.
func (e *Engine) Suggestions(ctx context.Context, text string) *SuggestionReport {
	res := e.Analyze(ctx, text)
	return &SuggestionReport{
		RiskLevel:   res.RiskLevel,
		Suggestions: res.Suggestions,
		Findings:    Summaries(res.Findings),
	}
}

func (e *Engine) logWarn(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Printf("[WARN] "+format, args...)
	}
}

func (e *Engine) logError(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Printf("[ERROR] "+format, args...)
	}
}
