package gate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inkwell-labs/content-guard/backend/internal/privacy"
)

const testPolicies = `
permit (
    principal,
    action == Action::"publish",
    resource
)
when { context.risk_level == "low" };

@obligation("REDACT")
permit (
    principal,
    action == Action::"publish",
    resource
)
when { context.risk_level == "medium" && context.filtered };

forbid (
    principal,
    action == Action::"publish",
    resource
)
when { context.risk_level == "high" || context.degraded };
`

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policies.cedar")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}
	return path
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(writePolicyFile(t, testPolicies))
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}

func TestEvaluateLowRiskAllows(t *testing.T) {
	engine := newTestEngine(t)
	res := &privacy.Result{RiskLevel: privacy.RiskLow}

	eval := engine.Evaluate(res, true)
	if eval.Decision != ALLOW {
		t.Errorf("decision = %s (%s), want ALLOW", eval.Decision, eval.Reason)
	}
}

func TestEvaluateHighRiskDenies(t *testing.T) {
	engine := newTestEngine(t)
	res := &privacy.Result{
		RiskLevel: privacy.RiskHigh,
		Findings: []privacy.Finding{
			{Category: privacy.CategoryEmail, Severity: privacy.SeverityHigh, Source: privacy.SourcePattern},
		},
	}

	eval := engine.Evaluate(res, true)
	if eval.Decision != DENY {
		t.Errorf("decision = %s, want DENY", eval.Decision)
	}
}

func TestEvaluateMediumRequiresFilter(t *testing.T) {
	engine := newTestEngine(t)
	res := &privacy.Result{
		RiskLevel: privacy.RiskMedium,
		Findings: []privacy.Finding{
			{Category: privacy.CategoryPostalCode, Severity: privacy.SeverityMedium, Source: privacy.SourcePattern},
		},
	}

	if eval := engine.Evaluate(res, true); eval.Decision != ALLOW {
		t.Errorf("filtered medium: decision = %s, want ALLOW", eval.Decision)
	}
	if eval := engine.Evaluate(res, false); eval.Decision != DENY {
		t.Errorf("unfiltered medium: decision = %s, want DENY", eval.Decision)
	}
}

func TestEvaluateMediumCarriesRedactObligation(t *testing.T) {
	engine := newTestEngine(t)
	res := &privacy.Result{
		RiskLevel: privacy.RiskMedium,
		Findings: []privacy.Finding{
			{Category: privacy.CategoryPostalCode, Severity: privacy.SeverityMedium, Source: privacy.SourcePattern},
		},
	}

	eval := engine.Evaluate(res, true)
	if len(eval.Obligations) != 1 || eval.Obligations[0].Type != "REDACT" {
		t.Errorf("obligations = %+v, want one REDACT", eval.Obligations)
	}
}

func TestEvaluateDegradedResultDenies(t *testing.T) {
	engine := newTestEngine(t)
	res := &privacy.Result{RiskLevel: privacy.RiskHigh, Error: "analysis failed: boom"}

	if eval := engine.Evaluate(res, true); eval.Decision != DENY {
		t.Errorf("decision = %s, want DENY for degraded analysis", eval.Decision)
	}
}

func TestNewEngineRejectsBadPolicy(t *testing.T) {
	path := writePolicyFile(t, "this is not cedar;")
	if _, err := NewEngine(path); err == nil {
		t.Fatalf("expected error for malformed policy file")
	}
}

func TestReloadUpdatesVersion(t *testing.T) {
	path := writePolicyFile(t, testPolicies)
	engine, err := NewEngine(path)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	v1 := engine.PolicyVersion()
	if v1 == "" {
		t.Fatalf("expected a policy version after load")
	}

	relaxed := `permit (principal, action == Action::"publish", resource);`
	if err := os.WriteFile(path, []byte(relaxed), 0644); err != nil {
		t.Fatalf("failed to rewrite policy file: %v", err)
	}
	if err := engine.reload(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if engine.PolicyVersion() == v1 {
		t.Errorf("expected version to change after reload")
	}

	res := &privacy.Result{RiskLevel: privacy.RiskHigh}
	if eval := engine.Evaluate(res, false); eval.Decision != ALLOW {
		t.Errorf("relaxed policy should allow, got %s", eval.Decision)
	}
}
