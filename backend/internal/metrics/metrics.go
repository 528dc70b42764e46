package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Standard Prometheus collectors for the content guard service
var (
	// contentguard_analyses_total (counter): total analyses performed
	AnalysesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contentguard_analyses_total",
		Help: "Total number of privacy analyses performed",
	})

	// contentguard_risk_level_count{level=high|medium|low}
	RiskLevelCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contentguard_risk_level_count",
		Help: "Number of analyses per aggregate risk level",
	}, []string{"level"})

	// contentguard_finding_count{category=email|phone|...}
	FindingCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contentguard_finding_count",
		Help: "Number of findings detected per category",
	}, []string{"category"})

	// contentguard_oracle_failures_total{reason=transport|status|parse}
	OracleFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contentguard_oracle_failures_total",
		Help: "Number of failed AI oracle calls, by failure reason",
	}, []string{"reason"})

	// contentguard_gate_decision_count{decision=ALLOW|DENY}
	GateDecisionCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contentguard_gate_decision_count",
		Help: "Number of publish gate decisions",
	}, []string{"decision"})

	// contentguard_analysis_latency_seconds (histogram): analysis duration
	AnalysisLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "contentguard_analysis_latency_seconds",
		Help:    "Privacy analysis latency in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// RecordAnalysis increments the analysis counters for one run
func RecordAnalysis(riskLevel string, seconds float64) {
	AnalysesTotal.Inc()
	RiskLevelCount.WithLabelValues(riskLevel).Inc()
	AnalysisLatency.Observe(seconds)
}

// RecordFinding increments the per-category finding counter
func RecordFinding(category string) {
	FindingCount.WithLabelValues(category).Inc()
}

// RecordOracleFailure increments the oracle failure counter
func RecordOracleFailure(reason string) {
	OracleFailures.WithLabelValues(reason).Inc()
}

// RecordGateDecision increments the gate decision counter
func RecordGateDecision(decision string) {
	GateDecisionCount.WithLabelValues(decision).Inc()
}

// Safe initialization check (though promauto handles registration automatically)
func Init() {
	log.Println("[metrics] Prometheus collectors initialized")
}
