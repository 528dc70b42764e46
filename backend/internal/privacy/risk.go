package privacy

// riskLevel folds findings into a single ordinal classification. Any
// high-severity finding dominates; otherwise two or more medium findings
// escalate to high, exactly one medium yields medium, and anything else
// (including zero findings) is low. No weighting, no normalization by
// content length.
func riskLevel(findings []Finding) RiskLevel {
	medium := 0
	for _, f := range findings {
		switch f.Severity {
		case SeverityHigh:
			return RiskHigh
		case SeverityMedium:
			medium++
		}
	}
	switch {
	case medium > 1:
		return RiskHigh
	case medium == 1:
		return RiskMedium
	default:
		return RiskLow
	}
}
