package privacy

// advice maps each category to a fixed remediation string. AI-sourced
// variants reuse the advice of their deterministic counterparts.
var advice = map[Category]string{
	CategoryEmail:           "Avoid exposing direct email addresses; point readers to a contact form instead.",
	CategoryPhone:           "Remove personal phone numbers; use a business line or scheduling link.",
	CategoryNationalID:      "Never publish national identification numbers. Remove them entirely.",
	CategoryPaymentCard:     "Never publish payment card numbers. Remove them entirely.",
	CategoryBankAccount:     "Remove bank account numbers; share payment details only over secure channels.",
	CategoryRoutingNumber:   "Remove bank routing numbers; share payment details only over secure channels.",
	CategoryCurrencyAmount:  "Consider whether specific monetary amounts need to be public.",
	CategoryStreetAddress:   "Replace street addresses with a city or region when possible.",
	CategoryPostalCode:      "Postal codes can narrow down a location; consider removing them.",
	CategoryGeoCoordinates:  "Remove precise coordinates; they pinpoint an exact location.",
	CategoryIPAddress:       "Remove IP addresses; they can expose network infrastructure.",
	CategoryAPIKey:          "Revoke and rotate any credential that appears in content, then remove it.",
	CategoryPersonName:      "Check whether named individuals consented to being mentioned.",
	CategoryOrganization:    "Check whether the organization should be named publicly.",
	CategoryLocationContext: "Phrases describing where someone is located can enable tracking; generalize them.",
	CategoryConfidential:    "Content marked confidential should not be published externally.",
	CategoryAIPerson:        "Check whether named individuals consented to being mentioned.",
	CategoryAIOrganization:  "Check whether the organization should be named publicly.",
	CategoryAIFinancial:     "Review financial details before publishing; prefer aggregate figures.",
	CategoryAILocation:      "Phrases describing where someone is located can enable tracking; generalize them.",
	CategoryAIConfidential:  "Content marked confidential should not be published externally.",
}

var highRiskWarnings = []string{
	"High privacy risk: review every flagged item before publishing this content.",
	"Prefer deleting sensitive details over masking them when the information adds no value.",
}

var mediumRiskWarnings = []string{
	"Moderate privacy risk: double-check the flagged items before publishing.",
	"Generalize specifics (places, amounts, organizations) where the detail is not essential.",
}

// suggestions emits one advisory per distinct category in first-seen order,
// appends the fixed warnings for the aggregate risk, and deduplicates the
// final list while preserving order.
func suggestions(findings []Finding, risk RiskLevel) []string {
	var out []string
	for _, f := range findings {
		if s, ok := advice[f.Category]; ok {
			out = append(out, s)
		}
	}
	switch risk {
	case RiskHigh:
		out = append(out, highRiskWarnings...)
	case RiskMedium:
		out = append(out, mediumRiskWarnings...)
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
