package privacy

// Severity is the fixed per-category weight assigned at detection time.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// RiskLevel is the aggregate classification for a whole analysis run.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// Source records the provenance of a finding. It is kept for auditing and
// debugging and never participates in risk scoring.
type Source string

const (
	SourcePattern Source = "pattern"
	SourceAI      Source = "ai-assisted"
)

// Category identifies the kind of sensitive content a finding covers.
type Category string

const (
	CategoryEmail           Category = "email"
	CategoryPhone           Category = "phone"
	CategoryNationalID      Category = "national_id"
	CategoryPaymentCard     Category = "payment_card"
	CategoryBankAccount     Category = "bank_account"
	CategoryRoutingNumber   Category = "routing_number"
	CategoryCurrencyAmount  Category = "currency_amount"
	CategoryStreetAddress   Category = "street_address"
	CategoryPostalCode      Category = "postal_code"
	CategoryGeoCoordinates  Category = "geo_coordinates"
	CategoryIPAddress       Category = "ip_address"
	CategoryAPIKey          Category = "api_key"
	CategoryPersonName      Category = "person_name"
	CategoryOrganization    Category = "organization"
	CategoryLocationContext Category = "location_context"
	CategoryConfidential    Category = "confidential"

	// AI-sourced variants, produced only by the assessment adapter.
	CategoryAIPerson       Category = "ai_person"
	CategoryAIOrganization Category = "ai_organization"
	CategoryAIFinancial    Category = "ai_financial"
	CategoryAILocation     Category = "ai_location"
	CategoryAIConfidential Category = "ai_confidential"
)

// Finding is a single detected span of concern.
//
// Offset is the position of the first occurrence of Value in the original
// text, found by literal substring search from the start of the text. It is
// -1 when the value does not occur verbatim (possible for AI-sourced
// paraphrases); such findings count toward risk and suggestions but are
// skipped during redaction.
type Finding struct {
	Category Category `json:"category"`
	Value    string   `json:"value"`
	Severity Severity `json:"severity"`
	Offset   int      `json:"offset"`
	Source   Source   `json:"source"`
}

// Result aggregates a single analysis run. Both the findings slice and the
// redaction map are built fresh per call; nothing is shared across calls.
type Result struct {
	OriginalText string            `json:"original_text"`
	FilteredText string            `json:"filtered_text"`
	Findings     []Finding         `json:"findings"`
	RiskLevel    RiskLevel         `json:"risk_level"`
	Suggestions  []string          `json:"suggestions"`
	RedactionMap map[string]string `json:"redaction_map"`

	// Error carries an explanatory marker when the engine had to fail
	// closed. Empty on a normal run.
	Error string `json:"error,omitempty"`
}

// FindingSummary is the value-free projection of a finding used by the
// suggestions-only view and by API consumers that must not see raw matches.
type FindingSummary struct {
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Placeholder string   `json:"placeholder"`
}

// Summaries projects findings into their value-free form.
func Summaries(findings []Finding) []FindingSummary {
	out := make([]FindingSummary, 0, len(findings))
	for _, f := range findings {
		out = append(out, FindingSummary{
			Category:    f.Category,
			Severity:    f.Severity,
			Placeholder: PlaceholderFor(f.Category),
		})
	}
	return out
}
