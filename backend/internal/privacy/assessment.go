package privacy

import (
	"context"
	"strings"
)

// Assessment is the structured output of an external content-risk oracle.
// Every field is optional; an entirely empty assessment is valid and
// contributes nothing.
type Assessment struct {
	PersonalNames     []string `json:"personal_names"`
	OrganizationNames []string `json:"organization_names"`
	FinancialInfo     []string `json:"financial_info"`
	Locations         []string `json:"locations"`
	ConfidentialInfo  []string `json:"confidential_info"`
}

// Assessor is the optional external oracle capability. Implementations own
// their transport and timeout; an error (or a nil assessment) means "no AI
// findings this call" and is never fatal to an analysis.
// Implementations must be safe for concurrent use.
type Assessor interface {
	Assess(ctx context.Context, text string) (*Assessment, error)
}

// adaptAssessment translates the oracle's category buckets into findings.
// Severity is fixed per bucket. Offsets use the same literal substring
// search as the pattern detectors; a value the oracle paraphrased rather
// than quoted yields offset -1 and is kept for risk and suggestions but
// excluded from redaction.
func adaptAssessment(text string, a *Assessment) []Finding {
	if a == nil {
		return nil
	}
	var findings []Finding
	add := func(values []string, category Category, severity Severity) {
		for _, v := range values {
			if v == "" {
				continue
			}
			findings = append(findings, Finding{
				Category: category,
				Value:    v,
				Severity: severity,
				Offset:   strings.Index(text, v),
				Source:   SourceAI,
			})
		}
	}
	add(a.PersonalNames, CategoryAIPerson, SeverityHigh)
	add(a.OrganizationNames, CategoryAIOrganization, SeverityMedium)
	add(a.FinancialInfo, CategoryAIFinancial, SeverityHigh)
	add(a.Locations, CategoryAILocation, SeverityMedium)
	add(a.ConfidentialInfo, CategoryAIConfidential, SeverityHigh)
	return findings
}
