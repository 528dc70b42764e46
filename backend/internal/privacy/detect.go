package privacy

import (
	"regexp"
	"strings"
)

// detector produces zero or more candidate findings from raw text.
// Detectors are independent of each other; matches from different
// categories may overlap in the text and that is accepted, not resolved.
type detector interface {
	Detect(text string) []Finding
}

// patternDetector is the matching primitive shared by all deterministic
// detectors: one compiled pattern, one category, one fixed severity.
type patternDetector struct {
	category Category
	severity Severity
	re       *regexp.Regexp
}

// Detect emits one finding per match. The offset is deliberately computed
// by searching for the matched literal from the start of the text rather
// than taking the match engine's position: duplicate literal values always
// collapse to the offset of their first occurrence. The redaction engine
// depends on exactly this behavior.
func (d patternDetector) Detect(text string) []Finding {
	matches := d.re.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	findings := make([]Finding, 0, len(matches))
	for _, m := range matches {
		findings = append(findings, Finding{
			Category: d.category,
			Value:    m,
			Severity: d.severity,
			Offset:   strings.Index(text, m),
			Source:   SourcePattern,
		})
	}
	return findings
}

// Registry of deterministic pattern detectors. Declaration order is the
// detection order, which fixes the tie-break order for equal redaction
// offsets. Patterns use bounded quantifiers throughout; RE2 guarantees
// linear-time matching regardless.
var patternDetectors = []patternDetector{
	{CategoryEmail, SeverityHigh,
		regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)},
	{CategoryPhone, SeverityHigh,
		regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)},
	{CategoryNationalID, SeverityHigh,
		regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{CategoryPaymentCard, SeverityHigh,
		regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`)},
	{CategoryBankAccount, SeverityHigh,
		regexp.MustCompile(`\b\d{8,17}\b`)},
	{CategoryRoutingNumber, SeverityHigh,
		regexp.MustCompile(`\b\d{9}\b`)},
	{CategoryCurrencyAmount, SeverityMedium,
		regexp.MustCompile(`\$\s?\d{1,15}(?:,\d{3}){0,5}(?:\.\d{1,2})?`)},
	{CategoryStreetAddress, SeverityMedium,
		regexp.MustCompile(`\b\d{1,6}\s(?:[A-Z][A-Za-z]+\s){1,4}(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way|Place|Pl)\b`)},
	{CategoryPostalCode, SeverityMedium,
		regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)},
	{CategoryGeoCoordinates, SeverityHigh,
		regexp.MustCompile(`[-+]?\d{1,3}\.\d{3,8},\s*[-+]?\d{1,3}\.\d{3,8}`)},
	{CategoryIPAddress, SeverityMedium,
		regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)},
	{CategoryAPIKey, SeverityHigh,
		regexp.MustCompile(`\b[A-Za-z0-9]{20,}\b`)},
}

// detectAll runs the full registry followed by the contextual detectors
// and returns findings in detection order.
func detectAll(text string) []Finding {
	var findings []Finding
	for _, d := range patternDetectors {
		findings = append(findings, d.Detect(text)...)
	}
	for _, d := range contextualDetectors {
		findings = append(findings, d.Detect(text)...)
	}
	return findings
}
