package privacy

import "regexp"

// Contextual detectors layer vocabulary-driven patterns on the same
// matching primitive as the registry: a capitalized word trailed by a
// business-entity suffix, and a locative trigger phrase followed by a
// capitalized place name.

var organizationSuffixes = []string{
	"Inc", "LLC", "Corp", "Corporation", "Ltd", "Limited", "Company", "Co",
	"Group", "Holdings", "Partners", "Ventures", "Technologies", "Solutions",
	"Systems", "Industries", "Enterprises", "Labs",
}

var locationTriggers = []string{
	"located", "based", "office", "offices", "headquarters", "building",
}

var contextualDetectors = []patternDetector{
	{CategoryOrganization, SeverityMedium, regexp.MustCompile(
		`\b[A-Z][A-Za-z]+\s(?:` + joinAlternatives(organizationSuffixes) + `)\b`)},
	{CategoryLocationContext, SeverityMedium, regexp.MustCompile(
		`\b(?i:` + joinAlternatives(locationTriggers) + `)\s(?:at|in|near)\s[A-Z][A-Za-z]+(?:\s[A-Z][A-Za-z]+){0,3}`)},
}

func joinAlternatives(words []string) string {
	alt := ""
	for i, w := range words {
		if i > 0 {
			alt += "|"
		}
		alt += regexp.QuoteMeta(w)
	}
	return alt
}
