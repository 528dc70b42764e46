package privacy

import "sort"

// placeholders maps each category to its fixed redaction marker. AI-sourced
// variants share markers with their deterministic counterparts so that
// consumers see one vocabulary of placeholders.
var placeholders = map[Category]string{
	CategoryEmail:           "[EMAIL_REDACTED]",
	CategoryPhone:           "[PHONE_REDACTED]",
	CategoryNationalID:      "[SSN_REDACTED]",
	CategoryPaymentCard:     "[CARD_REDACTED]",
	CategoryBankAccount:     "[ACCOUNT_REDACTED]",
	CategoryRoutingNumber:   "[ROUTING_REDACTED]",
	CategoryCurrencyAmount:  "[AMOUNT_REDACTED]",
	CategoryStreetAddress:   "[ADDRESS_REDACTED]",
	CategoryPostalCode:      "[POSTAL_CODE_REDACTED]",
	CategoryGeoCoordinates:  "[COORDINATES_REDACTED]",
	CategoryIPAddress:       "[IP_REDACTED]",
	CategoryAPIKey:          "[API_KEY_REDACTED]",
	CategoryPersonName:      "[NAME_REDACTED]",
	CategoryOrganization:    "[ORG_REDACTED]",
	CategoryLocationContext: "[LOCATION_REDACTED]",
	CategoryConfidential:    "[CONFIDENTIAL_REDACTED]",
	CategoryAIPerson:        "[NAME_REDACTED]",
	CategoryAIOrganization:  "[ORG_REDACTED]",
	CategoryAIFinancial:     "[FINANCIAL_REDACTED]",
	CategoryAILocation:      "[LOCATION_REDACTED]",
	CategoryAIConfidential:  "[CONFIDENTIAL_REDACTED]",
}

const genericPlaceholder = "[REDACTED]"

// PlaceholderFor returns the redaction marker for a category, falling back
// to the generic marker for categories outside the table.
func PlaceholderFor(c Category) string {
	if p, ok := placeholders[c]; ok {
		return p
	}
	return genericPlaceholder
}

// redact rewrites text replacing each finding's span with its category
// placeholder. Findings are applied in descending offset order so that
// every edit happens to the right of the spans still pending; lower
// offsets stay valid throughout. Findings whose value was not found
// verbatim (offset -1) are skipped.
//
// Equal offsets are applied in encounter order. When two findings share an
// offset (duplicate literal values resolve to the same first occurrence)
// the later one operates on already-rewritten text, which can mangle the
// output if the value lengths differ. That behavior is intentional and
// asserted by downstream tests; do not reorder or deduplicate here.
func redact(text string, findings []Finding) (string, map[string]string) {
	applied := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if f.Offset >= 0 {
			applied = append(applied, f)
		}
	}
	sort.SliceStable(applied, func(i, j int) bool {
		return applied[i].Offset > applied[j].Offset
	})

	out := text
	redactionMap := make(map[string]string)
	for _, f := range applied {
		start := f.Offset
		if start > len(out) {
			start = len(out)
		}
		end := f.Offset + len(f.Value)
		if end > len(out) {
			end = len(out)
		}
		placeholder := PlaceholderFor(f.Category)
		out = out[:start] + placeholder + out[end:]
		redactionMap[f.Value] = placeholder
	}
	return out, redactionMap
}
