package privacy

import "testing"

func TestRedactSingleEmail(t *testing.T) {
	text := "Contact me at john.doe@example.com for more info"
	filtered, redactionMap := redact(text, detectAll(text))

	want := "Contact me at [EMAIL_REDACTED] for more info"
	if filtered != want {
		t.Errorf("filtered = %q, want %q", filtered, want)
	}
	if redactionMap["john.doe@example.com"] != "[EMAIL_REDACTED]" {
		t.Errorf("redaction map = %v", redactionMap)
	}
}

func TestRedactTwoDistinctEmails(t *testing.T) {
	text := "Email john@test.com and mary@test.com"
	filtered, _ := redact(text, detectAll(text))

	want := "Email [EMAIL_REDACTED] and [EMAIL_REDACTED]"
	if filtered != want {
		t.Errorf("filtered = %q, want %q", filtered, want)
	}
}

func TestRedactNoFindingsLeavesTextUnchanged(t *testing.T) {
	text := "Nothing sensitive here, just words."
	filtered, redactionMap := redact(text, detectAll(text))

	if filtered != text {
		t.Errorf("filtered = %q, want unchanged input", filtered)
	}
	if len(redactionMap) != 0 {
		t.Errorf("expected empty redaction map, got %v", redactionMap)
	}
}

func TestRedactSkipsNotFoundValues(t *testing.T) {
	text := "A quarterly update"
	findings := []Finding{
		{Category: CategoryAIPerson, Value: "Jane Example", Severity: SeverityHigh, Offset: -1, Source: SourceAI},
	}
	filtered, redactionMap := redact(text, findings)

	if filtered != text {
		t.Errorf("filtered = %q, want unchanged input", filtered)
	}
	if len(redactionMap) != 0 {
		t.Errorf("expected empty redaction map, got %v", redactionMap)
	}
}

func TestRedactUnknownCategoryFallsBack(t *testing.T) {
	text := "xyzzy stays secret"
	findings := []Finding{
		{Category: Category("made_up"), Value: "xyzzy", Severity: SeverityLow, Offset: 0, Source: SourcePattern},
	}
	filtered, _ := redact(text, findings)

	want := "[REDACTED] stays secret"
	if filtered != want {
		t.Errorf("filtered = %q, want %q", filtered, want)
	}
}

// Last-write-wins when the same literal value is redacted under two
// categories.
func TestRedactMapLastWriteWins(t *testing.T) {
	text := "number 123456789 here"
	findings := []Finding{
		{Category: CategoryBankAccount, Value: "123456789", Severity: SeverityHigh, Offset: 7, Source: SourcePattern},
		{Category: CategoryRoutingNumber, Value: "123456789", Severity: SeverityHigh, Offset: 7, Source: SourcePattern},
	}
	_, redactionMap := redact(text, findings)

	if redactionMap["123456789"] != "[ROUTING_REDACTED]" {
		t.Errorf("redaction map = %v, want routing placeholder to win", redactionMap)
	}
}

// Two findings at the same offset with different value lengths: the second
// application operates on already-rewritten text. The mangled output is
// the documented behavior of the substring-search offset policy and must
// not be "fixed" by reordering or deduplication.
func TestRedactEqualOffsetTieBreak(t *testing.T) {
	text := "id 123456789012 end"
	findings := []Finding{
		{Category: CategoryRoutingNumber, Value: "123456789", Severity: SeverityHigh, Offset: 3, Source: SourcePattern},
		{Category: CategoryBankAccount, Value: "123456789012", Severity: SeverityHigh, Offset: 3, Source: SourcePattern},
	}
	filtered, _ := redact(text, findings)

	// Encounter order at offset 3: routing first replaces 9 chars, then
	// the bank finding replaces 12 chars of the rewritten string.
	want := "id [ACCOUNT_REDACTED]ACTED]012 end"
	if filtered != want {
		t.Errorf("filtered = %q, want %q", filtered, want)
	}
}

func TestRedactClampsRunawayEnd(t *testing.T) {
	text := "tail 99999"
	findings := []Finding{
		{Category: CategoryBankAccount, Value: "99999000001111122", Severity: SeverityHigh, Offset: 5, Source: SourcePattern},
	}
	// The span runs past the end of the text; the end index clamps
	// instead of panicking.
	filtered, _ := redact(text, findings)
	want := "tail [ACCOUNT_REDACTED]"
	if filtered != want {
		t.Errorf("filtered = %q, want %q", filtered, want)
	}
}

func TestPlaceholderTable(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryEmail, "[EMAIL_REDACTED]"},
		{CategoryPhone, "[PHONE_REDACTED]"},
		{CategoryNationalID, "[SSN_REDACTED]"},
		{CategoryAIPerson, "[NAME_REDACTED]"},
		{Category("nonsense"), "[REDACTED]"},
	}
	for _, tt := range tests {
		if got := PlaceholderFor(tt.category); got != tt.want {
			t.Errorf("PlaceholderFor(%s) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

// Placeholders must not themselves match any source pattern, so a second
// analysis of filtered text finds nothing in the redacted categories.
func TestRedactionIsIdempotent(t *testing.T) {
	text := "Mail a@b.io, SSN 123-45-6789, IP 10.0.0.1, $5.00 at 12 Main Street near 90210"
	filtered, _ := redact(text, detectAll(text))

	second := detectAll(filtered)
	if len(second) != 0 {
		t.Errorf("expected no findings on filtered text, got %+v (filtered=%q)", second, filtered)
	}
}
