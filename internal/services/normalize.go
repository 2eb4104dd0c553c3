package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeCode upper-cases a badge code. Codes are compared and stored
// upper-case everywhere; this is the only place that rule lives.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeName title-cases a person name ("john smith" -> "John Smith").
func NormalizeName(name string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ToLower(strings.TrimSpace(name)))
}

func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// SynthesizeEmail builds the deterministic placeholder address assigned at
// provisioning time: lowercase name with spaces removed, underscore,
// lowercase position, at the configured domain.
func SynthesizeEmail(name, position, domain string) string {
	local := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	return local + "_" + strings.ToLower(strings.TrimSpace(position)) + "@" + domain
}
