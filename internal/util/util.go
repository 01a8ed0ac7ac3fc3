// Package util contains normalization helpers applied to user input before it is persisted.
package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// TitleCase trims s and capitalizes the first letter of every word ("  são paulo " -> "São Paulo").
// A letter after an apostrophe also starts a word, so "d'oeste" becomes "D'Oeste".
func TitleCase(s string) string {
	// cases.Caser keeps state and must not be shared between goroutines
	titled := cases.Title(language.BrazilianPortuguese).String(strings.TrimSpace(s))
	if !strings.ContainsAny(titled, "'’") {
		return titled
	}

	runes := []rune(titled)
	for i := 1; i < len(runes); i++ {
		if runes[i-1] == '\'' || runes[i-1] == '’' {
			runes[i] = unicode.ToUpper(runes[i])
		}
	}

	return string(runes)
}

// CapitalizeWords collapses runs of whitespace and title-cases each word.
func CapitalizeWords(s string) string {
	return TitleCase(strings.Join(strings.Fields(s), " "))
}

// UpperCode trims and uppercases a short code such as "br" or " sp ".
func UpperCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// FormatPostalCode keeps the digits of a CEP and formats it as NNNNN-NNN when exactly 8 digits are present.
func FormatPostalCode(s string) string {
	digits := DigitsOnly(s)
	if len(digits) == 8 {
		return digits[:5] + "-" + digits[5:]
	}

	return digits
}

// FormatTaxID formats a CPF (11 digits) or CNPJ (14 digits). Other lengths are returned as digits only.
func FormatTaxID(s string) string {
	d := DigitsOnly(s)

	switch len(d) {
	case 11:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	case 14:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
	default:
		return d
	}
}

// FormatPhone formats a Brazilian landline (10 digits) or mobile (11 digits) number with its area code.
func FormatPhone(s string) string {
	d := DigitsOnly(s)

	switch len(d) {
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case 11:
		return "(" + d[:2] + ") " + d[2:3] + " " + d[3:7] + "-" + d[7:]
	default:
		return d
	}
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
