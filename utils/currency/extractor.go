// Package currency turns free-form OCR text into an amount and ISO 4217 currency codes.
package currency

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

// numeral matches "1,250.50", "1250.50" or "100". The grouped form needs at least one
// ",ddd" group so that a plain "12345" is not cut after its first three digits.
const numeral = `(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`

const (
	symbols = `[$€£₵]`
	codes   = `USD|EUR|GBP|GHS|NGN|CAD|AUD|CHF|JPY|CNY|ZAR|INR`
	names   = `cedis|dollars|euros|pounds|naira`
)

var (
	// "convert 100$ to cedis", "50 EUR", "20 dollars"
	advancedPattern = regexp.MustCompile(`(?i)(?:convert\s+)?` + numeral + `\s*(` + symbols + `|` + codes + `|` + names + `)`)

	// "... to naira"
	destinationPattern = regexp.MustCompile(`(?i)\bto\s+([a-z]+)`)

	// "$100", "USD 100", "100"
	basicPattern = regexp.MustCompile(`(?i)(` + codes + `|` + symbols + `)?\s?` + numeral)

	isoCode = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Result is the structured outcome of Extract. Empty Currency or TargetCurrency means
// the text named none; both are serialized as JSON null in that case.
type Result struct {
	Amount         string
	Currency       string
	TargetCurrency string
}

// MarshalJSON renders empty currency fields as null for the form-filling client.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount         string  `json:"amount"`
		Currency       *string `json:"currency"`
		TargetCurrency *string `json:"targetCurrency"`
	}{
		Amount:         r.Amount,
		Currency:       nullable(r.Currency),
		TargetCurrency: nullable(r.TargetCurrency),
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Extract finds the first amount in text together with the currency written next to it
// and an optional "to X" destination currency. It returns nil when text holds no amount.
//
// The advanced pattern (amount followed by a symbol, code or name) is tried first; the
// basic pattern (optional leading marker, then amount) is the fallback. The destination
// is matched independently of either.
func Extract(text string) *Result {
	var amount, token string

	if m := advancedPattern.FindStringSubmatch(text); m != nil {
		amount, token = m[1], m[2]
	} else if m := basicPattern.FindStringSubmatch(text); m != nil {
		token, amount = m[1], m[2]
	} else {
		return nil
	}

	result := &Result{
		Amount:   normalizeAmount(amount),
		Currency: normalizeToken(token),
	}

	if m := destinationPattern.FindStringSubmatch(text); m != nil {
		result.TargetCurrency = normalizeName(m[1])
	}

	return result
}

// normalizeAmount strips thousands separators and keeps the decimal part as written.
func normalizeAmount(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// normalizeToken maps a matched currency marker to its code. A single rune is a symbol,
// anything longer is a code or a currency name.
func normalizeToken(token string) string {
	switch n := utf8.RuneCountInString(token); {
	case n == 0:
		return ""
	case n == 1:
		return symbolToCode[token]
	default:
		return normalizeName(token)
	}
}

// normalizeName uppercases a code or name, resolves known names and passes other words
// through only when they already look like a 3-letter code.
func normalizeName(word string) string {
	upper := strings.ToUpper(word)
	if code, ok := nameToCode[upper]; ok {
		return code
	}
	if isoCode.MatchString(upper) {
		return upper
	}
	return ""
}
