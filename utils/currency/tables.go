package currency

import "regexp"

var symbolToCode = map[string]string{
	"$": "USD",
	"₵": "GHS",
	"€": "EUR",
	"£": "GBP",
}

var nameToCode = map[string]string{
	"CEDIS":   "GHS",
	"DOLLARS": "USD",
	"EUROS":   "EUR",
	"POUNDS":  "GBP",
	"NAIRA":   "NGN",
}

// Info describes a currency the scanner knows how to recognize.
type Info struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Pattern pairs a currency with the expression that spots it anywhere in text.
type Pattern struct {
	Info
	re *regexp.Regexp
}

// Patterns is ordered; JPY and CNY share the yen sign and both are reported for it.
var Patterns = []Pattern{
	newPattern("USD", "$", "Dollar"),
	newPattern("EUR", "€", "Euro"),
	newPattern("GBP", "£", "Pound"),
	newPattern("JPY", "¥", "Yen"),
	newPattern("GHS", "₵", "Cedi"),
	newPattern("NGN", "₦", "Naira"),
	newPattern("CNY", "¥", "Yuan"),
	newPattern("INR", "₹", "Rupee"),
}

func newPattern(code, symbol, name string) Pattern {
	return Pattern{
		Info: Info{Code: code, Symbol: symbol, Name: name},
		re:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(symbol) + `|` + code + `|` + name),
	}
}

// Detect lists, in table order, every currency whose symbol, code or name occurs in text.
// It is a hint for the UI and does not influence Extract.
func Detect(text string) []string {
	var found []string
	for _, p := range Patterns {
		if p.re.MatchString(text) {
			found = append(found, p.Code)
		}
	}
	return found
}

// Supported returns the recognizable currencies for populating currency selectors.
func Supported() []Info {
	out := make([]Info, 0, len(Patterns))
	for _, p := range Patterns {
		out = append(out, p.Info)
	}
	return out
}
