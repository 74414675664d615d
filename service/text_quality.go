package service

import (
	"strings"

	"github.com/Aashish23092/ocr-currency-scanner/utils/currency"
)

var amountKeywords = []string{
	"total", "amount", "price", "pay", "due", "convert", "balance", "sum",
}

// evaluateTextQuality scores recognized text from 0 to 100 by length, amount keywords
// and currency markers. It is reported to clients and does not affect extraction.
func evaluateTextQuality(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	score := 0.0

	// Length (max 30)
	switch n := len(trimmed); {
	case n > 200:
		score += 30
	case n > 40:
		score += 20
	case n > 3:
		score += 10
	}

	// Keywords (max 30)
	lower := strings.ToLower(trimmed)
	for _, kw := range amountKeywords {
		if strings.Contains(lower, kw) {
			score += 10
		}
	}
	if score > 60 {
		score = 60
	}

	// Digits and currency markers (max 40)
	if strings.ContainsAny(trimmed, "0123456789") {
		score += 20
	}
	if len(currency.Detect(trimmed)) > 0 {
		score += 20
	}

	return score
}
