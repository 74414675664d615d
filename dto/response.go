package dto

import "github.com/Aashish23092/ocr-currency-scanner/utils/currency"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractResponse is returned for text submitted directly. Result is null when the text
// holds no recognizable amount.
type ExtractResponse struct {
	Found              bool             `json:"found"`
	Result             *currency.Result `json:"result"`
	DetectedCurrencies []string         `json:"detected_currencies"`
}

// ScanResponse is returned for an uploaded image or PDF.
type ScanResponse struct {
	ExtractResponse
	Source      Source      `json:"source"`
	RawText     string      `json:"raw_text"`
	Quality     ScanQuality `json:"quality"`
	ProcessedAt string      `json:"processed_at"`
}

type CurrenciesResponse struct {
	Currencies []currency.Info `json:"currencies"`
}
