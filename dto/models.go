package dto

// Source names where the recognized text came from.
type Source string

const (
	SourceText      Source = "text"
	SourceQR        Source = "qr"
	SourcePDFText   Source = "pdf_text"
	SourceTesseract Source = "tesseract"
	SourcePaddle    Source = "paddleocr"
)

type ScanQuality struct {
	OcrConfidence float64  `json:"ocr_confidence"`
	TextQuality   float64  `json:"text_quality"`
	Width         int      `json:"width,omitempty"`
	Height        int      `json:"height,omitempty"`
	Preprocessed  bool     `json:"preprocessed"`
	Issues        []string `json:"issues"`
}
