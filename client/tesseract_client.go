package client

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient runs Tesseract through gosseract. A fresh gosseract client is created per
// call because the underlying TessBaseAPI is not safe for concurrent use.
type TesseractClient struct {
	dataPath  string
	language  string
	whitelist string
}

func NewTesseractClient(dataPath, language, whitelist string) *TesseractClient {
	return &TesseractClient{
		dataPath:  dataPath,
		language:  language,
		whitelist: whitelist,
	}
}

// Name identifies the engine in scan responses and metrics.
func (tc *TesseractClient) Name() string {
	return "tesseract"
}

// ExtractText recognizes text in an encoded image (PNG, JPEG, ...) and returns it with the
// mean word confidence in the 0-100 range.
func (tc *TesseractClient) ExtractText(ctx context.Context, image []byte) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}

	if err := client.SetLanguage(tc.language); err != nil {
		return "", 0, fmt.Errorf("failed to set language: %w", err)
	}

	if tc.whitelist != "" {
		if err := client.SetWhitelist(tc.whitelist); err != nil {
			return "", 0, fmt.Errorf("failed to set whitelist: %w", err)
		}
	}

	if err := client.SetImageFromBytes(image); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	// Bounding boxes only feed the confidence score; text is still usable without them.
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return text, 0, nil
	}

	var totalConf float64
	for _, box := range boxes {
		totalConf += box.Confidence
	}

	avgConf := 0.0
	if len(boxes) > 0 {
		avgConf = totalConf / float64(len(boxes))
	}

	return text, avgConf, nil
}
