package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PaddleClient calls a PaddleOCR hub serving endpoint (ocr_system) over HTTP.
type PaddleClient struct {
	apiURL     string
	httpClient *http.Client
}

// NewPaddleClient returns nil when apiURL is empty so callers can treat the fallback as absent.
func NewPaddleClient(apiURL string, timeout time.Duration) *PaddleClient {
	if apiURL == "" {
		return nil
	}
	return &PaddleClient{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *PaddleClient) Name() string {
	return "paddleocr"
}

// ExtractText sends the encoded image to PaddleOCR and joins the recognized lines.
// The returned confidence is the mean line confidence scaled to 0-100.
func (p *PaddleClient) ExtractText(ctx context.Context, image []byte) (string, float64, error) {
	payload := map[string]interface{}{
		"images": []string{base64.StdEncoding.EncodeToString(image)},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", 0, fmt.Errorf("failed to build PaddleOCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("failed to call PaddleOCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", 0, fmt.Errorf("PaddleOCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Results [][]struct {
			Text       string  `json:"text"`
			Confidence float64 `json:"confidence"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, fmt.Errorf("failed to decode PaddleOCR response: %w", err)
	}

	var textBuilder strings.Builder
	var totalConf float64
	var lines int
	if len(result.Results) > 0 {
		for _, line := range result.Results[0] {
			textBuilder.WriteString(line.Text)
			textBuilder.WriteString("\n")
			totalConf += line.Confidence
			lines++
		}
	}

	if lines == 0 {
		return "", 0, fmt.Errorf("PaddleOCR extracted no text from image")
	}

	return textBuilder.String(), totalConf / float64(lines) * 100, nil
}
