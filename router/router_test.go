package router

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Aashish23092/ocr-currency-scanner/handler"
	"github.com/Aashish23092/ocr-currency-scanner/logger"
	"github.com/Aashish23092/ocr-currency-scanner/middleware"
	"github.com/Aashish23092/ocr-currency-scanner/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
)

type stubEngine struct {
	text string
	err  error
}

func (s stubEngine) Name() string { return "tesseract" }

func (s stubEngine) ExtractText(context.Context, []byte) (string, float64, error) {
	return s.text, 90, s.err
}

func newTestRouter(t *testing.T, ocrText string, rate string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	svc := service.NewScanService(stubEngine{text: ocrText}, nil, service.NewPDFProcessor(), service.NewScanMetrics(reg))

	return SetupRouter(Config{
		ScanHandler:    handler.NewScanHandler(svc, 1<<20),
		Limiter:        mustLimiter(t, rate),
		Gatherer:       reg,
		AllowedOrigins: []string{"https://convert.example.com"},
		MaxBodyBytes:   2 << 20,
		Logger:         logger.GetLogger(),
	})
}

func mustLimiter(t *testing.T, rate string) *limiter.Limiter {
	t.Helper()
	l, err := middleware.NewLimiter(rate)
	require.NoError(t, err)
	return l
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for i := range img.Pix {
		img.Pix[i] = uint8(color.White.Y >> 8)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, "", "100-M")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestExtractEndpoint(t *testing.T) {
	r := newTestRouter(t, "", "100-M")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewBufferString(`{"text":"convert 1,250.50$ to cedis"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"found": true,
		"result": {"amount": "1250.50", "currency": "USD", "targetCurrency": "GHS"},
		"detected_currencies": ["USD", "GHS"]
	}`, w.Body.String())
}

func TestExtractEndpointNoMatch(t *testing.T) {
	r := newTestRouter(t, "", "100-M")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewBufferString(`{"text":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"found": false, "result": null, "detected_currencies": []}`, w.Body.String())
}

func TestExtractEndpointValidation(t *testing.T) {
	r := newTestRouter(t, "", "100-M")

	for _, body := range []string{`{"text":"   "}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "EXTRACTION_FAILED")
	}
}

func TestScanEndpoint(t *testing.T) {
	r := newTestRouter(t, "I have 20 dollars", "100-M")

	body, contentType := multipartBody(t, "frame.png", pngBytes(t))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Found  bool `json:"found"`
		Result struct {
			Amount   string `json:"amount"`
			Currency string `json:"currency"`
		} `json:"result"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Found)
	assert.Equal(t, "20", resp.Result.Amount)
	assert.Equal(t, "USD", resp.Result.Currency)
	assert.Equal(t, "tesseract", resp.Source)
}

func TestScanEndpointErrors(t *testing.T) {
	r := newTestRouter(t, "10 EUR", "100-M")

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad extension", func(t *testing.T) {
		body, contentType := multipartBody(t, "notes.txt", []byte("10 EUR"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("content is not an image", func(t *testing.T) {
		body, contentType := multipartBody(t, "blob", []byte("10 EUR"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})
}

func TestCurrenciesEndpoint(t *testing.T) {
	r := newTestRouter(t, "", "100-M")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"GHS"`)
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(t, "", "2-M")

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewBufferString(`{"text":"5 EUR"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t, "", "100-M")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	req.Header.Set("Origin", "https://convert.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://convert.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, "", "100-M")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewBufferString(`{"text":"5 EUR"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `currency_scanner_scans_total{outcome="found",source="text"} 1`)
}
