package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "eng", cfg.OCRLanguage)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, "60-M", cfg.RateLimit)
	assert.Empty(t, cfg.PaddleOCRURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://convert.example.com, https://m.example.com")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")
	t.Setenv("PADDLEOCR_API_URL", "http://paddleocr:8866/predict/ocr_system")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://convert.example.com", "https://m.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(2048), cfg.MaxFileSize)
	assert.Equal(t, "http://paddleocr:8866/predict/ocr_system", cfg.PaddleOCRURL)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}
