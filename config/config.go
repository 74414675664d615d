package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort     string   `mapstructure:"SERVER_PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	LogLevel       string   `mapstructure:"LOG_LEVEL"`
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`
	RateLimit      string   `mapstructure:"RATE_LIMIT"`
	MaxFileSize    int64    `mapstructure:"MAX_UPLOAD_BYTES"`

	TesseractDataPath string `mapstructure:"TESSDATA_PREFIX"`
	OCRLanguage       string `mapstructure:"OCR_LANGUAGE"`
	OCRWhitelist      string `mapstructure:"OCR_WHITELIST"`

	// PaddleOCRURL enables the PaddleOCR HTTP fallback when non-empty.
	PaddleOCRURL            string `mapstructure:"PADDLEOCR_API_URL"`
	PaddleOCRTimeoutSeconds int    `mapstructure:"PADDLEOCR_TIMEOUT_SECONDS"`
}

// IsProduction reports whether ENVIRONMENT is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("RATE_LIMIT", "60-M")
	v.SetDefault("MAX_UPLOAD_BYTES", 10*1024*1024) // 10 MB
	v.SetDefault("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/")
	v.SetDefault("OCR_LANGUAGE", "eng")
	v.SetDefault("OCR_WHITELIST", "")
	v.SetDefault("PADDLEOCR_API_URL", "")
	v.SetDefault("PADDLEOCR_TIMEOUT_SECONDS", 15)

	v.AutomaticEnv()

	// PORT is what most hosting platforms inject.
	if err := v.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind SERVER_PORT: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	// Env values arrive as one comma separated string, possibly with spaces.
	cfg.AllowedOrigins = splitList(strings.Join(cfg.AllowedOrigins, ","))

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT must not be empty")
	}
	if cfg.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxFileSize)
	}
	if cfg.OCRLanguage == "" {
		return fmt.Errorf("OCR_LANGUAGE must not be empty")
	}
	if cfg.PaddleOCRTimeoutSeconds <= 0 {
		return fmt.Errorf("PADDLEOCR_TIMEOUT_SECONDS must be positive, got %d", cfg.PaddleOCRTimeoutSeconds)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
