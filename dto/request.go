package dto

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrFileRequired = errors.New("file is required")
	ErrTextRequired = errors.New("text is required")
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".heic": true,
	".heif": true,
	".pdf":  true,
}

// ScanRequest is a single uploaded camera frame, photo or PDF receipt.
type ScanRequest struct {
	File     *multipart.FileHeader `form:"file"`
	Password string                `form:"password"`
}

// Validate checks presence, size and extension. Content is sniffed again by the service,
// so a missing extension (camera blobs) is accepted.
func (r *ScanRequest) Validate(maxSize int64) error {
	if r.File == nil {
		return ErrFileRequired
	}
	if r.File.Size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum of %d bytes", r.File.Size, maxSize)
	}

	ext := strings.ToLower(filepath.Ext(r.File.Filename))
	if ext != "" && !allowedExtensions[ext] {
		return fmt.Errorf("invalid file type %q. Supported: PNG, JPEG, GIF, WebP, HEIC, PDF", ext)
	}
	return nil
}

// ExtractRequest carries text the browser already recognized on-device.
type ExtractRequest struct {
	Text string `json:"text"`
}

func (r *ExtractRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrTextRequired
	}
	return nil
}
