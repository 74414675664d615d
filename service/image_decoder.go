package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gen2brain/heic"
	_ "golang.org/x/image/webp" // Register WebP decoder (Android camera uploads)
)

const mimePDF = "application/pdf"

var allowedImageMimes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// DetectMIME sniffs the content type from the leading bytes, ignoring client headers.
func DetectMIME(data []byte) string {
	mt := mimetype.Detect(data).String()
	// Drop parameters such as "; charset=binary".
	if i := strings.Index(mt, ";"); i != -1 {
		mt = mt[:i]
	}
	return mt
}

// IsSupportedMIME reports whether a sniffed type can be scanned.
func IsSupportedMIME(mt string) bool {
	return mt == mimePDF || allowedImageMimes[mt]
}

// DecodeImage decodes any supported raster format. HEIC/HEIF (iPhone photos) is not known
// to the standard image package and goes through the pure Go decoder.
func DecodeImage(data []byte, mimeType string) (image.Image, error) {
	if isHEICMime(mimeType) {
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s image: %w", mimeType, err)
	}
	return img, nil
}

// encodePNG produces the lossless bytes handed to the OCR engines.
func encodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image to PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func isHEICMime(mimeType string) bool {
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}
