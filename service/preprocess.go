package service

import (
	"image"

	"github.com/disintegration/imaging"
)

const (
	// Frames shorter than this are upscaled; Tesseract reads small glyphs poorly.
	minOCRHeight    = 900
	targetOCRHeight = 1300
	// Phone photos beyond this width only slow OCR down.
	maxOCRWidth = 2400
)

// Preprocess prepares a camera frame for OCR: grayscale, stronger contrast, light sharpening
// and a resize into the height range Tesseract handles best.
func Preprocess(img image.Image) *image.NRGBA {
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 15)
	gray = imaging.Sharpen(gray, 0.7)

	b := gray.Bounds()
	switch {
	case b.Dy() < minOCRHeight:
		gray = imaging.Resize(gray, 0, targetOCRHeight, imaging.Lanczos)
	case b.Dx() > maxOCRWidth:
		gray = imaging.Resize(gray, maxOCRWidth, 0, imaging.Lanczos)
	}
	return gray
}
