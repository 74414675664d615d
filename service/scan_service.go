package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/Aashish23092/ocr-currency-scanner/dto"
	"github.com/Aashish23092/ocr-currency-scanner/logger"
	"github.com/Aashish23092/ocr-currency-scanner/utils/currency"
	"go.uber.org/zap"
)

const (
	// Below this many non-space characters an OCR pass is treated as empty.
	minOCRTextLen = 3
	// A PDF text layer shorter than this is assumed to be a scan.
	minPDFTextLen = 20
	lowConfidence = 60.0
)

// OCREngine turns an encoded image into text with a 0-100 confidence.
type OCREngine interface {
	Name() string
	ExtractText(ctx context.Context, image []byte) (string, float64, error)
}

// ScanInput is one uploaded file.
type ScanInput struct {
	Data     []byte
	Filename string
	Password string
}

// ScanService recognizes text in uploads and extracts the amount to convert.
type ScanService struct {
	ocr          OCREngine
	fallback     OCREngine
	pdfProcessor PDFProcessor
	metrics      *ScanMetrics
	log          *zap.SugaredLogger
}

// NewScanService wires the pipeline. fallback may be nil.
func NewScanService(ocr OCREngine, fallback OCREngine, pdfProcessor PDFProcessor, metrics *ScanMetrics) *ScanService {
	return &ScanService{
		ocr:          ocr,
		fallback:     fallback,
		pdfProcessor: pdfProcessor,
		metrics:      metrics,
		log:          logger.GetLogger(),
	}
}

// ExtractText parses text the client recognized itself. A text without an amount is a
// normal outcome and yields Found=false, never an error.
func (s *ScanService) ExtractText(text string) *dto.ExtractResponse {
	start := time.Now()
	resp := buildExtractResponse(text)
	s.metrics.observe(string(dto.SourceText), outcomeOf(resp), start)
	return resp
}

// Scan sniffs the upload, obtains text from a QR code, the PDF text layer or OCR, and
// extracts the amount from it.
func (s *ScanService) Scan(ctx context.Context, in ScanInput) (*dto.ScanResponse, error) {
	start := time.Now()

	resp, err := s.scan(ctx, in)
	if err != nil {
		s.metrics.observe("unknown", outcomeError, start)
		return nil, err
	}

	s.metrics.observe(string(resp.Source), outcomeOf(&resp.ExtractResponse), start)
	s.log.Infow("Scan completed",
		"filename", in.Filename,
		"source", resp.Source,
		"found", resp.Found,
		"confidence", resp.Quality.OcrConfidence,
		"duration", time.Since(start),
	)
	return resp, nil
}

func (s *ScanService) scan(ctx context.Context, in ScanInput) (*dto.ScanResponse, error) {
	if len(in.Data) == 0 {
		return nil, ErrEmptyUpload
	}

	mimeType := DetectMIME(in.Data)
	if !IsSupportedMIME(mimeType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mimeType)
	}

	if mimeType == mimePDF {
		return s.scanPDF(ctx, in)
	}

	img, err := DecodeImage(in.Data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMedia, err)
	}

	return s.scanImages(ctx, []image.Image{img})
}

func (s *ScanService) scanPDF(ctx context.Context, in ScanInput) (*dto.ScanResponse, error) {
	var issues []string

	text, err := s.pdfProcessor.ExtractText(in.Data, in.Password)
	if errors.Is(err, ErrPDFPassword) {
		return nil, err
	}
	if err != nil {
		s.log.Warnw("PDF text extraction failed", "filename", in.Filename, "error", err)
		issues = append(issues, "pdf_text_extraction_failed")
	}

	if len(strings.TrimSpace(text)) >= minPDFTextLen {
		resp := newScanResponse(text, dto.SourcePDFText)
		resp.Quality.OcrConfidence = 100
		resp.Quality.Issues = append(resp.Quality.Issues, issues...)
		return resp, nil
	}

	s.log.Infow("PDF has minimal text, attempting image-based OCR", "filename", in.Filename)

	images, err := s.pdfProcessor.ExtractImages(in.Data, in.Password)
	if err != nil || len(images) == 0 {
		return nil, fmt.Errorf("%w: PDF has no text layer and no usable images", ErrNoText)
	}

	resp, err := s.scanImages(ctx, images)
	if err != nil {
		return nil, err
	}
	resp.Quality.Issues = append(resp.Quality.Issues, issues...)
	return resp, nil
}

// scanImages tries, per page, a QR code first and then OCR passes on the preprocessed and
// the original frame. The first text that yields an amount wins; otherwise the recognized
// text of all pages is returned with Found=false.
func (s *ScanService) scanImages(ctx context.Context, images []image.Image) (*dto.ScanResponse, error) {
	var (
		combined  strings.Builder
		source    dto.Source
		bestConf  float64
		lastErr   error
		recovered bool
	)

	for idx, img := range images {
		if qrText, err := DecodeQR(img); err == nil && currency.Extract(qrText) != nil {
			s.log.Infow("Amount found in QR code", "page", idx+1)
			resp := newScanResponse(qrText, dto.SourceQR)
			resp.Quality.OcrConfidence = 100
			setDimensions(resp, img)
			return resp, nil
		}

		passes := []struct {
			img          image.Image
			preprocessed bool
		}{
			{Preprocess(img), true},
			{img, false},
		}

		var pageText string
		for _, pass := range passes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			text, conf, engine, err := s.recognize(ctx, pass.img)
			if err != nil {
				lastErr = err
				continue
			}
			recovered = true

			if currency.Extract(text) != nil {
				resp := newScanResponse(text, engine)
				resp.Quality.OcrConfidence = conf
				resp.Quality.Preprocessed = pass.preprocessed
				setDimensions(resp, img)
				if conf < lowConfidence {
					resp.Quality.Issues = append(resp.Quality.Issues, "low_confidence")
				}
				return resp, nil
			}

			if pageText == "" {
				pageText = text
				source = engine
				if conf > bestConf {
					bestConf = conf
				}
			}
		}

		combined.WriteString(pageText)
		combined.WriteString("\n")
	}

	if !recovered {
		return nil, fmt.Errorf("%w: %v", ErrNoText, lastErr)
	}

	resp := newScanResponse(strings.TrimSpace(combined.String()), source)
	resp.Quality.OcrConfidence = bestConf
	if len(images) > 0 {
		setDimensions(resp, images[0])
	}
	return resp, nil
}

// recognize runs the primary engine and falls back to the secondary one when the primary
// fails or returns almost nothing.
func (s *ScanService) recognize(ctx context.Context, img image.Image) (string, float64, dto.Source, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", 0, "", err
	}

	text, conf, err := s.ocr.ExtractText(ctx, data)
	if err == nil && len(strings.TrimSpace(text)) >= minOCRTextLen {
		return text, conf, dto.Source(s.ocr.Name()), nil
	}
	if err != nil {
		s.log.Warnw("OCR failed", "engine", s.ocr.Name(), "error", err)
	}

	if s.fallback != nil {
		s.log.Infow("Falling back to secondary OCR engine", "engine", s.fallback.Name(), "primary_text_len", len(text))
		fbText, fbConf, fbErr := s.fallback.ExtractText(ctx, data)
		if fbErr == nil && len(strings.TrimSpace(fbText)) >= minOCRTextLen {
			return fbText, fbConf, dto.Source(s.fallback.Name()), nil
		}
		if fbErr != nil {
			s.log.Warnw("OCR failed", "engine", s.fallback.Name(), "error", fbErr)
		}
	}

	// Short primary text ("$5") is still better than nothing.
	if err == nil && strings.TrimSpace(text) != "" {
		return text, conf, dto.Source(s.ocr.Name()), nil
	}
	if err == nil {
		err = ErrNoText
	}
	return "", 0, "", fmt.Errorf("%s: %w", s.ocr.Name(), err)
}

func buildExtractResponse(text string) *dto.ExtractResponse {
	result := currency.Extract(text)
	detected := currency.Detect(text)
	if detected == nil {
		detected = []string{}
	}
	return &dto.ExtractResponse{
		Found:              result != nil,
		Result:             result,
		DetectedCurrencies: detected,
	}
}

func newScanResponse(text string, source dto.Source) *dto.ScanResponse {
	resp := &dto.ScanResponse{
		ExtractResponse: *buildExtractResponse(text),
		Source:          source,
		RawText:         text,
		Quality:         dto.ScanQuality{TextQuality: evaluateTextQuality(text), Issues: []string{}},
		ProcessedAt:     time.Now().Format(time.RFC3339),
	}
	if !resp.Found {
		resp.Quality.Issues = append(resp.Quality.Issues, "no_amount_found")
	}
	return resp
}

func setDimensions(resp *dto.ScanResponse, img image.Image) {
	b := img.Bounds()
	resp.Quality.Width = b.Dx()
	resp.Quality.Height = b.Dy()
}

func outcomeOf(resp *dto.ExtractResponse) string {
	if resp.Found {
		return outcomeFound
	}
	return outcomeNotFound
}
