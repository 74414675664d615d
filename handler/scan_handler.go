package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/Aashish23092/ocr-currency-scanner/dto"
	"github.com/Aashish23092/ocr-currency-scanner/logger"
	"github.com/Aashish23092/ocr-currency-scanner/middleware"
	"github.com/Aashish23092/ocr-currency-scanner/service"
	"github.com/Aashish23092/ocr-currency-scanner/utils/currency"
	"github.com/gin-gonic/gin"
)

type ScanHandler struct {
	scanService *service.ScanService
	maxFileSize int64
}

func NewScanHandler(scanService *service.ScanService, maxFileSize int64) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		maxFileSize: maxFileSize,
	}
}

// Scan handles POST /scan: a multipart "file" (camera frame, photo or PDF) and an
// optional "password" for encrypted PDFs.
func (h *ScanHandler) Scan(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "SCAN_FAILED", "file is required", err)
		return
	}

	request := &dto.ScanRequest{
		File:     fileHeader,
		Password: c.PostForm("password"),
	}

	if err := request.Validate(h.maxFileSize); err != nil {
		h.sendError(c, http.StatusBadRequest, "SCAN_FAILED", err.Error(), err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "SCAN_FAILED", "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize))
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "SCAN_FAILED", "Failed to read uploaded file", err)
		return
	}

	response, err := h.scanService.Scan(c.Request.Context(), service.ScanInput{
		Data:     data,
		Filename: fileHeader.Filename,
		Password: request.Password,
	})
	if err != nil {
		h.sendError(c, scanErrorStatus(err), "SCAN_FAILED", err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Extract handles POST /extract for text recognized on the client.
func (h *ScanHandler) Extract(c *gin.Context) {
	var request dto.ExtractRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "EXTRACTION_FAILED", "invalid JSON body", err)
		return
	}

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, "EXTRACTION_FAILED", err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, h.scanService.ExtractText(request.Text))
}

// Currencies handles GET /currencies.
func (h *ScanHandler) Currencies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CurrenciesResponse{Currencies: currency.Supported()})
}

func scanErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyUpload):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPDFPassword):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrNoText):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// sendError sends a structured error response
func (h *ScanHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	if err != nil {
		logger.GetLogger().Warnw("Request failed",
			"request_id", c.GetString(middleware.RequestIDKey),
			"status", statusCode,
			"message", message,
			"error", err,
		)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    statusCode,
	})
}
