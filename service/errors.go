package service

import "errors"

var (
	// ErrEmptyUpload is returned when the uploaded file has no bytes.
	ErrEmptyUpload = errors.New("uploaded file is empty")

	// ErrUnsupportedMedia is returned when the sniffed content type is neither an image nor a PDF.
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// ErrNoText is returned when no OCR engine produced any text.
	ErrNoText = errors.New("no text could be recognized")

	// ErrPDFPassword is returned when an encrypted PDF cannot be opened with the given password.
	ErrPDFPassword = errors.New("failed to decrypt PDF, check password")
)
