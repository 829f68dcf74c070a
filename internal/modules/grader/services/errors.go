package services

import "errors"

var (
	// ErrNotFound is returned when a conversion or evaluation does not exist
	ErrNotFound = errors.New("record not found")

	// ErrUnsupportedImage is returned for uploads that are not JPEG or PNG
	ErrUnsupportedImage = errors.New("only JPEG and PNG images are supported")

	// ErrFileTooLarge is returned when an upload exceeds the configured size limit
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")

	// ErrOCRFailed wraps failures of the OCR provider
	ErrOCRFailed = errors.New("failed to extract text from image")

	// ErrExtractionFailed wraps failures while reading text out of a PDF
	ErrExtractionFailed = errors.New("failed to extract text from PDF")
)
