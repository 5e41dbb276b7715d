package services

import "errors"

// Common service-level errors
var (
	ErrBarcodeNotFound = errors.New("barcode not found")
	ErrInvalidListKind = errors.New("invalid list kind")
)
