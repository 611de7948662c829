// Package common defines sentinel errors shared by the storage, service and
// command layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (

	// storage specific errors
	ErrorStorageUnavailable = errors.New("storage unavailable")
	ErrorDocumentMissing    = errors.New("document missing")
	ErrorCorruptDocument    = errors.New("corrupt document")

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorValidation = errors.New("validation error")

	// lock screen errors
	ErrorPinNotSet        = errors.New("pin not set")
	ErrorPinMismatch      = errors.New("pin mismatch")
	ErrorInvalidPinFormat = errors.New("invalid pin format")
)
