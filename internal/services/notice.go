package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/google/uuid"
)

// Test seams.
var (
	now   = time.Now
	newID = uuid.NewString
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a short user-facing message.
type Notice struct {
	Title   string
	Message string
	Kind    NoticeKind
}

func success(title, message string) Notice {
	return Notice{Title: title, Message: message, Kind: NoticeSuccess}
}

// ValidationError rejects user input. It matches common.ErrorValidation.
type ValidationError struct {
	Notice Notice
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Notice.Title, e.Notice.Message)
}

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }

func invalid(title, message string) error {
	return &ValidationError{Notice: Notice{Title: title, Message: message, Kind: NoticeError}}
}

// NoticeFromError turns any error returned by this package into a notice.
func NoticeFromError(err error) Notice {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Notice
	case errors.Is(err, common.ErrorPinMismatch):
		return Notice{Title: "Incorrect PIN", Message: "Please try again.", Kind: NoticeError}
	case errors.Is(err, common.ErrorInvalidPinFormat):
		return Notice{Title: "Invalid PIN", Message: "PIN must be 4 to 6 digits.", Kind: NoticeError}
	case errors.Is(err, common.ErrorPinNotSet):
		return Notice{Title: "No PIN", Message: "Set up a PIN first.", Kind: NoticeError}
	case errors.Is(err, common.ErrorNotFound):
		return Notice{Title: "Not Found", Message: "The item no longer exists.", Kind: NoticeError}
	case errors.Is(err, common.ErrorCorruptDocument):
		return Notice{Title: "Data Error", Message: "Stored data could not be read.", Kind: NoticeError}
	case errors.Is(err, common.ErrorDocumentMissing), errors.Is(err, common.ErrorStorageUnavailable):
		return Notice{Title: "Storage Error", Message: "Storage is not available. Please try again.", Kind: NoticeError}
	default:
		return Notice{Title: "Error", Message: err.Error(), Kind: NoticeError}
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("₱%.2f", v)
}

func isoNow() string {
	return now().UTC().Format(time.RFC3339Nano)
}
