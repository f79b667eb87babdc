package custom_error

import (
	"errors"
	"fmt"
	"net/http"
)

// Reason classifies an expected, recoverable failure of an inventory operation.
type Reason string

const (
	ReasonNoRecipe             Reason = "NO_RECIPE"
	ReasonNoSlotAvailable      Reason = "NO_SLOT_AVAILABLE"
	ReasonInsufficientMaterial Reason = "INSUFFICIENT_MATERIAL"
	ReasonNotFound             Reason = "NOT_FOUND"
	ReasonExternalUnavailable  Reason = "EXTERNAL_SERVICE_UNAVAILABLE"
	ReasonInvalidQuantity      Reason = "INVALID_QUANTITY"
	ReasonValidation           Reason = "VALIDATION"
	ReasonInUse                Reason = "IN_USE"
)

type CustomError interface {
	Error() string
}

type OperationError struct {
	Reason  Reason
	Message string
	Subject string // id of the item, batch or material the failure is about
}

func (e *OperationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s (reason: %s)", e.Message, e.Reason)
	}
	return fmt.Sprintf("%s (reason: %s, subject: %s)", e.Message, e.Reason, e.Subject)
}

// Is matches any *OperationError carrying the same reason, so sentinel values like
// ErrNotFound work with errors.Is.
func (e *OperationError) Is(target error) bool {
	var t *OperationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Reason == e.Reason
}

var (
	ErrNotFound    = &OperationError{Reason: ReasonNotFound, Message: "resource not found"}
	ErrValidation  = &OperationError{Reason: ReasonValidation, Message: "validation failed"}
	ErrInUse       = &OperationError{Reason: ReasonInUse, Message: "resource is in use"}
	ErrUnavailable = &OperationError{Reason: ReasonExternalUnavailable, Message: "external service unavailable"}
)

func New(reason Reason, subject string, format string, args ...any) *OperationError {
	return &OperationError{
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
		Subject: subject,
	}
}

func NotFound(subject string, format string, args ...any) *OperationError {
	return New(ReasonNotFound, subject, format, args...)
}

func Validation(format string, args ...any) *OperationError {
	return New(ReasonValidation, "", format, args...)
}

// ReasonOf returns the reason of the first OperationError in the chain, or "" for
// infrastructure errors.
func ReasonOf(err error) Reason {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Reason
	}
	return ""
}

// HTTPStatus maps a failure to the status code handlers answer with.
func HTTPStatus(err error) int {
	switch ReasonOf(err) {
	case ReasonNotFound:
		return http.StatusNotFound
	case ReasonValidation, ReasonInvalidQuantity:
		return http.StatusBadRequest
	case ReasonNoRecipe, ReasonInsufficientMaterial:
		return http.StatusUnprocessableEntity
	case ReasonNoSlotAvailable, ReasonInUse:
		return http.StatusConflict
	case ReasonExternalUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
