package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeTimeout      = "TIMEOUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInvalidInput = "INVALID_INPUT"
	CodeTooLarge     = "PAYLOAD_TOO_LARGE"
	CodeRateLimited  = "RATE_LIMITED"
)

// Reservation failure kinds. Each one maps to a distinct caller-visible outcome.
const (
	CodeInvalidIdentifier    = "INVALID_IDENTIFIER"
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidSlotFormat    = "INVALID_SLOT_FORMAT"
	CodeSlotInPast           = "SLOT_IN_PAST"
	CodeExperienceNotFound   = "EXPERIENCE_NOT_FOUND"
	CodeSlotNotFound         = "SLOT_NOT_FOUND"
	CodeSlotAmbiguous        = "SLOT_AMBIGUOUS"
	CodeSlotFull             = "SLOT_FULL"
	CodeInsufficientCapacity = "INSUFFICIENT_CAPACITY"
	CodeDuplicateOrderID     = "DUPLICATE_ORDER_ID"
	CodePersistenceFailed    = "PERSISTENCE_FAILED"
	CodeStorageUnavailable   = "STORAGE_UNAVAILABLE"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

func TooLarge(limit int) *AppError {
	return &AppError{
		Code:       CodeTooLarge,
		Message:    fmt.Sprintf("Request body exceeds %d bytes", limit),
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
}

func RateLimited() *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    "Too many requests. Please try again later.",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func InvalidIdentifier(id string) *AppError {
	return &AppError{
		Code:       CodeInvalidIdentifier,
		Message:    "Invalid experience ID format",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"experienceId": id},
	}
}

func InvalidRequest(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeInvalidRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

func InvalidSlotFormat(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidSlotFormat,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func SlotInPast() *AppError {
	return &AppError{
		Code:       CodeSlotInPast,
		Message:    "Cannot book a slot in the past",
		HTTPStatus: http.StatusBadRequest,
	}
}

func ExperienceNotFound(id string) *AppError {
	return &AppError{
		Code:       CodeExperienceNotFound,
		Message:    "Experience not found",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"experienceId": id},
	}
}

func SlotNotFound(date, slotTime string) *AppError {
	return &AppError{
		Code:       CodeSlotNotFound,
		Message:    "Selected slot not found",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"date": date, "time": slotTime},
	}
}

// SlotAmbiguous reports a catalog that holds more than one slot for the same
// (date, time). The data must be repaired; no slot is picked.
func SlotAmbiguous(date, slotTime string) *AppError {
	return &AppError{
		Code:       CodeSlotAmbiguous,
		Message:    "Slot catalog is inconsistent for the selected date and time",
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"date": date, "time": slotTime},
	}
}

func SlotFull() *AppError {
	return &AppError{
		Code:       CodeSlotFull,
		Message:    "This slot is fully booked",
		HTTPStatus: http.StatusBadRequest,
	}
}

func InsufficientCapacity(available int) *AppError {
	return &AppError{
		Code:       CodeInsufficientCapacity,
		Message:    fmt.Sprintf("Only %d seat(s) available for this slot", available),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"available": available},
	}
}

func DuplicateOrderID(orderID string) *AppError {
	return &AppError{
		Code:       CodeDuplicateOrderID,
		Message:    "A booking with this order ID already exists",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"orderId": orderID},
	}
}

// PersistenceFailed is returned when the seats were consumed but the booking
// record could not be written. The order id is kept so operators can reconcile.
func PersistenceFailed(orderID string, err error) *AppError {
	return &AppError{
		Code:       CodePersistenceFailed,
		Message:    fmt.Sprintf("Booking %s could not be saved after seats were reserved", orderID),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"orderId": orderID},
		Err:        err,
	}
}

func StorageUnavailable(err error) *AppError {
	return &AppError{
		Code:       CodeStorageUnavailable,
		Message:    "Storage is temporarily unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
