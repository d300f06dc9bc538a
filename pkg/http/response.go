package http

import (
	"encoding/json"
	"net/http"

	apperrors "bookit/pkg/errors"
)

const internalErrorMessage = "Internal server error"

type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data any `json:"data,omitempty"`
}

type BookingCreatedResponse struct {
	Success bool `json:"success"`
	Booking any  `json:"booking"`
}

// WriteJSON returns the encoding error so the caller can log it; the status
// line has already been sent by then.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes err as {error, code, details}. Errors that are not an
// AppError, and internal errors, are reported without detail.
func WriteError(w http.ResponseWriter, err error) error {
	if !apperrors.IsAppError(err) {
		return WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
	}

	appErr := apperrors.AsAppError(err)
	statusCode := appErr.StatusCode()
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}

	if appErr.Code == apperrors.CodeInternal {
		return WriteJSON(w, statusCode, ErrorResponse{Error: internalErrorMessage})
	}

	return WriteJSON(w, statusCode, ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteBookingCreated(w http.ResponseWriter, booking any) error {
	return WriteJSON(w, http.StatusCreated, BookingCreatedResponse{Success: true, Booking: booking})
}

func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: message})
}
