package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "bookit/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantCode   string
	}{
		{
			name:       "capacity error keeps message and code",
			err:        apperrors.InsufficientCapacity(1),
			wantStatus: http.StatusBadRequest,
			wantError:  "Only 1 seat(s) available for this slot",
			wantCode:   apperrors.CodeInsufficientCapacity,
		},
		{
			name:       "not found",
			err:        apperrors.ExperienceNotFound("64b7f0c2a1b2c3d4e5f60718"),
			wantStatus: http.StatusNotFound,
			wantError:  "Experience not found",
			wantCode:   apperrors.CodeExperienceNotFound,
		},
		{
			name:       "internal error hides detail",
			err:        apperrors.Internal("decode failed: bson", errors.New("secret")),
			wantStatus: http.StatusInternalServerError,
			wantError:  internalErrorMessage,
		},
		{
			name:       "plain error hides detail",
			err:        errors.New("mongo: connection string leaked"),
			wantStatus: http.StatusInternalServerError,
			wantError:  internalErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			resp := decode(t, rec)
			if resp.Error != tt.wantError {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestWriteError_Details(t *testing.T) {
	rec := httptest.NewRecorder()
	_ = WriteError(rec, apperrors.InsufficientCapacity(1))

	resp := decode(t, rec)
	if resp.Details["available"] != float64(1) {
		t.Errorf("expected available detail 1, got %v", resp.Details["available"])
	}
}

func TestWriteBookingCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteBookingCreated(rec, map[string]string{"orderId": "HD-20301101-AB12Z"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body["success"])
	}
}
