package client

import (
	"bookit/pkg/model"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// APIError is a non-2xx answer from the bookings API.
type APIError struct {
	StatusCode int            `json:"-"`
	Message    string         `json:"error"`
	Code       string         `json:"code,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("bookings api: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("bookings api: %d: %s", e.StatusCode, e.Message)
}

// BookingsClient is a typed client for the bookings HTTP API.
type BookingsClient struct {
	http *HttpClient
}

func NewBookingsClient(baseURL string) *BookingsClient {
	return &BookingsClient{http: NewHttpClient(baseURL)}
}

func (c *BookingsClient) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	resp, err := c.http.GET(ctx, "/api/experiences")
	if err != nil {
		return nil, err
	}
	var experiences []model.Experience
	if err := decode(resp, http.StatusOK, &experiences); err != nil {
		return nil, err
	}
	return experiences, nil
}

func (c *BookingsClient) GetExperience(ctx context.Context, id string) (*model.Experience, error) {
	resp, err := c.http.GET(ctx, "/api/experiences/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var experience model.Experience
	if err := decode(resp, http.StatusOK, &experience); err != nil {
		return nil, err
	}
	return &experience, nil
}

// CreateBooking posts req. A non-empty idempotencyKey makes retries of the
// same request replay the first successful answer.
func (c *BookingsClient) CreateBooking(ctx context.Context, req *model.BookingRequest, idempotencyKey string) (*model.Booking, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	resp, err := c.http.POSTWithHeaders(ctx, "/api/bookings", req, headers)
	if err != nil {
		return nil, err
	}
	var created struct {
		Success bool          `json:"success"`
		Booking model.Booking `json:"booking"`
	}
	if err := decode(resp, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created.Booking, nil
}

func (c *BookingsClient) GetBookingByOrderID(ctx context.Context, orderID string) (*model.Booking, error) {
	resp, err := c.http.GET(ctx, "/api/bookings/order/"+url.PathEscape(orderID))
	if err != nil {
		return nil, err
	}
	var found struct {
		Data model.Booking `json:"data"`
	}
	if err := decode(resp, http.StatusOK, &found); err != nil {
		return nil, err
	}
	return &found.Data, nil
}

func (c *BookingsClient) ValidatePromo(ctx context.Context, code string) (*model.PromoResponse, error) {
	resp, err := c.http.POST(ctx, "/api/bookings/promo/validate", model.PromoRequest{Code: code})
	if err != nil {
		return nil, err
	}
	var result model.PromoResponse
	if err := decode(resp, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func decode(resp *Response, want int, target any) error {
	if resp.StatusCode != want {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := resp.DecodeJSON(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if err := resp.DecodeJSON(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
