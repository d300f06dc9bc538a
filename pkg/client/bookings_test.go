package client

import (
	"bookit/pkg/model"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingsClient_CreateBooking(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/bookings", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotKey = r.Header.Get("Idempotency-Key")

		var req model.BookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"booking": model.Booking{OrderID: req.OrderID, Quantity: req.Quantity, TotalPrice: 9900, Status: model.BookingStatusConfirmed},
		})
	}))
	defer srv.Close()

	c := NewBookingsClient(srv.URL)
	booking, err := c.CreateBooking(context.Background(), &model.BookingRequest{OrderID: "HD-20301101-AB12Z", Quantity: 2}, "key-1")
	require.NoError(t, err)

	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "HD-20301101-AB12Z", booking.OrderID)
	assert.Equal(t, int64(9900), booking.TotalPrice)
}

func TestBookingsClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Only 1 seat(s) available for this slot","code":"INSUFFICIENT_CAPACITY","details":{"available":1}}`))
	}))
	defer srv.Close()

	_, err := NewBookingsClient(srv.URL).CreateBooking(context.Background(), &model.BookingRequest{}, "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "INSUFFICIENT_CAPACITY", apiErr.Code)
	assert.Equal(t, float64(1), apiErr.Details["available"])
}

func TestBookingsClient_GetBookingByOrderID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bookings/order/HD-20301101-AB12Z" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Booking not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{"orderId":"HD-20301101-AB12Z","status":"confirmed"}}`))
	}))
	defer srv.Close()

	c := NewBookingsClient(srv.URL)
	booking, err := c.GetBookingByOrderID(context.Background(), "HD-20301101-AB12Z")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, booking.Status)

	_, err = c.GetBookingByOrderID(context.Background(), "HD-20301101-ZZZZZ")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Booking not found", apiErr.Message)
}

func TestBookingsClient_ValidatePromo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req model.PromoRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Code == "SAVE10" {
			_, _ = w.Write([]byte(`{"valid":true,"discount":10}`))
			return
		}
		_, _ = w.Write([]byte(`{"valid":false}`))
	}))
	defer srv.Close()

	c := NewBookingsClient(srv.URL)
	got, err := c.ValidatePromo(context.Background(), "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, &model.PromoResponse{Valid: true, Discount: 10}, got)

	got, err = c.ValidatePromo(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.False(t, got.Valid)
}
