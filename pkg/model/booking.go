package model

import (
	"time"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusFailed    = "failed"
)

// Booking is the write-once record of a committed reservation. Slot is a copy
// of the reserved slot key, not a live reference.
type Booking struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	OrderID      string    `json:"orderId" bson:"order_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	ExperienceID string    `json:"experienceId" bson:"experience_id"`
	Slot         SlotKey   `json:"slot" bson:"slot"`
	Quantity     int       `json:"quantity" bson:"quantity"`
	TotalPrice   int64     `json:"totalPrice" bson:"total_price"`
	PromoCode    string    `json:"promoCode,omitempty" bson:"promo_code,omitempty"`
	Status       string    `json:"status" bson:"status"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

// BookingRequest is the body of POST /api/bookings.
type BookingRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	OrderID      string  `json:"orderId" validate:"required,order_id"`
	Email        string  `json:"email" validate:"required,email,max=254"`
	ExperienceID string  `json:"experienceId" validate:"required"`
	Slot         SlotKey `json:"slot"`
	Quantity     int     `json:"quantity"`
	PromoCode    string  `json:"promoCode,omitempty" validate:"omitempty,max=50"`
}

type PromoRequest struct {
	Code string `json:"code"`
}

type PromoResponse struct {
	Valid    bool  `json:"valid"`
	Discount int64 `json:"discount,omitempty"`
}
