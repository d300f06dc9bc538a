package model

import "time"

// OrphanedCapacity records seats that were consumed for an order whose booking
// record was never written. Operators reconcile these by hand.
type OrphanedCapacity struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	OrderID      string    `json:"orderId" bson:"order_id"`
	ExperienceID string    `json:"experienceId" bson:"experience_id"`
	Slot         SlotKey   `json:"slot" bson:"slot"`
	Quantity     int       `json:"quantity" bson:"quantity"`
	Reason       string    `json:"reason" bson:"reason"`
	DetectedAt   time.Time `json:"detectedAt" bson:"detected_at"`
	Resolved     bool      `json:"resolved" bson:"resolved"`
}
