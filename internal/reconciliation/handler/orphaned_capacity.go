package handler

import (
	"bookit/internal/bookings/events"
	"bookit/internal/reconciliation/repository"
	"bookit/pkg/kafka"
	"bookit/pkg/logger"
	"bookit/pkg/model"
	"context"
	"errors"
	"time"
)

var ErrMissingOrderID = errors.New("persistence failure event has no order id")

// OrphanedCapacityHandler records seats consumed by orders that have no
// booking record. It never gives seats back; operators do that by hand.
type OrphanedCapacityHandler struct {
	repo repository.OrphanedCapacityRepository
	log  *logger.Logger
}

func NewOrphanedCapacityHandler(repo repository.OrphanedCapacityRepository, log *logger.Logger) *OrphanedCapacityHandler {
	return &OrphanedCapacityHandler{
		repo: repo,
		log:  log,
	}
}

func (h *OrphanedCapacityHandler) Handle(ctx context.Context, msg kafka.Message) error {
	if eventType := msg.GetEventType(); eventType != events.EventBookingPersistenceFailed {
		h.log.Debug("Skipping unrelated event", "event_type", eventType, "event_id", msg.GetEventID())
		return nil
	}

	var event events.PersistenceFailedEvent
	if err := msg.DecodeValue(&event); err != nil {
		return err
	}
	if event.OrderID == "" {
		return kafka.NewPermanentError("invalid event", ErrMissingOrderID)
	}

	detectedAt := event.FailedAt
	if detectedAt.IsZero() {
		detectedAt = msg.Timestamp
	}
	if detectedAt.IsZero() {
		detectedAt = time.Now()
	}

	created, err := h.repo.Upsert(ctx, &model.OrphanedCapacity{
		OrderID:      event.OrderID,
		ExperienceID: event.ExperienceID,
		Slot:         event.Slot,
		Quantity:     event.Quantity,
		Reason:       event.Reason,
		DetectedAt:   detectedAt,
	})
	if err != nil {
		return kafka.NewTransientError("record orphaned capacity", err)
	}

	if created {
		h.log.Warn("Orphaned capacity recorded",
			"order_id", event.OrderID,
			"experience_id", event.ExperienceID,
			"date", event.Slot.Date,
			"time", event.Slot.Time,
			"quantity", event.Quantity,
			"reason", event.Reason,
		)
	} else {
		h.log.Info("Orphaned capacity already recorded", "order_id", event.OrderID)
	}
	return nil
}
