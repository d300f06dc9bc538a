package service

import (
	experienceserrors "bookit/internal/experiences/errors"
	apperrors "bookit/pkg/errors"
	"bookit/pkg/logger"
	"bookit/pkg/model"
	"bookit/pkg/slottime"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultMaxCommitAttempts = 3

// CommitUnknownError is returned when the conditional increment failed for a
// reason other than the condition. The seats may or may not have been taken,
// so the attempt must not be reported as safe to retry.
type CommitUnknownError struct {
	ExperienceID string
	Slot         model.SlotKey
	Quantity     int
	Err          error
}

func (e *CommitUnknownError) Error() string {
	return fmt.Sprintf("reserve %d seats on %s %s %s: outcome unknown: %v",
		e.Quantity, e.ExperienceID, e.Slot.Date, e.Slot.Time, e.Err)
}

func (e *CommitUnknownError) Unwrap() error {
	return e.Err
}

// SlotStore is the part of the experience catalog the engine needs.
// ReserveSeats must apply the increment atomically and return
// experienceserrors.ErrConditionFailed when the slot no longer has room.
type SlotStore interface {
	FindByID(ctx context.Context, id string) (*model.Experience, error)
	ReserveSeats(ctx context.Context, id string, slot model.Slot, quantity int) (*model.Experience, error)
}

type PromoLookup interface {
	Discount(code string) int64
}

type ReserveRequest struct {
	ExperienceID string
	Slot         model.SlotKey
	Quantity     int
	PromoCode    string
}

// ReservationReceipt describes a committed reservation. Slot is the state of
// the slot right after the increment.
type ReservationReceipt struct {
	ExperienceID string
	Slot         model.Slot
	Quantity     int
	Subtotal     int64
	Discount     int64
	TotalPrice   int64
}

// ReservationEngine validates a request against slot capacity and commits it
// with a single conditional increment. It holds no state between calls.
type ReservationEngine struct {
	store       SlotStore
	promos      PromoLookup
	loc         *time.Location
	maxAttempts int
	log         *logger.Logger
}

func NewReservationEngine(store SlotStore, promos PromoLookup, loc *time.Location, maxAttempts int, log *logger.Logger) *ReservationEngine {
	if loc == nil {
		loc = time.UTC
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxCommitAttempts
	}
	return &ReservationEngine{
		store:       store,
		promos:      promos,
		loc:         loc,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Precheck runs the checks that need no storage: identifier, quantity, slot
// format and slot in the future, in that order.
func (e *ReservationEngine) Precheck(req ReserveRequest, requestTime time.Time) error {
	if !primitive.IsValidObjectID(req.ExperienceID) {
		return apperrors.InvalidIdentifier(req.ExperienceID)
	}
	if req.Quantity <= 0 {
		return apperrors.InvalidRequest("Quantity must be greater than zero",
			map[string]any{"quantity": req.Quantity})
	}

	slotAt, err := slottime.Parse(req.Slot.Date, req.Slot.Time, e.loc)
	if err != nil {
		return apperrors.InvalidSlotFormat(slotFormatMessage(err))
	}
	if !slottime.IsFuture(slotAt, requestTime) {
		return apperrors.SlotInPast()
	}
	return nil
}

// Reserve takes quantity seats on the requested slot. A commit whose outcome
// is unknown comes back as *CommitUnknownError.
func (e *ReservationEngine) Reserve(ctx context.Context, req ReserveRequest, requestTime time.Time) (*ReservationReceipt, error) {
	if err := e.Precheck(req, requestTime); err != nil {
		return nil, err
	}

	experience, err := e.load(ctx, req.ExperienceID)
	if err != nil {
		return nil, err
	}

	slot, err := checkSlot(experience, req.Slot, req.Quantity)
	if err != nil {
		return nil, err
	}

	// The increment must not be cut off by the caller once it is sent. The
	// store bounds it with its own write timeout.
	commitCtx := context.WithoutCancel(ctx)

	for attempt := 1; ; attempt++ {
		updated, err := e.store.ReserveSeats(commitCtx, req.ExperienceID, slot, req.Quantity)
		if err == nil {
			return e.receipt(req, experience, updated, slot), nil
		}
		if !errors.Is(err, experienceserrors.ErrConditionFailed) {
			e.log.Error("Seat increment outcome unknown",
				"experience_id", req.ExperienceID,
				"date", req.Slot.Date,
				"time", req.Slot.Time,
				"quantity", req.Quantity,
				"error", err,
			)
			return nil, &CommitUnknownError{
				ExperienceID: req.ExperienceID,
				Slot:         req.Slot,
				Quantity:     req.Quantity,
				Err:          err,
			}
		}

		// The slot changed since it was read. Report what the fresh state
		// says, and only try again if the request would still fit.
		experience, err = e.load(ctx, req.ExperienceID)
		if err != nil {
			return nil, err
		}
		slot, err = checkSlot(experience, req.Slot, req.Quantity)
		if err != nil {
			return nil, err
		}

		if attempt >= e.maxAttempts {
			e.log.Warn("Reservation kept losing the commit race",
				"experience_id", req.ExperienceID,
				"date", req.Slot.Date,
				"time", req.Slot.Time,
				"attempts", attempt,
			)
			return nil, apperrors.Conflict("The slot changed while booking, please try again")
		}
	}
}

func (e *ReservationEngine) load(ctx context.Context, id string) (*model.Experience, error) {
	experience, err := e.store.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, experienceserrors.ErrNotFound):
			return nil, apperrors.ExperienceNotFound(id)
		case errors.Is(err, experienceserrors.ErrInvalidID):
			return nil, apperrors.InvalidIdentifier(id)
		}
		e.log.Error("Failed to load experience", "experience_id", id, "error", err)
		return nil, apperrors.StorageUnavailable(err)
	}
	return experience, nil
}

// checkSlot resolves key to exactly one slot of experience and verifies it
// can take quantity more seats.
func checkSlot(experience *model.Experience, key model.SlotKey, quantity int) (model.Slot, error) {
	matches := experience.FindSlots(key)
	switch len(matches) {
	case 0:
		return model.Slot{}, apperrors.SlotNotFound(key.Date, key.Time)
	case 1:
	default:
		return model.Slot{}, apperrors.SlotAmbiguous(key.Date, key.Time)
	}

	slot := matches[0]
	if !slot.Available() {
		return model.Slot{}, apperrors.SlotFull()
	}
	if quantity > slot.Remaining() {
		return model.Slot{}, apperrors.InsufficientCapacity(slot.Remaining())
	}
	return slot, nil
}

func (e *ReservationEngine) receipt(req ReserveRequest, before, after *model.Experience, reserved model.Slot) *ReservationReceipt {
	committed := reserved
	committed.Booked += req.Quantity
	if after != nil {
		if matches := after.FindSlots(req.Slot); len(matches) == 1 {
			committed = matches[0]
		}
	}

	price := before.Price
	if after != nil {
		price = after.Price
	}

	subtotal := price * int64(req.Quantity)
	var discount int64
	if e.promos != nil && req.PromoCode != "" {
		discount = e.promos.Discount(req.PromoCode)
	}
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	e.log.Info("Seats reserved",
		"experience_id", req.ExperienceID,
		"date", committed.Date,
		"time", committed.Time,
		"quantity", req.Quantity,
		"booked", committed.Booked,
		"capacity", committed.Capacity,
	)

	return &ReservationReceipt{
		ExperienceID: req.ExperienceID,
		Slot:         committed,
		Quantity:     req.Quantity,
		Subtotal:     subtotal,
		Discount:     discount,
		TotalPrice:   total,
	}
}

func slotFormatMessage(err error) string {
	switch {
	case errors.Is(err, slottime.ErrMissing):
		return "Slot date and time are required"
	case errors.Is(err, slottime.ErrInvalidDate):
		return "Slot date must be in YYYY-MM-DD format"
	case errors.Is(err, slottime.ErrInvalidTime):
		return "Slot time must be in H:MM AM/PM format"
	}
	return fmt.Sprintf("Invalid slot: %v", err)
}
