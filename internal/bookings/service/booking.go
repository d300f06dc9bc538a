package service

import (
	bookingserrors "bookit/internal/bookings/errors"
	"bookit/internal/bookings/events"
	"bookit/internal/bookings/repository"
	"bookit/internal/bookings/validator"
	"bookit/internal/promos"
	apperrors "bookit/pkg/errors"
	"bookit/pkg/logger"
	"bookit/pkg/model"
	"bookit/pkg/sanitizer"
	"context"
	"errors"
	"strings"
	"time"
)

// Reasons carried by booking.persistence_failed events.
const (
	ReasonRecordFailed     = "record_failed"
	ReasonDuplicateOrderID = "duplicate_order_id"
	ReasonCommitUnknown    = "commit_unknown"
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.Booking, error)
	ValidatePromo(code string) (promos.Result, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	engine    *ReservationEngine
	promos    *promos.Catalog
	validator *validator.BookingValidator
	publisher events.Publisher
	log       *logger.Logger
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	engine *ReservationEngine,
	catalog *promos.Catalog,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	log *logger.Logger,
) BookingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		engine:    engine,
		promos:    catalog,
		validator: validator,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	sanitizer.SanitizeBookingRequest(req)

	reserveReq := ReserveRequest{
		ExperienceID: req.ExperienceID,
		Slot:         req.Slot,
		Quantity:     req.Quantity,
		PromoCode:    req.PromoCode,
	}
	requestTime := s.now()

	if err := s.engine.Precheck(reserveReq, requestTime); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.InvalidRequest("Invalid booking request", verrs.Details())
		}
		return nil, apperrors.InvalidRequest(err.Error(), nil)
	}

	if err := s.checkOrderIDUnused(ctx, req.OrderID); err != nil {
		return nil, err
	}

	receipt, err := s.engine.Reserve(ctx, reserveReq, requestTime)
	if err != nil {
		var unknown *CommitUnknownError
		if errors.As(err, &unknown) {
			return nil, s.persistenceFailed(context.WithoutCancel(ctx), &model.Booking{
				OrderID:      req.OrderID,
				ExperienceID: unknown.ExperienceID,
				Slot:         unknown.Slot,
				Quantity:     unknown.Quantity,
			}, err)
		}
		return nil, err
	}

	booking := &model.Booking{
		OrderID:      req.OrderID,
		Name:         req.Name,
		Email:        req.Email,
		ExperienceID: receipt.ExperienceID,
		Slot:         receipt.Slot.Key(),
		Quantity:     receipt.Quantity,
		TotalPrice:   receipt.TotalPrice,
		Status:       model.BookingStatusConfirmed,
		CreatedAt:    s.now().UTC(),
	}
	if receipt.Discount > 0 {
		booking.PromoCode = req.PromoCode
	}

	// Seats are already consumed. The record is written even if the caller
	// has gone away.
	recordCtx := context.WithoutCancel(ctx)
	if err := s.repo.Record(recordCtx, booking); err != nil {
		return nil, s.persistenceFailed(recordCtx, booking, err)
	}

	s.log.Info("Booking confirmed",
		"order_id", booking.OrderID,
		"experience_id", booking.ExperienceID,
		"date", booking.Slot.Date,
		"time", booking.Slot.Time,
		"quantity", booking.Quantity,
		"total_price", booking.TotalPrice,
	)

	if err := s.publisher.BookingConfirmed(recordCtx, events.BookingConfirmedEvent{
		OrderID:      booking.OrderID,
		ExperienceID: booking.ExperienceID,
		Slot:         booking.Slot,
		Quantity:     booking.Quantity,
		TotalPrice:   booking.TotalPrice,
		PromoCode:    booking.PromoCode,
		Email:        booking.Email,
		ConfirmedAt:  booking.CreatedAt,
	}); err != nil {
		s.log.Warn("Failed to publish booking confirmation",
			"order_id", booking.OrderID,
			"error", err,
		)
	}

	return booking, nil
}

func (s *bookingService) checkOrderIDUnused(ctx context.Context, orderID string) error {
	_, err := s.repo.FindByOrderID(ctx, orderID)
	switch {
	case err == nil:
		return apperrors.DuplicateOrderID(orderID)
	case errors.Is(err, bookingserrors.ErrNotFound):
		return nil
	}
	s.log.Error("Failed to check order id", "order_id", orderID, "error", err)
	return apperrors.StorageUnavailable(err)
}

func (s *bookingService) persistenceFailed(ctx context.Context, booking *model.Booking, cause error) error {
	// A duplicate here means another request with this order id won the
	// insert after the pre-check.
	var unknown *CommitUnknownError
	reason := ReasonRecordFailed
	switch {
	case errors.As(cause, &unknown):
		reason = ReasonCommitUnknown
	case errors.Is(cause, bookingserrors.ErrDuplicateOrderID):
		reason = ReasonDuplicateOrderID
	}

	s.log.Error("Seats may be consumed without a booking record",
		"order_id", booking.OrderID,
		"experience_id", booking.ExperienceID,
		"date", booking.Slot.Date,
		"time", booking.Slot.Time,
		"quantity", booking.Quantity,
		"reason", reason,
		"error", cause,
	)

	if err := s.publisher.PersistenceFailed(ctx, events.PersistenceFailedEvent{
		OrderID:      booking.OrderID,
		ExperienceID: booking.ExperienceID,
		Slot:         booking.Slot,
		Quantity:     booking.Quantity,
		Reason:       reason,
		FailedAt:     s.now().UTC(),
	}); err != nil {
		s.log.Error("Failed to publish persistence failure",
			"order_id", booking.OrderID,
			"error", err,
		)
	}

	return apperrors.PersistenceFailed(booking.OrderID, cause)
}

func (s *bookingService) GetByOrderID(ctx context.Context, orderID string) (*model.Booking, error) {
	orderID = sanitizer.SanitizeOrderID(orderID)
	if orderID == "" {
		return nil, apperrors.InvalidRequest("Order ID is required", nil)
	}

	booking, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", orderID)
		}
		s.log.Error("Failed to get booking", "order_id", orderID, "error", err)
		return nil, apperrors.StorageUnavailable(err)
	}
	return booking, nil
}

func (s *bookingService) ValidatePromo(code string) (promos.Result, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return promos.Result{}, apperrors.InvalidRequest("Promo code is required", nil)
	}
	return s.promos.Validate(code), nil
}
