package service

import (
	bookingserrors "bookit/internal/bookings/errors"
	"bookit/internal/bookings/events"
	"bookit/internal/bookings/validator"
	"bookit/internal/promos"
	apperrors "bookit/pkg/errors"
	"bookit/pkg/logger"
	"bookit/pkg/model"
	"context"
	"errors"
	"testing"
	"time"
)

type mockBookingRepository struct {
	recordFunc        func(ctx context.Context, booking *model.Booking) error
	findByOrderIDFunc func(ctx context.Context, orderID string) (*model.Booking, error)

	recorded []*model.Booking
	lookups  int
}

func (m *mockBookingRepository) Record(ctx context.Context, booking *model.Booking) error {
	if m.recordFunc != nil {
		if err := m.recordFunc(ctx, booking); err != nil {
			return err
		}
	}
	m.recorded = append(m.recorded, booking)
	return nil
}

func (m *mockBookingRepository) FindByOrderID(ctx context.Context, orderID string) (*model.Booking, error) {
	m.lookups++
	if m.findByOrderIDFunc != nil {
		return m.findByOrderIDFunc(ctx, orderID)
	}
	return nil, bookingserrors.ErrNotFound
}

type mockPublisher struct {
	confirmed []events.BookingConfirmedEvent
	failed    []events.PersistenceFailedEvent
	err       error
}

func (m *mockPublisher) BookingConfirmed(_ context.Context, event events.BookingConfirmedEvent) error {
	m.confirmed = append(m.confirmed, event)
	return m.err
}

func (m *mockPublisher) PersistenceFailed(_ context.Context, event events.PersistenceFailedEvent) error {
	m.failed = append(m.failed, event)
	return m.err
}

type serviceFixture struct {
	store     *memoryStore
	repo      *mockBookingRepository
	publisher *mockPublisher
	service   *bookingService
}

func newServiceFixture(t *testing.T, experience *model.Experience) *serviceFixture {
	t.Helper()
	log := logger.Discard()
	store := newMemoryStore(t, experience)
	repo := &mockBookingRepository{}
	publisher := &mockPublisher{}

	svc := NewBookingService(
		repo,
		newEngine(store),
		promos.NewCatalog(),
		validator.NewBookingValidator(log),
		publisher,
		log,
	).(*bookingService)
	svc.now = func() time.Time { return requestTime }

	return &serviceFixture{store: store, repo: repo, publisher: publisher, service: svc}
}

func bookingRequest() *model.BookingRequest {
	return &model.BookingRequest{
		Name:         "  Asha   Rao ",
		OrderID:      "hd-20301001-ab12z",
		Email:        "Asha@Example.com",
		ExperienceID: experienceID,
		Slot:         futureSlot,
		Quantity:     2,
		PromoCode:    "FLAT100",
	}
}

func TestBookingService_Create(t *testing.T) {
	f := newServiceFixture(t, skyDiving(5, 2))

	booking, err := f.service.Create(context.Background(), bookingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != model.BookingStatusConfirmed {
		t.Errorf("expected status confirmed, got %s", booking.Status)
	}
	if booking.TotalPrice != 9900 {
		t.Errorf("expected total 9900, got %d", booking.TotalPrice)
	}
	if booking.OrderID != "HD-20301001-AB12Z" {
		t.Errorf("expected sanitized order id, got %s", booking.OrderID)
	}
	if booking.PromoCode != "FLAT100" {
		t.Errorf("expected promo code to be kept, got %q", booking.PromoCode)
	}
	if booking.Slot != futureSlot {
		t.Errorf("expected slot %v, got %v", futureSlot, booking.Slot)
	}
	if !booking.CreatedAt.Equal(requestTime) {
		t.Errorf("expected createdAt %v, got %v", requestTime, booking.CreatedAt)
	}
	if got := f.store.slot(experienceID, futureSlot).Booked; got != 4 {
		t.Errorf("expected booked 4, got %d", got)
	}
	if len(f.repo.recorded) != 1 {
		t.Fatalf("expected 1 record, got %d", len(f.repo.recorded))
	}
	if len(f.publisher.confirmed) != 1 || f.publisher.confirmed[0].OrderID != booking.OrderID {
		t.Errorf("expected one confirmation event for %s, got %v", booking.OrderID, f.publisher.confirmed)
	}
}

func TestBookingService_CreateDropsUnknownPromo(t *testing.T) {
	f := newServiceFixture(t, skyDiving(5, 0))
	req := bookingRequest()
	req.PromoCode = "XYZ"

	booking, err := f.service.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.TotalPrice != 10000 {
		t.Errorf("expected total 10000, got %d", booking.TotalPrice)
	}
	if booking.PromoCode != "" {
		t.Errorf("expected no promo code on record, got %q", booking.PromoCode)
	}
}

func TestBookingService_CreateRejections(t *testing.T) {
	tests := []struct {
		name       string
		experience *model.Experience
		mutate     func(*model.BookingRequest)
		repo       func(*mockBookingRepository)
		wantCode   string
		noLookup   bool
	}{
		{
			name:       "missing name",
			experience: skyDiving(5, 0),
			mutate:     func(r *model.BookingRequest) { r.Name = " " },
			wantCode:   apperrors.CodeInvalidRequest,
		},
		{
			name:       "bad order id format",
			experience: skyDiving(5, 0),
			mutate:     func(r *model.BookingRequest) { r.OrderID = "ORDER-1" },
			wantCode:   apperrors.CodeInvalidRequest,
		},
		{
			name:       "order id already booked",
			experience: skyDiving(5, 0),
			mutate:     func(*model.BookingRequest) {},
			repo: func(m *mockBookingRepository) {
				m.findByOrderIDFunc = func(context.Context, string) (*model.Booking, error) {
					return &model.Booking{OrderID: "HD-20301001-AB12Z"}, nil
				}
			},
			wantCode: apperrors.CodeDuplicateOrderID,
		},
		{
			name:       "order id lookup fails",
			experience: skyDiving(5, 0),
			mutate:     func(*model.BookingRequest) {},
			repo: func(m *mockBookingRepository) {
				m.findByOrderIDFunc = func(context.Context, string) (*model.Booking, error) {
					return nil, errors.New("timeout")
				}
			},
			wantCode: apperrors.CodeStorageUnavailable,
		},
		{
			name:       "empty experience id",
			experience: skyDiving(5, 0),
			mutate:     func(r *model.BookingRequest) { r.ExperienceID = "" },
			wantCode:   apperrors.CodeInvalidIdentifier,
		},
		{
			name:       "malformed slot wins over failing lookup",
			experience: skyDiving(5, 0),
			mutate:     func(r *model.BookingRequest) { r.Slot.Time = "25:00" },
			repo: func(m *mockBookingRepository) {
				m.findByOrderIDFunc = func(context.Context, string) (*model.Booking, error) {
					return nil, errors.New("timeout")
				}
			},
			wantCode: apperrors.CodeInvalidSlotFormat,
			noLookup: true,
		},
		{
			name:       "zero quantity with missing name",
			experience: skyDiving(5, 0),
			mutate: func(r *model.BookingRequest) {
				r.Quantity = 0
				r.Name = ""
			},
			wantCode: apperrors.CodeInvalidRequest,
			noLookup: true,
		},
		{
			name:       "insufficient capacity",
			experience: skyDiving(5, 4),
			mutate:     func(*model.BookingRequest) {},
			wantCode:   apperrors.CodeInsufficientCapacity,
		},
		{
			name:       "past slot",
			experience: skyDiving(5, 0),
			mutate:     func(r *model.BookingRequest) { r.Slot.Date = "2030-09-01" },
			wantCode:   apperrors.CodeSlotInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t, tt.experience)
			if tt.repo != nil {
				tt.repo(f.repo)
			}
			req := bookingRequest()
			tt.mutate(req)
			before := f.store.slot(experienceID, futureSlot).Booked

			_, err := f.service.Create(context.Background(), req)
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Fatalf("expected %s, got %v", tt.wantCode, err)
			}
			if len(f.repo.recorded) != 0 {
				t.Errorf("expected no record, got %d", len(f.repo.recorded))
			}
			if tt.noLookup && f.repo.lookups != 0 {
				t.Errorf("expected no order id lookup, got %d", f.repo.lookups)
			}
			if got := f.store.slot(experienceID, futureSlot).Booked; got != before {
				t.Errorf("expected booked to stay %d, got %d", before, got)
			}
		})
	}
}

func TestBookingService_CreatePersistenceFailure(t *testing.T) {
	f := newServiceFixture(t, skyDiving(5, 0))
	f.repo.recordFunc = func(context.Context, *model.Booking) error {
		return errors.New("write concern error")
	}

	_, err := f.service.Create(context.Background(), bookingRequest())
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodePersistenceFailed {
		t.Fatalf("expected PERSISTENCE_FAILED, got %v", err)
	}
	if appErr.Details["orderId"] != "HD-20301001-AB12Z" {
		t.Errorf("expected orderId detail, got %v", appErr.Details)
	}
	if got := f.store.slot(experienceID, futureSlot).Booked; got != 2 {
		t.Errorf("expected seats to stay consumed, got booked %d", got)
	}
	if len(f.publisher.failed) != 1 {
		t.Fatalf("expected one persistence failure event, got %d", len(f.publisher.failed))
	}
	if f.publisher.failed[0].Reason != ReasonRecordFailed {
		t.Errorf("expected reason record_failed, got %s", f.publisher.failed[0].Reason)
	}
	if len(f.publisher.confirmed) != 0 {
		t.Errorf("expected no confirmation event")
	}
}

func TestBookingService_CreateCommitOutcomeUnknown(t *testing.T) {
	f := newServiceFixture(t, skyDiving(5, 0))
	f.store.afterCommitErr = context.DeadlineExceeded

	_, err := f.service.Create(context.Background(), bookingRequest())
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodePersistenceFailed {
		t.Fatalf("expected PERSISTENCE_FAILED, got %v", err)
	}
	if len(f.repo.recorded) != 0 {
		t.Errorf("expected no record, got %d", len(f.repo.recorded))
	}
	if len(f.publisher.failed) != 1 {
		t.Fatalf("expected one persistence failure event, got %d", len(f.publisher.failed))
	}

	event := f.publisher.failed[0]
	if event.Reason != ReasonCommitUnknown {
		t.Errorf("expected reason %s, got %s", ReasonCommitUnknown, event.Reason)
	}
	if event.OrderID != "HD-20301001-AB12Z" || event.ExperienceID != experienceID {
		t.Errorf("unexpected event identity %+v", event)
	}
	if event.Slot != futureSlot || event.Quantity != 2 {
		t.Errorf("expected slot %v quantity 2, got %v quantity %d", futureSlot, event.Slot, event.Quantity)
	}
	if got := f.store.slot(experienceID, futureSlot).Booked; got != 2 {
		t.Errorf("expected the applied increment to be visible, got booked %d", got)
	}
}

func TestBookingService_CreateSurvivesCancelledCaller(t *testing.T) {
	f := newServiceFixture(t, skyDiving(5, 0))
	ctx, cancel := context.WithCancel(context.Background())
	f.repo.recordFunc = func(recordCtx context.Context, _ *model.Booking) error {
		cancel()
		return recordCtx.Err()
	}

	if _, err := f.service.Create(ctx, bookingRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBookingService_CreateIgnoresPublishFailure(t *testing.T) {
	f := newServiceFixture(t, skyDiving(5, 0))
	f.publisher.err = errors.New("broker down")

	if _, err := f.service.Create(context.Background(), bookingRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.repo.recorded) != 1 {
		t.Errorf("expected booking to be recorded")
	}
}

func TestBookingService_GetByOrderID(t *testing.T) {
	f := newServiceFixture(t, skyDiving(5, 0))
	f.repo.findByOrderIDFunc = func(_ context.Context, orderID string) (*model.Booking, error) {
		if orderID == "HD-20301001-AB12Z" {
			return &model.Booking{OrderID: orderID}, nil
		}
		return nil, bookingserrors.ErrNotFound
	}

	booking, err := f.service.GetByOrderID(context.Background(), " hd-20301001-ab12z ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.OrderID != "HD-20301001-AB12Z" {
		t.Errorf("unexpected booking %v", booking)
	}

	_, err = f.service.GetByOrderID(context.Background(), "HD-20301001-ZZZZZ")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestBookingService_ValidatePromo(t *testing.T) {
	f := newServiceFixture(t, skyDiving(5, 0))

	tests := []struct {
		code     string
		want     promos.Result
		wantCode string
	}{
		{code: "SAVE10", want: promos.Result{Valid: true, Discount: 10}},
		{code: "XYZ", want: promos.Result{}},
		{code: "  ", wantCode: apperrors.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := f.service.ValidatePromo(tt.code)
			if tt.wantCode != "" {
				if !apperrors.HasCode(err, tt.wantCode) {
					t.Fatalf("expected %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
