package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/metrics"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidWindow          = errors.New("booking window is invalid")
	ErrIllegalTransition      = errors.New("illegal status transition")
	ErrVerificationIncomplete = errors.New("verification incomplete")
)

// SelfServiceCancellationReason is recorded when a customer cancels their own
// booking; admin-driven cancellations carry free text instead.
const SelfServiceCancellationReason = "Cancelled by user"

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	SetStatus(ctx context.Context, id string, status domain.BookingStatus, actor, reason string) (*domain.Booking, error)
	VerifyGovernmentID(ctx context.Context, id string) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	ListBookings(ctx context.Context, filter ListFilter) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	UserPhone string    `json:"userPhone"`
	CarID     int64     `json:"carId"`
	CarName   string    `json:"carName"`
	CarImage  string    `json:"carImage"`
	CarType   string    `json:"carType"`
	// PricePerHour is the vehicle's snapshot rate; the total is always derived
	// from it and the window, never accepted directly.
	PricePerHour int64     `json:"pricePerHour"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	GovtIDType   string    `json:"govtIdType"`
	GovtIDNumber string    `json:"govtIdNumber"`
	GovtIDImage  string    `json:"govtIdImage"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Location     string    `json:"location"`
	// OTPVerified carries the caller's form-flow verification state over to
	// the record. Government ID verification always starts false.
	OTPVerified bool `json:"otpVerified"`
}

type ListFilter struct {
	Status domain.BookingStatus
	Email  string
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(bookings repository.BookingRepository, producer Producer, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings: bookings,
		producer: producer,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// TotalPrice derives the booking price: started hours are charged in full.
func TotalPrice(start, end time.Time, pricePerHour int64) int64 {
	hours := int64(math.Ceil(end.Sub(start).Hours()))
	return hours * pricePerHour
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.StartTime.IsZero() || input.EndTime.IsZero() || !input.EndTime.After(input.StartTime) {
		return nil, ErrInvalidWindow
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:           uuid.NewString(),
		UserName:     input.UserName,
		UserEmail:    input.UserEmail,
		UserPhone:    input.UserPhone,
		CarID:        input.CarID,
		CarName:      input.CarName,
		CarImage:     input.CarImage,
		CarType:      input.CarType,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		TotalPrice:   TotalPrice(input.StartTime, input.EndTime, input.PricePerHour),
		Status:       domain.BookingStatusPending,
		GovtIDType:   input.GovtIDType,
		GovtIDNumber: input.GovtIDNumber,
		GovtIDImage:  input.GovtIDImage,
		Address:      input.Address,
		City:         input.City,
		Location:     input.Location,
		OTPVerified:  input.OTPVerified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	metrics.BookingsCreatedTotal.Inc()
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

// SetStatus moves a booking through the lifecycle. A transition into
// confirmed requires both verification flags; rejected and cancelled are
// terminal. Notifications for the new status are best effort and never roll
// the transition back.
func (s *BookingService) SetStatus(ctx context.Context, id string, status domain.BookingStatus, actor, reason string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.IsValidStatus(status) || !domain.CanTransition(booking.Status, status) {
		return nil, ErrIllegalTransition
	}
	if status == domain.BookingStatusConfirmed && (!booking.OTPVerified || !booking.GovtIDVerified) {
		return nil, ErrVerificationIncomplete
	}

	now := time.Now()
	booking.Status = status
	booking.UpdatedAt = now
	if status == domain.BookingStatusCancelled {
		booking.CancelledAt = &now
		booking.CancelledBy = actor
		if reason == "" {
			reason = SelfServiceCancellationReason
		}
		booking.CancellationReason = reason
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	switch status {
	case domain.BookingStatusConfirmed:
		metrics.BookingsConfirmedTotal.Inc()
		s.publish(ctx, "booking_confirmed", booking)
	case domain.BookingStatusRejected:
		s.publish(ctx, "booking_rejected", booking)
	}
	return booking, nil
}

// VerifyGovernmentID records the admin's manual attestation. No document
// check happens here: a human reviewer looked at the upload, that is the whole
// policy.
func (s *BookingService) VerifyGovernmentID(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booking.GovtIDVerified = true
	booking.UpdatedAt = time.Now()
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("persist booking: %w", err)
	}
	return booking, nil
}

// DeleteBooking removes the record permanently. There is no soft delete.
func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	return s.bookings.Delete(ctx, id)
}

// ListBookings returns bookings newest-first, optionally narrowed by status
// and requester email. The customer surface always sets Email to its own.
func (s *BookingService) ListBookings(ctx context.Context, filter ListFilter) ([]domain.Booking, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Booking, 0, len(all))
	for _, b := range all {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Email != "" && b.UserEmail != filter.Email {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}
	event := kafka.NotificationEvent{
		Type:           eventType,
		BookingID:      booking.ID,
		Email:          booking.UserEmail,
		UserName:       booking.UserName,
		CarName:        booking.CarName,
		GovtIDType:     booking.GovtIDType,
		PickupLocation: fmt.Sprintf("%s, %s", booking.Location, booking.City),
		StartTime:      booking.StartTime,
		EndTime:        booking.EndTime,
		TotalPrice:     booking.TotalPrice,
		Status:         string(booking.Status),
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues("publish").Inc()
		zap.L().Warn("failed to publish notification event",
			zap.String("booking_id", booking.ID),
			zap.String("type", eventType),
			zap.Error(err))
	}
}

var _ BookingUseCase = (*BookingService)(nil)
