package otp

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Domenick1991/carrental/internal/cache"
	"github.com/Domenick1991/carrental/internal/metrics"
	"github.com/Domenick1991/carrental/internal/repository"
)

var (
	ErrMissingEmail      = errors.New("email is required")
	ErrNoActiveChallenge = errors.New("otp expired or not issued")
	ErrInvalidCode       = errors.New("invalid otp")
	ErrResendCooldown    = errors.New("otp was sent recently, wait before resending")
)

type OTPUseCase interface {
	Issue(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
	IssueForBooking(ctx context.Context, bookingID string) error
	VerifyForBooking(ctx context.Context, bookingID, code string) error
}

type ChallengeStore interface {
	SetChallenge(ctx context.Context, ch cache.Challenge, ttl time.Duration) error
	GetChallenge(ctx context.Context, email string) (*cache.Challenge, error)
	ClearChallenge(ctx context.Context, email string) error
	AcquireResendSlot(ctx context.Context, email string, cooldown time.Duration) (bool, error)
	ResetResendSlot(ctx context.Context, email string) error
}

type CodeSender interface {
	SendOTP(ctx context.Context, to, code string, expiry time.Time) error
}

type OTPService struct {
	store    ChallengeStore
	bookings repository.BookingRepository
	sender   CodeSender
	ttl      time.Duration
	cooldown time.Duration
}

func NewOTPService(store ChallengeStore, bookings repository.BookingRepository, sender CodeSender, ttl, cooldown time.Duration) *OTPService {
	return &OTPService{
		store:    store,
		bookings: bookings,
		sender:   sender,
		ttl:      ttl,
		cooldown: cooldown,
	}
}

// generateCode returns a uniformly random 6-digit code. Leading zeros are
// kept, which is why the code is text and never a number.
func generateCode() string {
	return fmt.Sprintf("%06d", rand.IntN(1000000))
}

// Issue sends a fresh code to the email and records the challenge. The
// challenge key expires with the TTL, and a second Issue within the cooldown
// window is rejected.
func (s *OTPService) Issue(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrMissingEmail
	}

	ok, err := s.store.AcquireResendSlot(ctx, email, s.cooldown)
	if err != nil {
		return err
	}
	if !ok {
		return ErrResendCooldown
	}

	code := generateCode()
	now := time.Now()
	expiry := now.Add(s.ttl)

	if err := s.sender.SendOTP(ctx, email, code, expiry); err != nil {
		// Неудачная отправка не должна блокировать повтор
		_ = s.store.ResetResendSlot(ctx, email)
		return err
	}

	if err := s.store.SetChallenge(ctx, cache.Challenge{
		Email:    email,
		Code:     code,
		IssuedAt: now,
		Expiry:   expiry,
	}, s.ttl); err != nil {
		return err
	}

	metrics.OTPIssuedTotal.Inc()
	return nil
}

// Verify checks the submitted code against the last issued challenge. The
// challenge is single use: a successful match clears it. There is no attempt
// limit, same as the source system.
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)
	ch, err := s.store.GetChallenge(ctx, email)
	if err != nil {
		return err
	}
	if ch == nil || ch.Email != email {
		return ErrNoActiveChallenge
	}
	if ch.Code != code {
		return ErrInvalidCode
	}
	return s.store.ClearChallenge(ctx, email)
}

// IssueForBooking attaches a fresh code to the booking record for the
// admin-side confirmation flow. A resend simply overwrites the previous code;
// no expiry is enforced here beyond that.
func (s *OTPService) IssueForBooking(ctx context.Context, bookingID string) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(booking.UserEmail) == "" {
		return ErrMissingEmail
	}

	code := generateCode()
	if err := s.sender.SendOTP(ctx, booking.UserEmail, code, time.Now().Add(s.ttl)); err != nil {
		return err
	}

	booking.OTP = code
	booking.UpdatedAt = time.Now()
	if err := s.bookings.Update(ctx, booking); err != nil {
		return err
	}

	metrics.OTPIssuedTotal.Inc()
	return nil
}

// VerifyForBooking matches the submitted code against the one stored on the
// booking and flips the email verification flag on success.
func (s *OTPService) VerifyForBooking(ctx context.Context, bookingID, code string) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.OTP == "" {
		return ErrNoActiveChallenge
	}
	if booking.OTP != code {
		return ErrInvalidCode
	}

	booking.OTP = ""
	booking.OTPVerified = true
	booking.UpdatedAt = time.Now()
	return s.bookings.Update(ctx, booking)
}

var _ OTPUseCase = (*OTPService)(nil)
