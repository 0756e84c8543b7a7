package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/kafka"
)

// Sender talks to the transactional-email service. The contract is minimal: a
// POST with service/template/user identifiers plus template params, and an
// HTTP 200 means delivered. Anything else is a delivery failure.
type Sender struct {
	cfg    config.EmailConfig
	client *http.Client
}

func NewSender(cfg config.EmailConfig) *Sender {
	return &Sender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	ServiceID      string                 `json:"service_id"`
	TemplateID     string                 `json:"template_id"`
	UserID         string                 `json:"user_id"`
	TemplateParams map[string]interface{} `json:"template_params"`
}

func (s *Sender) Send(ctx context.Context, templateID string, params map[string]interface{}) error {
	payload, err := json.Marshal(sendRequest{
		ServiceID:      s.cfg.ServiceID,
		TemplateID:     templateID,
		UserID:         s.cfg.UserID,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/api/v1.0/email/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}
	return nil
}

// SendOTP delivers the code for the primary OTP flow. Unlike the secondary
// notifications this one is synchronous and its failure is surfaced.
func (s *Sender) SendOTP(ctx context.Context, to, code string, expiry time.Time) error {
	display := expiry.Format("3:04 PM")
	return s.Send(ctx, s.cfg.OTPTemplate, map[string]interface{}{
		"to_email":  to,
		"email":     to,
		"message":   fmt.Sprintf("Your OTP is %s. It will expire at %s", code, display),
		"otp":       code,
		"passcode":  code,
		"time":      display,
		"from_name": "CarRental",
		"reply_to":  to,
	})
}

// SendNotification renders a booking event into the matching template.
func (s *Sender) SendNotification(ctx context.Context, event kafka.NotificationEvent) error {
	switch event.Type {
	case "booking_confirmed":
		return s.Send(ctx, s.cfg.ApprovalTemplate, approvalParams(event))
	default:
		return s.Send(ctx, s.cfg.BookingTemplate, bookingParams(event))
	}
}

func bookingParams(event kafka.NotificationEvent) map[string]interface{} {
	return map[string]interface{}{
		"to_email":    event.Email,
		"user_name":   event.UserName,
		"car_name":    event.CarName,
		"start_time":  event.StartTime.Format("1/2/2006, 3:04:05 PM"),
		"end_time":    event.EndTime.Format("1/2/2006, 3:04:05 PM"),
		"total_price": event.TotalPrice,
		"booking_id":  event.BookingID,
	}
}

func approvalParams(event kafka.NotificationEvent) map[string]interface{} {
	guidelines := fmt.Sprintf(`1. Please arrive at the pickup location 15 minutes before your scheduled time.
2. Bring the following documents:
   - Original Government ID (%s)
   - Valid Driving License
   - Credit Card for security deposit
3. The car will be inspected before and after your rental period.
4. Please ensure the car is returned with the same fuel level as at pickup.
5. Any damages or violations will be charged to your account.
6. For any emergencies, call our 24/7 support: +91-XXXXXXXXXX`, event.GovtIDType)

	return map[string]interface{}{
		"to_email":        event.Email,
		"email":           event.Email,
		"user_name":       event.UserName,
		"car_name":        event.CarName,
		"pickup_location": event.PickupLocation,
		"pickup_time":     event.StartTime.Format("1/2/2006, 3:04:05 PM"),
		"return_time":     event.EndTime.Format("1/2/2006, 3:04:05 PM"),
		"total_price":     event.TotalPrice,
		"booking_id":      event.BookingID,
		"guidelines":      guidelines,
	}
}
