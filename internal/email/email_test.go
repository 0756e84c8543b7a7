package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.EmailConfig {
	return config.EmailConfig{
		BaseURL:          baseURL,
		ServiceID:        "service_83t3cbg",
		UserID:           "k3W_a-z1d-fjwe1O2",
		OTPTemplate:      "template_h62oruo",
		BookingTemplate:  "template_9i71ugc",
		ApprovalTemplate: "template_approval",
	}
}

func TestSender_SendOTP(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1.0/email/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	sender := NewSender(testConfig(srv.URL))

	expiry := time.Date(2024, 1, 1, 15, 4, 0, 0, time.UTC)
	err := sender.SendOTP(context.Background(), "alice@example.com", "123456", expiry)
	require.NoError(t, err)

	assert.Equal(t, "service_83t3cbg", got.ServiceID)
	assert.Equal(t, "template_h62oruo", got.TemplateID)
	assert.Equal(t, "k3W_a-z1d-fjwe1O2", got.UserID)
	assert.Equal(t, "alice@example.com", got.TemplateParams["to_email"])
	assert.Equal(t, "123456", got.TemplateParams["otp"])
	assert.Equal(t, "Your OTP is 123456. It will expire at 3:04 PM", got.TemplateParams["message"])
	assert.Equal(t, "3:04 PM", got.TemplateParams["time"])
}

func TestSender_Send_non200IsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	sender := NewSender(testConfig(srv.URL))

	err := sender.Send(context.Background(), "template_h62oruo", map[string]interface{}{})
	assert.ErrorContains(t, err, "status 400")
}

func TestSender_SendNotification_confirmedUsesApprovalTemplate(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	sender := NewSender(testConfig(srv.URL))

	event := kafka.NotificationEvent{
		Type:           "booking_confirmed",
		BookingID:      "booking-1",
		Email:          "alice@example.com",
		UserName:       "Alice",
		CarName:        "Toyota Highlander",
		GovtIDType:     "Passport",
		PickupLocation: "Bangalore",
		StartTime:      time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC),
		TotalPrice:     1500,
	}
	require.NoError(t, sender.SendNotification(context.Background(), event))

	assert.Equal(t, "template_approval", got.TemplateID)
	assert.Equal(t, "1/1/2024, 10:00:00 AM", got.TemplateParams["pickup_time"])
	assert.Contains(t, got.TemplateParams["guidelines"], "Original Government ID (Passport)")
}

func TestSender_SendNotification_defaultTemplate(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	sender := NewSender(testConfig(srv.URL))

	event := kafka.NotificationEvent{
		Type:      "booking_created",
		BookingID: "booking-2",
		Email:     "bob@example.com",
		UserName:  "Bob",
		CarName:   "Honda City",
		StartTime: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, sender.SendNotification(context.Background(), event))

	assert.Equal(t, "template_9i71ugc", got.TemplateID)
	assert.Equal(t, "booking-2", got.TemplateParams["booking_id"])
}
