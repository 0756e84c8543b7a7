package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/carrental/internal/service/otp"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestOTPHandler_send(t *testing.T) {
	mockOTP := &MockOTPUseCase{}
	handler := NewOTPHandler(mockOTP)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(sendOTPRequest{Email: "alice@example.com"})
	c.Request = httptest.NewRequest("POST", "/api/otp/send", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockOTP.On("Issue", c.Request.Context(), "alice@example.com").Return(nil)

	handler.send(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "OTP sent successfully!")

	mockOTP.AssertExpectations(t)
}

func TestOTPHandler_send_errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "missing email", err: otp.ErrMissingEmail, wantStatus: http.StatusBadRequest},
		{name: "resend cooldown", err: otp.ErrResendCooldown, wantStatus: http.StatusTooManyRequests},
		{name: "delivery failure", err: assert.AnError, wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOTP := &MockOTPUseCase{}
			handler := NewOTPHandler(mockOTP)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			body, _ := json.Marshal(sendOTPRequest{Email: "alice@example.com"})
			c.Request = httptest.NewRequest("POST", "/api/otp/send", bytes.NewReader(body))
			c.Request.Header.Set("Content-Type", "application/json")

			mockOTP.On("Issue", c.Request.Context(), "alice@example.com").Return(tt.err)

			handler.send(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestOTPHandler_verify(t *testing.T) {
	mockOTP := &MockOTPUseCase{}
	handler := NewOTPHandler(mockOTP)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(verifyOTPRequest{Email: "alice@example.com", Code: "123456"})
	c.Request = httptest.NewRequest("POST", "/api/otp/verify", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockOTP.On("Verify", c.Request.Context(), "alice@example.com", "123456").Return(nil)

	handler.verify(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "OTP verified successfully!")

	mockOTP.AssertExpectations(t)
}

func TestOTPHandler_verify_expired(t *testing.T) {
	mockOTP := &MockOTPUseCase{}
	handler := NewOTPHandler(mockOTP)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(verifyOTPRequest{Email: "alice@example.com", Code: "123456"})
	c.Request = httptest.NewRequest("POST", "/api/otp/verify", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockOTP.On("Verify", c.Request.Context(), "alice@example.com", "123456").Return(otp.ErrNoActiveChallenge)

	handler.verify(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "OTP expired or invalid")
}
