package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/carrental/internal/service/otp"
	"github.com/gin-gonic/gin"
)

type OTPHandler struct {
	service otp.OTPUseCase
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"otp"`
}

func NewOTPHandler(service otp.OTPUseCase) *OTPHandler {
	return &OTPHandler{service: service}
}

func (h *OTPHandler) Register(router *gin.RouterGroup) {
	router.POST("/send", h.send)
	router.POST("/verify", h.verify)
}

func (h *OTPHandler) send(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Issue(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, otp.ErrMissingEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter your email address"})
		case errors.Is(err, otp.ErrResendCooldown):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		default:
			// Сбой первичной отправки показываем пользователю
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send OTP. Please try again."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully!"})
}

func (h *OTPHandler) verify(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Verify(c.Request.Context(), req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, otp.ErrNoActiveChallenge):
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP expired or invalid. Please request a new OTP."})
		case errors.Is(err, otp.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP. Please try again."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully!"})
}
