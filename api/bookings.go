package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/identity"
	"github.com/Domenick1991/carrental/internal/service/otp"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service  booking.BookingUseCase
	otps     otp.OTPUseCase
	identity identity.IdentityUseCase
}

type setStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type verifyBookingOTPRequest struct {
	Code string `json:"otp"`
}

func NewBookingHandler(service booking.BookingUseCase, otps otp.OTPUseCase, identitySvc identity.IdentityUseCase) *BookingHandler {
	return &BookingHandler{service: service, otps: otps, identity: identitySvc}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.PUT("/:id/status", h.setStatus)
	router.POST("/:id/verify-id", h.verifyGovtID)
	router.POST("/:id/otp", h.sendOTP)
	router.POST("/:id/otp/verify", h.verifyOTP)
	router.DELETE("/:id", h.delete)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please select booking start and end times"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while submitting your booking. Please try again."})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// list narrows to the caller's own bookings unless the session belongs to the
// administrator, who sees everything.
func (h *BookingHandler) list(c *gin.Context) {
	filter := booking.ListFilter{
		Status: domain.BookingStatus(c.Query("status")),
		Email:  c.Query("email"),
	}

	account, err := h.identity.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if account != nil && account.Role != domain.RoleAdmin {
		filter.Email = account.Email
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) setStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := ""
	reason := req.Reason
	if account, err := h.identity.Current(c.Request.Context()); err == nil && account != nil {
		actor = account.Email
		if account.Role != domain.RoleAdmin {
			reason = booking.SelfServiceCancellationReason
		}
	}

	updated, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), domain.BookingStatus(req.Status), actor, reason)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, booking.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrVerificationIncomplete):
			c.JSON(http.StatusConflict, gin.H{"error": "Both email OTP and government ID must be verified first"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking status. Please try again."})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) verifyGovtID(c *gin.Context) {
	updated, err := h.service.VerifyGovernmentID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify government ID. Please try again."})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) sendOTP(c *gin.Context) {
	if err := h.otps.IssueForBooking(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, otp.ErrMissingEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid email address found for the booking"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send OTP. Please try again."})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully!"})
}

func (h *BookingHandler) verifyOTP(c *gin.Context) {
	var req verifyBookingOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.otps.VerifyForBooking(c.Request.Context(), c.Param("id"), req.Code); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
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

func (h *BookingHandler) delete(c *gin.Context) {
	if err := h.service.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking. Please try again."})
		return
	}
	c.Status(http.StatusNoContent)
}
