package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// CanTransition is the single place the status table lives. Pending bookings
// can be confirmed, rejected or cancelled; a confirmed booking can only be
// cancelled; rejected and cancelled are terminal.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusRejected || to == BookingStatusCancelled
	case BookingStatusConfirmed:
		return to == BookingStatusCancelled
	default:
		return false
	}
}

func IsValidStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusRejected, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID         string        `json:"id"`
	UserName   string        `json:"userName"`
	UserEmail  string        `json:"userEmail"`
	UserPhone  string        `json:"userPhone"`
	CarID      int64         `json:"carId"`
	CarName    string        `json:"carName"`
	CarImage   string        `json:"carImage"`
	CarType    string        `json:"carType"`
	StartTime  time.Time     `json:"startTime"`
	EndTime    time.Time     `json:"endTime"`
	TotalPrice int64         `json:"totalPrice"`
	Status     BookingStatus `json:"status"`

	GovtIDType   string `json:"govtIdType"`
	GovtIDNumber string `json:"govtIdNumber"`
	GovtIDImage  string `json:"govtIdImage"` // data URL, stored as-is

	Address  string `json:"address"`
	City     string `json:"city"`
	Location string `json:"location"`

	OTPVerified    bool `json:"otpVerified"`
	GovtIDVerified bool `json:"govtIdVerified"`

	// OTP is the admin-side confirmation code. It lives on the record only
	// between send and verify and is overwritten by every resend.
	OTP string `json:"otp,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy        string     `json:"cancelledBy,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
}
