package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carrental_bookings_created_total",
		Help: "Total number of booking requests successfully created.",
	})

	BookingsConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carrental_bookings_confirmed_total",
		Help: "Total number of bookings approved by an administrator.",
	})

	OTPIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carrental_otp_issued_total",
		Help: "Total number of OTP codes dispatched.",
	})

	NotificationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carrental_notification_failures_total",
		Help: "Total number of failed best-effort notifications.",
	},
		[]string{"stage"},
	)
)
