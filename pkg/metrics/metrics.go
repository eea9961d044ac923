package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phoneauth_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// OTPVerifications counts OTP checks and their outcome (success|failure).
	OTPVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phoneauth_otp_verifications_total",
			Help: "Total number of OTP verification attempts",
		},
		[]string{"result"},
	)

	// SMSDeliveries counts outbound SMS dispatches by result (delivered|failed|disabled).
	SMSDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phoneauth_sms_deliveries_total",
			Help: "Total number of SMS delivery attempts",
		},
		[]string{"result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "phoneauth_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
