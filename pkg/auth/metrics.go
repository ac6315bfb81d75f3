package auth

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the auth counters.
const (
	OutcomeSuccess     = "success"
	OutcomeInvalid     = "invalid_credentials"
	OutcomeLocked      = "locked"
	OutcomeLockedNow   = "locked_now"
	OutcomeUnknown     = "unknown_email"
	OutcomeConflict    = "conflict"
	OutcomeSent        = "sent"
	OutcomeNoAccount   = "no_account"
	OutcomeDeliveryErr = "delivery_failed"
	OutcomeError       = "error"
)

var (
	// LoginAttemptsTotal counts login attempts by outcome.
	LoginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clockit_login_attempts_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// PasswordResetRequestsTotal counts forgot-password requests by outcome.
	PasswordResetRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clockit_password_reset_requests_total",
			Help: "Total number of password reset requests by outcome",
		},
		[]string{"outcome"},
	)

	// RegistrationsTotal counts sign-ups by outcome.
	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clockit_registrations_total",
			Help: "Total number of registrations by outcome",
		},
		[]string{"outcome"},
	)
)

// RegisterMetrics registers auth metrics with the given Prometheus registry.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(LoginAttemptsTotal, PasswordResetRequestsTotal, RegistrationsTotal)
}
