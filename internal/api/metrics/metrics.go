// Package metrics defines and registers all custom Prometheus metrics for
// the login service. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// LoginAttemptsTotal counts authentication attempts by outcome.
// Label:
//   - result: "success", "rate_limited", "invalid_input",
//     "invalid_credentials" or "internal_error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// SessionsIssuedTotal counts session tokens minted on successful logins.
// Label:
//   - remember: "true" for 30-day sessions, "false" for 1-day sessions
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session tokens issued, by remember-me flag.",
	},
	[]string{"remember"},
)

// TokenVerificationsTotal counts session token checks at the guard.
// Label:
//   - result: "ok" or "rejected" (signature, expiry and parse failures all
//     collapse to "rejected" — the guard does not distinguish them)
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of session token verifications, by result.",
	},
	[]string{"result"},
)

// LoginDuration measures how long one authentication takes end-to-end,
// including the bcrypt comparison.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of the credential check pipeline.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
