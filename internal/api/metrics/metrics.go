// Package metrics defines and registers the Prometheus collectors for the
// authentication service. It is the single source of truth for metric names,
// labels, and help strings. Collectors register themselves with the default
// registry at init via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer-token verifications by outcome.
// Label:
//   - result: "ok", "malformed", "bad_signature", or "expired"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of token verifications, by result.",
	},
	[]string{"result"},
)

// StorePersistErrorsTotal counts snapshot writes that failed. Persistence is
// best-effort: these failures are logged and counted but not surfaced to the
// request that triggered them.
var StorePersistErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_persist_errors_total",
		Help:      "Total number of failed record-store snapshot writes.",
	},
)

// StoreRecords tracks the current number of user records in memory.
var StoreRecords = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_records",
		Help:      "Current number of user records held by the store.",
	},
)

// PasswordHashDuration measures bcrypt hashing time. The work factor makes
// hashing deliberately slow; this histogram keeps that cost observable.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of password hash computations.",
		Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5},
	},
)
