// Package metrics defines and registers the custom Prometheus metrics of the
// auth bridge. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lawauth"

// ── Bridge metrics ────────────────────────────────────────────────────────────

// AuthOperationsTotal counts bridge operations by result.
// Labels:
//   - operation: login, register, logout, session, email_availability, username_availability
//   - outcome: "ok", "rejected" (provider said no), "not_found", "invalid", "error"
var AuthOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_operations_total",
		Help:      "Total number of auth bridge operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// NormalizationFailuresTotal counts provider payloads that could not be normalized.
// Label:
//   - kind: "missing_field", "invalid_date" or "missing_token"
var NormalizationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "normalization_failures_total",
		Help:      "Total number of identity provider responses that failed normalization.",
	},
	[]string{"kind"},
)

// IdentifierResolutionsTotal counts how login identifiers were resolved.
// Label:
//   - kind: "email", "username", "native" or "not_found"
var IdentifierResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identifier_resolutions_total",
		Help:      "Total number of login identifier resolutions, by kind.",
	},
	[]string{"kind"},
)

// ── Provider metrics ──────────────────────────────────────────────────────────

// ProviderRequestDuration measures round trips from the bridge to the identity provider.
// Labels:
//   - route: provider route suffix (e.g. "/sign-in/email")
//   - status: HTTP status code, or "error" when the provider was unreachable
var ProviderRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of proxied requests to the identity provider.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route", "status"},
)

// SessionsIssuedTotal counts sessions created by the embedded identity provider.
// Label:
//   - method: "sign_up", "email" or "username"
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions issued by the embedded identity provider.",
	},
	[]string{"method"},
)

// RateLimitedTotal counts requests rejected by the auth rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of auth requests rejected with 429.",
	},
)
