// Package metrics defines the custom Prometheus metrics of the portal
// gateway. It is the single source of truth for metric names, labels, and
// help strings; echoprometheus covers generic HTTP request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// SignInsTotal counts sign-in attempts by result.
// Label:
//   - result: "success", "mfa", "conflict", "invalid", or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, labelled by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts route-guard evaluations.
// Labels:
//   - outcome: "render", "redirect_login", or "redirect_unauthorized"
//   - route: the guarded route prefix (e.g. "/admin")
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route-guard decisions, labelled by outcome and route.",
	},
	[]string{"outcome", "route"},
)

// SignInDuration measures end-to-end sign-in latency, dominated by the
// round trip to the student-management backend.
var SignInDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "signin_duration_seconds",
		Help:      "Duration of sign-in handling including the backend round trip.",
		Buckets:   prometheus.DefBuckets,
	},
)
