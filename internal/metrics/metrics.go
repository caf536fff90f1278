// Package metrics defines and registers all custom Prometheus metrics for the
// cap-table API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry at package
// init; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "captable"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" (bad credentials) or "error"
//     (infrastructure trouble); the three sum to total attempts
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CacheOpsTotal counts read-through cache lookups.
// Labels:
//   - key: the cache key family ("shareholders_list" or "issuances_list")
//   - result: "hit", "miss" or "error"
var CacheOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_ops_total",
		Help:      "Total number of cache lookups, by key family and result.",
	},
	[]string{"key", "result"},
)

// ShareholdersCreatedTotal counts successfully created shareholder accounts.
var ShareholdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shareholders_created_total",
		Help:      "Total number of shareholder accounts created.",
	},
)

// IssuancesCreatedTotal counts successfully recorded share issuances.
var IssuancesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issuances_created_total",
		Help:      "Total number of share issuances recorded.",
	},
)

// NotificationsDroppedTotal counts issuance notifications dropped because a
// worker queue was full.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of issuance notifications dropped on a full queue.",
	},
)

// CertificateRenderDuration measures how long rendering one certificate takes.
var CertificateRenderDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "certificate_render_duration_seconds",
		Help:      "Duration of share certificate PDF rendering.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
