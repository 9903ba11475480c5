// Package metrics defines and registers the custom Prometheus metrics of the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on import. HTTP
// request metrics are collected separately by the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - action: "signup" or "login"
//   - result: "success", "invalid", "conflict" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by outcome.",
	},
	[]string{"action", "result"},
)

// SessionsRejectedTotal counts session cookies that were presented but not honoured.
// Label:
//   - reason: "invalid" (bad signature, malformed, expired) or "revoked"
var SessionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_rejected_total",
		Help:      "Total number of presented session tokens treated as anonymous.",
	},
	[]string{"reason"},
)

// ── Commerce metrics ──────────────────────────────────────────────────────────

// OrdersCreatedTotal counts orders placed by customers.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed.",
	},
)

// ImageUploadsTotal counts admin image uploads.
// Label:
//   - result: "success", "rejected" or "error"
var ImageUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Total number of product image uploads, by outcome.",
	},
	[]string{"result"},
)

// ── Image cleanup metrics ─────────────────────────────────────────────────────

// ImageCleanupTotal counts background deletions of stored images.
// Label:
//   - result: "deleted", "failed" or "dropped" (queue full)
var ImageCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_cleanup_total",
		Help:      "Total number of stored image deletions, by outcome.",
	},
	[]string{"result"},
)

// ImageCleanupQueueDepth tracks the number of deletions waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ImageCleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "image_cleanup_queue_depth",
		Help:      "Current number of image deletions pending in each cleaner worker channel.",
	},
	[]string{"worker_id"},
)
