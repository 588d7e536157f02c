// Package metrics defines and registers all custom Prometheus metrics for the
// LUMA gallery API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry when the package
// is initialised; Handler exposes them for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every LUMA series, including the HTTP request series
// recorded by the router middleware.
const Namespace = "luma"

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordsWrittenTotal counts successful collection mutations.
// Labels:
//   - collection: "users" or "art"
//   - operation: "insert", "update" or "delete"
var RecordsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "records_written_total",
		Help:      "Total number of record mutations persisted, by collection and operation.",
	},
	[]string{"collection", "operation"},
)

// RecordsNotFoundTotal counts lookups by id that matched nothing.
// Label:
//   - collection: "users" or "art"
var RecordsNotFoundTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "records_not_found_total",
		Help:      "Total number of id lookups that matched no record.",
	},
	[]string{"collection"},
)

// StoreErrorsTotal counts storage failures.
// Labels:
//   - collection: "users" or "art"
//   - operation: "list", "insert", "update" or "delete"
var StoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "store_errors_total",
		Help:      "Total number of record store failures, by collection and operation.",
	},
	[]string{"collection", "operation"},
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
