package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "innerventory"

// Registry holds every metric the server exports.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Inventory metrics
var (
	// StockAdjustments counts quantity changes made by attendee reconciliation.
	StockAdjustments = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_adjustments_total",
			Help:      "Bra quantity adjustments applied by attendee reconciliation",
		},
		[]string{"direction"},
	)

	// UnresolvedSelections counts bra selections that matched no inventory line.
	UnresolvedSelections = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unresolved_selections_total",
			Help:      "Attendee bra selections that did not match any inventory item",
		},
	)

	// StockShortfalls counts reconciliations that left or would leave a quantity below zero.
	StockShortfalls = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_shortfalls_total",
			Help:      "Reconciliations that drove a bra quantity below zero",
		},
		[]string{"outcome"},
	)

	// AuditEntries counts appended action-log lines.
	AuditEntries = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_entries_total",
			Help:      "Entries appended to the action log",
		},
	)
)

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
