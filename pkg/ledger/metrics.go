package ledger

import "github.com/prometheus/client_golang/prometheus"

var expensesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_expenses_total",
		Help: "How many expenses were booked, partitioned by whether they needed a subsidy.",
	},
	[]string{"kind"},
)

var allocationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_allocations_total",
		Help: "How many allocations were created, partitioned by allocation type.",
	},
	[]string{"type"},
)

var carryoversTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_carryovers_total",
		Help: "How many period settlements were recorded, partitioned by action.",
	},
	[]string{"action"},
)

var rejectionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_rejections_total",
		Help: "How many operations were rejected by a business rule, partitioned by rule.",
	},
	[]string{"code"},
)

// Collectors returns the Prometheus metrics of the engine.
//
// The counters are updated whether or not they are registered.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		expensesTotal,
		allocationsTotal,
		carryoversTotal,
		rejectionsTotal,
	}
}
