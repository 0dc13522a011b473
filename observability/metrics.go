package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what happened during one run. Each run owns its own
// registry so nothing is shared between runs or tests.
type Metrics struct {
	Registry *prometheus.Registry

	PagesFetched  prometheus.Counter
	FetchFailures *prometheus.CounterVec
	ItemsDropped  *prometheus.CounterVec
	RecordsBuilt  prometheus.Counter
	DealsFound    prometheus.Gauge
	BestUnitPrice prometheus.Gauge
	LastRun       prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		PagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deals_discovery_pages_fetched_total",
			Help: "Search result pages fetched successfully",
		}),
		FetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deals_fetch_failures_total",
			Help: "Fetches that failed, by phase",
		}, []string{"phase"}),
		ItemsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deals_items_dropped_total",
			Help: "Candidates dropped during enrichment, by reason",
		}, []string{"reason"}),
		RecordsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deals_records_total",
			Help: "Normalized records produced",
		}),
		DealsFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deals_found",
			Help: "Records at or below the price threshold in the last run",
		}),
		BestUnitPrice: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deals_best_unit_price",
			Help: "Lowest unit price seen in the last run",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deals_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
	}
	m.Registry.MustRegister(
		m.PagesFetched, m.FetchFailures, m.ItemsDropped,
		m.RecordsBuilt, m.DealsFound, m.BestUnitPrice, m.LastRun,
	)
	return m
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
// An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
