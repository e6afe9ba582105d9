package mapper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the optional Prometheus collectors updated by a Mapper.
type Metrics struct {
	RowsMapped    *prometheus.CounterVec
	FieldFailures *prometheus.CounterVec
	MapErrors     *prometheus.CounterVec
	MapDuration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		RowsMapped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rowmapper_rows_mapped_total",
			Help: "The total number of rows decoded into destination instances",
		}, []string{"type"}),

		FieldFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rowmapper_field_failures_total",
			Help: "The total number of fields left at their default after a fetch or assignment failure",
		}, []string{"type", "column"}),

		MapErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rowmapper_map_errors_total",
			Help: "The total number of mapping calls aborted by a fatal error",
		}, []string{"type", "op"}),

		MapDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rowmapper_map_duration_seconds",
			Help:    "Time taken to drain a row source",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),
	}
}

func (m *Metrics) rowMapped(typ string) {
	if m == nil {
		return
	}

	m.RowsMapped.WithLabelValues(typ).Inc()
}

func (m *Metrics) fieldFailed(typ, column string) {
	if m == nil {
		return
	}

	m.FieldFailures.WithLabelValues(typ, column).Inc()
}

func (m *Metrics) mapFailed(typ string, op Op) {
	if m == nil {
		return
	}

	m.MapErrors.WithLabelValues(typ, string(op)).Inc()
}

func (m *Metrics) observe(typ string, seconds float64) {
	if m == nil {
		return
	}

	m.MapDuration.WithLabelValues(typ).Observe(seconds)
}
