package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"enrichment-dash/internal/gene"
)

// Prometheus exports filter activity as Prometheus collectors.
type Prometheus struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
	rows    *prometheus.GaugeVec
}

// NewPrometheus creates the collectors and registers them on reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "enrichdash_filter_calls_total",
			Help: "Total row filter invocations",
		}, []string{"origin", "path"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enrichdash_filter_latency_seconds",
			Help:    "Latency of row filter invocations",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"path"}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "enrichdash_filter_visible_rows",
			Help: "Number of rows returned by the last filter invocation",
		}, []string{"origin"}),
	}
	for _, c := range []prometheus.Collector{p.calls, p.latency, p.rows} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ObserveFilter implements Observer.
func (p *Prometheus) ObserveFilter(origin string, path gene.Path, rows int, d time.Duration) {
	p.calls.WithLabelValues(origin, string(path)).Inc()
	p.latency.WithLabelValues(string(path)).Observe(d.Seconds())
	p.rows.WithLabelValues(origin).Set(float64(rows))
}
