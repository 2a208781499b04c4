package sqlfrag

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector, bir DB'nin havuz göstergelerini ve sorgu sürelerini Prometheus'a aktarır.
//
// Örnek:
//
//	c := sqlfrag.NewCollector("app")
//	db := sqlfrag.NewDB(sqlxDB, sqlfrag.WithMetrics(c))
//	registry.MustRegister(c)
type Collector struct {
	stats func() PoolStats

	connections *prometheus.Desc
	pending     *prometheus.Desc
	durations   *prometheus.HistogramVec
	failures    *prometheus.CounterVec
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector, verilen namespace altında metrikleri tanımlar.
func NewCollector(namespace string) *Collector {
	return &Collector{
		connections: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "sqlfrag", "connections"),
			"Number of pool connections by state",
			[]string{"state"}, nil,
		),
		pending: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "sqlfrag", "pending_acquires"),
			"Number of callers waiting to acquire a connection",
			nil, nil,
		),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sqlfrag",
			Name:      "query_duration_seconds",
			Help:      "Query execution time by operation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sqlfrag",
			Name:      "query_errors_total",
			Help:      "Failed queries by operation",
		}, []string{"op"}),
	}
}

// Describe implements prometheus.Collector. The vectors are described even
// before their first observation.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.connections
	ch <- c.pending
	c.durations.Describe(ch)
	c.failures.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c.stats != nil {
		s := c.stats()
		ch <- prometheus.MustNewConstMetric(c.connections, prometheus.GaugeValue, float64(s.Active), "active")
		ch <- prometheus.MustNewConstMetric(c.connections, prometheus.GaugeValue, float64(s.Idle), "idle")
		ch <- prometheus.MustNewConstMetric(c.connections, prometheus.GaugeValue, float64(s.Total), "total")
		ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(s.Pending))
	}
	c.durations.Collect(ch)
	c.failures.Collect(ch)
}

func (c *Collector) observe(op string, elapsed time.Duration, err error) {
	c.durations.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		c.failures.WithLabelValues(op).Inc()
	}
}
