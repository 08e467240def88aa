package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storeadmin"

// Collectors groups every metric the service exports.
type Collectors struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	OrdersCreated      prometheus.Counter
	OrderFailures      *prometheus.CounterVec
	OrderNumberRetries prometheus.Counter
	OrderCreateLatency prometheus.Histogram
}

// New builds the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "orders", Name: "created_total",
			Help: "Orders committed.",
		}),
		OrderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "orders", Name: "create_failures_total",
			Help: "Order creations that did not commit, by reason.",
		}, []string{"reason"}),
		OrderNumberRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "orders", Name: "number_conflict_retries_total",
			Help: "Order creations retried after an order number collision.",
		}),
		OrderCreateLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "orders", Name: "create_duration_seconds",
			Help:    "Time spent creating an order, including retries.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.OrdersCreated,
		c.OrderFailures,
		c.OrderNumberRetries,
		c.OrderCreateLatency,
	)

	return c
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration records the elapsed time in seconds on h.
func (t *Timer) ObserveDuration(h prometheus.Observer) time.Duration {
	d := t.Duration()
	h.Observe(d.Seconds())
	return d
}
