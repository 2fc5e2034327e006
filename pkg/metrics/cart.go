package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shopcart"

// CartMetrics counts cart mutations and slot backend failures.
type CartMetrics struct {
	mutations  *prometheus.CounterVec
	slotErrors *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Cart mutations by action and outcome.",
	}, []string{"action", "outcome"})
	slotErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slot_errors_total",
		Help:      "Failed slot backend operations.",
	}, []string{"op"})
	reg.MustRegister(mutations, slotErrors)
	return &CartMetrics{mutations: mutations, slotErrors: slotErrors}
}

// ObserveMutation increments the mutation counter.
func (c *CartMetrics) ObserveMutation(action, outcome string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
}

// ObserveSlotError increments the slot failure counter for op.
func (c *CartMetrics) ObserveSlotError(op string) {
	if c == nil || c.slotErrors == nil {
		return
	}
	c.slotErrors.WithLabelValues(normalizeLabel(op)).Inc()
}

// HTTPMetrics records request latency per route pattern.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the request histogram on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration)
	return &HTTPMetrics{duration: duration}
}

// ObserveRequest records one served request.
func (h *HTTPMetrics) ObserveRequest(method, route, status string, duration time.Duration) {
	if h == nil || h.duration == nil {
		return
	}
	h.duration.WithLabelValues(method, normalizeLabel(route), status).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
