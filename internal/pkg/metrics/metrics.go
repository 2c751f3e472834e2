// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OrderMetrics counts the order lifecycle operations handled by the service.
type OrderMetrics struct {
	OrdersCreated *prometheus.CounterVec
	Transitions   *prometheus.CounterVec
	Estimates     *prometheus.CounterVec
}

// NewOrderMetrics registers the order counters on the default registry.
// Call once at startup; a second call panics on duplicate registration.
func NewOrderMetrics() *OrderMetrics {
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bibdelivery",
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	}, []string{"payment_method"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bibdelivery",
		Name:      "order_transitions_total",
		Help:      "Total number of order lifecycle transitions.",
	}, []string{"action"})
	estimates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bibdelivery",
		Name:      "estimates_total",
		Help:      "Total number of delivery fee estimates.",
	}, []string{"serviceable"})

	prometheus.MustRegister(ordersCreated, transitions, estimates)
	return &OrderMetrics{
		OrdersCreated: ordersCreated,
		Transitions:   transitions,
		Estimates:     estimates,
	}
}

// Handler returns the /metrics scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
