package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "staynest",
			Name:      "bookings_created_total",
			Help:      "Bookings created.",
		},
	)

	checkoutSessions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "staynest",
			Name:      "checkout_sessions_created_total",
			Help:      "Checkout sessions created with the payment provider.",
		},
	)

	webhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staynest",
			Name:      "webhook_events_total",
			Help:      "Payment provider webhook events by type and outcome.",
		},
		[]string{"type", "outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, checkoutSessions, webhookEvents)
	})
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncCheckoutSessionCreated() {
	checkoutSessions.Inc()
}

// IncWebhookEvent increments the webhook counter for an event type and
// processing outcome label.
func IncWebhookEvent(eventType, outcome string) {
	webhookEvents.WithLabelValues(eventType, outcome).Inc()
}
