package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmassist",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmassist",
			Name:      "booking_transitions_total",
			Help:      "Booking lifecycle transitions by outcome.",
		},
		[]string{"transition"},
	)

	notificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmassist",
			Name:      "notifications_sent_total",
			Help:      "Notifications appended to the relay, by type.",
		},
		[]string{"type"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingTransitions, notificationsSent)
	})
}

func IncHTTP(method, path, status string) {
	httpRequests.WithLabelValues(method, path, status).Inc()
}

func IncBookingTransition(transition string) {
	bookingTransitions.WithLabelValues(transition).Inc()
}

func IncNotification(notifType string) {
	notificationsSent.WithLabelValues(notifType).Inc()
}
