package httptransport

import (
	"errors"
	"net/http"

	"rofl-backend/internal/pricing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	resultOK       = "ok"
	resultInvalid  = "invalid"
	resultError    = "error"
	resultRejected = "rejected"
)

type Metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	authEvents   *prometheus.CounterVec
	otpEmails    *prometheus.CounterVec
	uploads      *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rofl",
			Subsystem: "pricing",
			Name:      "calculations_total",
			Help:      "Payout-to-pot calculations by result.",
		}, []string{"result"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rofl",
			Name:      "auth_events_total",
			Help:      "Account authentication events by result.",
		}, []string{"event", "result"}),
		otpEmails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rofl",
			Name:      "otp_emails_total",
			Help:      "Password reset code requests by result.",
		}, []string{"result"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rofl",
			Name:      "uploads_total",
			Help:      "Profile image uploads by result.",
		}, []string{"result"}),
	}
	registry.MustRegister(
		m.calculations,
		m.authEvents,
		m.otpEmails,
		m.uploads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObservePricing matches hostitem.Observer.
func (m *Metrics) ObservePricing(err error) {
	switch {
	case err == nil:
		m.calculations.WithLabelValues(resultOK).Inc()
	case errors.Is(err, pricing.ErrInvalidInput):
		m.calculations.WithLabelValues(resultInvalid).Inc()
	default:
		m.calculations.WithLabelValues(resultError).Inc()
	}
}

func (m *Metrics) authEvent(event, result string) {
	m.authEvents.WithLabelValues(event, result).Inc()
}

func (m *Metrics) otpEmail(result string) {
	m.otpEmails.WithLabelValues(result).Inc()
}

func (m *Metrics) upload(result string) {
	m.uploads.WithLabelValues(result).Inc()
}
