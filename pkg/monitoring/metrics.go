package monitoring

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "eco_ingest_"

// Drop reasons reported on the messages_dropped_total counter.
const (
	ReasonMalformedTopic   = "malformed_topic"
	ReasonInvalidDevice    = "invalid_device"
	ReasonUnknownChannel   = "unknown_channel"
	ReasonMalformedPayload = "malformed_payload"
	ReasonNotTelemetry     = "not_telemetry"
)

// Metrics is the observable counterpart of the pipeline's contained
// failures: nothing crashes on a bad message, but every outcome is counted.
type Metrics struct {
	registry *prometheus.Registry

	MessagesReceived     *prometheus.CounterVec
	MessagesDropped      *prometheus.CounterVec
	EnrichmentFailures   prometheus.Counter
	PersistenceFailures  prometheus.Counter
	ReadingsPersisted    prometheus.Counter
	AcksPublished        prometheus.Counter
	SubscriptionFailures prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		MessagesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "messages_received_total",
			Help: "Inbound messages by channel",
		}, []string{"channel"}),
		MessagesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "messages_dropped_total",
			Help: "Messages dropped before the pipeline completed, by reason",
		}, []string{"reason"}),
		EnrichmentFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "enrichment_failures_total",
			Help: "Weather lookups that produced no data",
		}),
		PersistenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "persistence_failures_total",
			Help: "Readings lost to a store-level failure",
		}),
		ReadingsPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "readings_persisted_total",
			Help: "Readings written to the store",
		}),
		AcksPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "acks_published_total",
			Help: "Acknowledgments published to devices",
		}),
		SubscriptionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "subscription_failures_total",
			Help: "Subscribe or unsubscribe operations rejected by the broker",
		}),
	}

	m.registry.MustRegister(
		m.MessagesReceived,
		m.MessagesDropped,
		m.EnrichmentFailures,
		m.PersistenceFailures,
		m.ReadingsPersisted,
		m.AcksPublished,
		m.SubscriptionFailures,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ListenAndServe blocks serving the exposition endpoint.
func (m *Metrics) ListenAndServe(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
