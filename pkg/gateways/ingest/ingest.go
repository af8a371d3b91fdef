package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/ecosense/eco-ingest/pkg/entities"
	"github.com/ecosense/eco-ingest/pkg/gateways/broker/network"
	"github.com/ecosense/eco-ingest/pkg/gateways/weather"
	"github.com/ecosense/eco-ingest/pkg/monitoring"
	"github.com/ecosense/eco-ingest/pkg/storage"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Integration consumes the shared broker connection and runs every message
// through route → session transition or validate → enrich → sanitize →
// persist → ack. A bounded worker pool caps in-flight messages; any failure
// stays contained to its own message.
type Integration struct {
	namespace          string
	workers            int
	enrichmentTimeout  time.Duration
	persistenceTimeout time.Duration

	sessions   *SessionManager
	publisher  network.Publisher
	subscriber network.Subscriber
	weather    weather.Client
	repository storage.ReadingRepository
	metrics    *monitoring.Metrics
	damper     *logDamper
	log        *logrus.Entry

	msgChan chan network.InMsg
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewIntegration(
	tuning entities.TuningConfig,
	store SubscriptionStore,
	publisher network.Publisher,
	subscriber network.Subscriber,
	weatherClient weather.Client,
	repository storage.ReadingRepository,
	metrics *monitoring.Metrics,
	log *logrus.Entry,
) *Integration {
	msgChan := make(chan network.InMsg)
	return &Integration{
		namespace:          tuning.Namespace,
		workers:            tuning.Workers,
		enrichmentTimeout:  time.Duration(tuning.EnrichmentTimeoutSeconds) * time.Second,
		persistenceTimeout: time.Duration(tuning.PersistenceTimeoutSeconds) * time.Second,
		sessions:           NewSessionManager(store, subscriber, msgChan, metrics, log),
		publisher:          publisher,
		subscriber:         subscriber,
		weather:            weatherClient,
		repository:         repository,
		metrics:            metrics,
		damper:             newLogDamper(tuning.DamperCapacity, tuning.DamperFalsePositiveRate, tuning.DamperResetUsagePercentage),
		log:                log,
		msgChan:            msgChan,
		done:               make(chan struct{}),
	}
}

// Start opens the namespace-wide subscription and launches the worker pool.
func (i *Integration) Start() error {
	if err := i.subscriber.SubscribeToDeviceMessages(i.msgChan); err != nil {
		return errors.Wrap(err, "subscribe to device messages")
	}
	i.log.Println("subscribed to", i.namespace, "with", i.workers, "workers")

	for worker := 0; worker < i.workers; worker++ {
		i.wg.Add(1)
		go i.consume()
	}
	return nil
}

// Close stops the worker pool. Messages already being handled finish first.
func (i *Integration) Close() {
	close(i.done)
	i.wg.Wait()
}

func (i *Integration) consume() {
	defer i.wg.Done()
	for {
		select {
		case <-i.done:
			return
		case msg := <-i.msgChan:
			i.handleMessage(msg)
		}
	}
}

func (i *Integration) handleMessage(msg network.InMsg) {
	topic, err := network.ParseTopic(msg.Topic)
	if err != nil {
		i.metrics.MessagesDropped.WithLabelValues(dropReason(err)).Inc()
		if i.damper.shouldLog(msg.Topic) {
			i.log.Warnln("dropped message:", err, "topic:", msg.Topic)
		}
		return
	}
	i.metrics.MessagesReceived.WithLabelValues(topic.Channel).Inc()

	switch topic.Channel {
	case entities.ChannelStatus, entities.ChannelServerResponse:
		i.sessions.PivotToDataChannel(topic.DeviceID)
	case entities.ChannelData:
		i.processReading(topic.DeviceID, msg.Body)
	}
}

// processReading runs the full data pipeline for one message. Enrichment
// failure degrades to defaults; persistence failure drops the record and
// suppresses the ack.
func (i *Integration) processReading(deviceID string, body []byte) {
	reading, err := decodeReading(deviceID, body)
	if err != nil {
		i.metrics.MessagesDropped.WithLabelValues(dropReason(err)).Inc()
		i.log.Warnln("dropped data message:", err, "device:", deviceID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), i.enrichmentTimeout)
	weatherResult := i.weather.CurrentByCoordinates(
		ctx,
		coordinate(reading.Payload["local_gps_lat"]),
		coordinate(reading.Payload["local_gps_long"]),
	)
	cancel()
	if !weatherResult.Success {
		i.metrics.EnrichmentFailures.Inc()
		i.log.Infoln("enrichment produced no data:", weatherResult.Msg, "device:", deviceID)
	}

	record := buildLogRecord(reading, weatherResult)

	ctx, cancel = context.WithTimeout(context.Background(), i.persistenceTimeout)
	err = i.repository.SaveReading(ctx, record)
	cancel()
	if err != nil {
		i.metrics.PersistenceFailures.Inc()
		i.log.Errorln("persist reading:", err, "device:", deviceID)
		return
	}
	i.metrics.ReadingsPersisted.Inc()

	if err := i.publisher.PublishServerResponse(deviceID, network.AckPayload); err != nil {
		i.log.Errorln("publish ack:", err, "device:", deviceID)
		return
	}
	i.metrics.AcksPublished.Inc()
}

func coordinate(value interface{}) string {
	text := sanitizeString(value, maxCoordinateLength)
	if text == nil {
		return ""
	}
	return *text
}

func dropReason(err error) string {
	switch err {
	case network.ErrMalformedTopic:
		return monitoring.ReasonMalformedTopic
	case network.ErrInvalidDevice:
		return monitoring.ReasonInvalidDevice
	case network.ErrUnknownChannel:
		return monitoring.ReasonUnknownChannel
	case errNotTelemetry:
		return monitoring.ReasonNotTelemetry
	default:
		return monitoring.ReasonMalformedPayload
	}
}
