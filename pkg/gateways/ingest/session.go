package ingest

import (
	"sync"

	"github.com/ecosense/eco-ingest/pkg/entities"
	"github.com/ecosense/eco-ingest/pkg/gateways/broker/network"
	"github.com/ecosense/eco-ingest/pkg/monitoring"
	"github.com/sirupsen/logrus"
)

// SubscriptionStore tracks which channels are currently subscribed per
// device. It exists so session behavior is testable without a live broker;
// the broker-side subscriptions are side effects issued alongside it.
type SubscriptionStore interface {
	Channels(deviceID string) []string
	SetChannels(deviceID string, channels []string)
}

type memorySubscriptionStore struct {
	mu       sync.RWMutex
	channels map[string][]string
}

func NewMemorySubscriptionStore() SubscriptionStore {
	return &memorySubscriptionStore{channels: make(map[string][]string)}
}

func (s *memorySubscriptionStore) Channels(deviceID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.channels[deviceID]
}

func (s *memorySubscriptionStore) SetChannels(deviceID string, channels []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[deviceID] = channels
}

// SessionManager is the per-device subscription state machine. A device
// starts on the namespace-wide handshake subscription; the first status or
// server_response message pivots it to its data channel only.
type SessionManager struct {
	store      SubscriptionStore
	subscriber network.Subscriber
	msgChan    chan network.InMsg
	metrics    *monitoring.Metrics
	log        *logrus.Entry
}

func NewSessionManager(store SubscriptionStore, subscriber network.Subscriber, msgChan chan network.InMsg, metrics *monitoring.Metrics, log *logrus.Entry) *SessionManager {
	return &SessionManager{
		store:      store,
		subscriber: subscriber,
		msgChan:    msgChan,
		metrics:    metrics,
		log:        log,
	}
}

// PivotToDataChannel drops every channel under the device's namespace and
// streams the data channel only. Idempotent: repeating it while already
// streaming re-issues the same unsubscribe/subscribe pair. Broker failures
// are logged and counted, never retried here; transport-level recovery is
// the broker client's job.
func (sm *SessionManager) PivotToDataChannel(deviceID string) {
	if err := sm.subscriber.UnsubscribeFromDeviceChannels(deviceID); err != nil {
		sm.metrics.SubscriptionFailures.Inc()
		sm.log.Errorln("unsubscribe device channels:", err, "device:", deviceID)
		return
	}
	sm.store.SetChannels(deviceID, nil)

	if err := sm.subscriber.SubscribeToDeviceData(sm.msgChan, deviceID); err != nil {
		sm.metrics.SubscriptionFailures.Inc()
		sm.log.Errorln("subscribe device data channel:", err, "device:", deviceID)
		return
	}
	sm.store.SetChannels(deviceID, []string{entities.ChannelData})
}
