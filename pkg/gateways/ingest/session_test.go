package ingest

import (
	"errors"
	"io"
	"testing"

	"github.com/ecosense/eco-ingest/pkg/entities"
	"github.com/ecosense/eco-ingest/pkg/gateways/broker/network"
	"github.com/ecosense/eco-ingest/pkg/gateways/broker/network/mocks"
	"github.com/ecosense/eco-ingest/pkg/logging"
	"github.com/ecosense/eco-ingest/pkg/monitoring"
	"github.com/stretchr/testify/assert"
)

const sessionDeviceID = "0b7f55c7-77f9-4f06-9b6a-2f2a8706a1d6"

func newTestSessionManager(subscriberMock *mocks.SubscriberMock) (*SessionManager, SubscriptionStore, chan network.InMsg) {
	store := NewMemorySubscriptionStore()
	msgChan := make(chan network.InMsg)
	log := logging.NewLogrus("error", io.Discard).Get("Testing")
	return NewSessionManager(store, subscriberMock, msgChan, monitoring.NewMetrics(), log), store, msgChan
}

func TestPivotToDataChannel(t *testing.T) {
	subscriberMock := new(mocks.SubscriberMock)
	manager, store, msgChan := newTestSessionManager(subscriberMock)
	subscriberMock.On("UnsubscribeFromDeviceChannels", sessionDeviceID).Return(nil)
	subscriberMock.On("SubscribeToDeviceData", msgChan, sessionDeviceID).Return(nil)

	manager.PivotToDataChannel(sessionDeviceID)
	assert.Equal(t, []string{entities.ChannelData}, store.Channels(sessionDeviceID))
	subscriberMock.AssertExpectations(t)
}

func TestPivotToDataChannelWhenRepeatedThenSameSubscriptionSet(t *testing.T) {
	subscriberMock := new(mocks.SubscriberMock)
	manager, store, msgChan := newTestSessionManager(subscriberMock)
	subscriberMock.On("UnsubscribeFromDeviceChannels", sessionDeviceID).Return(nil)
	subscriberMock.On("SubscribeToDeviceData", msgChan, sessionDeviceID).Return(nil)

	manager.PivotToDataChannel(sessionDeviceID)
	manager.PivotToDataChannel(sessionDeviceID)
	assert.Equal(t, []string{entities.ChannelData}, store.Channels(sessionDeviceID))
	subscriberMock.AssertNumberOfCalls(t, "UnsubscribeFromDeviceChannels", 2)
	subscriberMock.AssertNumberOfCalls(t, "SubscribeToDeviceData", 2)
}

func TestPivotToDataChannelWhenUnsubscribeFailsThenNoTransition(t *testing.T) {
	subscriberMock := new(mocks.SubscriberMock)
	manager, store, _ := newTestSessionManager(subscriberMock)
	subscriberMock.On("UnsubscribeFromDeviceChannels", sessionDeviceID).Return(errors.New("failed"))

	manager.PivotToDataChannel(sessionDeviceID)
	assert.Empty(t, store.Channels(sessionDeviceID))
	subscriberMock.AssertNotCalled(t, "SubscribeToDeviceData")
}

func TestPivotToDataChannelWhenSubscribeFailsThenDeviceNotStreamed(t *testing.T) {
	subscriberMock := new(mocks.SubscriberMock)
	manager, store, msgChan := newTestSessionManager(subscriberMock)
	subscriberMock.On("UnsubscribeFromDeviceChannels", sessionDeviceID).Return(nil)
	subscriberMock.On("SubscribeToDeviceData", msgChan, sessionDeviceID).Return(errors.New("failed"))

	manager.PivotToDataChannel(sessionDeviceID)
	assert.Empty(t, store.Channels(sessionDeviceID))
}

func TestMemorySubscriptionStore(t *testing.T) {
	store := NewMemorySubscriptionStore()
	assert.Empty(t, store.Channels(sessionDeviceID))

	store.SetChannels(sessionDeviceID, []string{entities.ChannelData})
	assert.Equal(t, []string{entities.ChannelData}, store.Channels(sessionDeviceID))

	store.SetChannels(sessionDeviceID, nil)
	assert.Empty(t, store.Channels(sessionDeviceID))
}
