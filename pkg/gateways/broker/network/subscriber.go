package network

import (
	"fmt"

	"github.com/ecosense/eco-ingest/pkg/entities"
)

type Subscriber interface {
	SubscribeToDeviceMessages(msgChan chan InMsg) error
	SubscribeToDeviceData(msgChan chan InMsg, deviceID string) error
	UnsubscribeFromDeviceChannels(deviceID string) error
}

type msgSubscriber struct {
	mqtt      Messaging
	namespace string
}

func NewMsgSubscriber(mqtt Messaging, namespace string) Subscriber {
	return &msgSubscriber{mqtt: mqtt, namespace: namespace}
}

// SubscribeToDeviceMessages opens the namespace-wide subscription every
// device initially announces itself on.
func (ms *msgSubscriber) SubscribeToDeviceMessages(msgChan chan InMsg) error {
	return ms.mqtt.OnMessage(msgChan, fmt.Sprintf("%s/#", ms.namespace))
}

func (ms *msgSubscriber) SubscribeToDeviceData(msgChan chan InMsg, deviceID string) error {
	return ms.mqtt.OnMessage(msgChan, DeviceTopic(ms.namespace, deviceID, entities.ChannelData))
}

func (ms *msgSubscriber) UnsubscribeFromDeviceChannels(deviceID string) error {
	return ms.mqtt.Unsubscribe(
		DeviceTopic(ms.namespace, deviceID, entities.ChannelStatus),
		DeviceTopic(ms.namespace, deviceID, entities.ChannelServerResponse),
		DeviceTopic(ms.namespace, deviceID, entities.ChannelData),
	)
}
