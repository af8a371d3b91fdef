package network

import (
	"github.com/ecosense/eco-ingest/pkg/entities"
)

// AckPayload is the fixed confirmation sent to a device after its reading
// has been persisted.
const AckPayload = "ok"

type Publisher interface {
	PublishServerResponse(deviceID string, payload interface{}) error
}

type msgPublisher struct {
	mqtt      Messaging
	namespace string
}

func NewMsgPublisher(mqtt Messaging, namespace string) Publisher {
	return &msgPublisher{mqtt: mqtt, namespace: namespace}
}

func (mp *msgPublisher) PublishServerResponse(deviceID string, payload interface{}) error {
	return mp.mqtt.Publish(DeviceTopic(mp.namespace, deviceID, entities.ChannelServerResponse), payload)
}
