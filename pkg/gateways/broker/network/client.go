package network

import (
	"github.com/cenkalti/backoff"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Messaging is the broker surface the rest of the system depends on:
// subscribe with a delivery channel, unsubscribe, publish, lifecycle.
type Messaging interface {
	Start() error
	Stop()
	OnMessage(msgChan chan InMsg, topicFilter string) error
	Unsubscribe(topics ...string) error
	Publish(topic string, payload interface{}) error
}

// InMsg represents a message delivered by the broker.
type InMsg struct {
	Topic string
	Body  []byte
}

type MQTTHandler struct {
	conn connection
}

func NewMQTTHandler(conn connection) *MQTTHandler {
	return &MQTTHandler{conn: conn}
}

func (h *MQTTHandler) Start() error {
	return backoff.Retry(h.conn.connect, backoff.NewExponentialBackOff())
}

func (h *MQTTHandler) Stop() {
	if h.conn.isConnected() {
		h.conn.disconnect()
	}
}

func (h *MQTTHandler) OnMessage(msgChan chan InMsg, topicFilter string) error {
	return h.conn.subscribe(topicFilter, func(_ mqtt.Client, msg mqtt.Message) {
		msgChan <- InMsg{Topic: msg.Topic(), Body: msg.Payload()}
	})
}

func (h *MQTTHandler) Unsubscribe(topics ...string) error {
	return h.conn.unsubscribe(topics...)
}

func (h *MQTTHandler) Publish(topic string, payload interface{}) error {
	return h.conn.publish(topic, payload)
}
