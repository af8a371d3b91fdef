package network

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	clientIDPrefix = "mqtt_backend_eco_app_sys"

	defaultQoS                    = 0
	retained                      = false
	tokenWaitTimeout              = 10 * time.Second
	disconnectQuiesceMilliseconds = 250
)

type connection interface {
	connect() error
	subscribe(topicFilter string, handler mqtt.MessageHandler) error
	unsubscribe(topics ...string) error
	publish(topic string, payload interface{}) error
	isConnected() bool
	disconnect()
}

type ConnectionConfig struct {
	URL      string
	Username string
	Password string
}

type MqttConnection struct {
	conf   ConnectionConfig
	client mqtt.Client
	log    *logrus.Entry
}

func NewMqttConnection(conf ConnectionConfig, log *logrus.Entry) *MqttConnection {
	return &MqttConnection{conf: conf, log: log}
}

func (c *MqttConnection) connect() error {
	options := mqtt.NewClientOptions().
		AddBroker(c.conf.URL).
		SetClientID(fmt.Sprintf("%s_%s", clientIDPrefix, uuid.NewString()[:8])).
		SetUsername(c.conf.Username).
		SetPassword(c.conf.Password).
		SetAutoReconnect(true).
		SetResumeSubs(true)
	options.OnConnectionLost = func(_ mqtt.Client, err error) {
		c.log.Errorln("broker connection lost:", err)
	}
	options.OnConnect = func(_ mqtt.Client) {
		c.log.Println("broker connected")
	}

	client := mqtt.NewClient(options)
	if err := waitToken(client.Connect()); err != nil {
		return err
	}
	c.client = client
	return nil
}

func (c *MqttConnection) subscribe(topicFilter string, handler mqtt.MessageHandler) error {
	return waitToken(c.client.Subscribe(topicFilter, defaultQoS, handler))
}

func (c *MqttConnection) unsubscribe(topics ...string) error {
	return waitToken(c.client.Unsubscribe(topics...))
}

func (c *MqttConnection) publish(topic string, payload interface{}) error {
	return waitToken(c.client.Publish(topic, defaultQoS, retained, payload))
}

func (c *MqttConnection) isConnected() bool {
	return c.client != nil && c.client.IsConnected()
}

func (c *MqttConnection) disconnect() {
	c.client.Disconnect(disconnectQuiesceMilliseconds)
}

func waitToken(token mqtt.Token) error {
	if !token.WaitTimeout(tokenWaitTimeout) {
		return fmt.Errorf("timed out waiting for broker operation")
	}
	return token.Error()
}
