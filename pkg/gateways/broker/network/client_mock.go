package network

import (
	"github.com/stretchr/testify/mock"
)

type MessagingMock struct {
	mock.Mock
}

func (m *MessagingMock) Start() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MessagingMock) Stop() {
	m.Called()
}

func (m *MessagingMock) OnMessage(msgChan chan InMsg, topicFilter string) error {
	args := m.Called(msgChan, topicFilter)
	return args.Error(0)
}

func (m *MessagingMock) Unsubscribe(topics ...string) error {
	args := m.Called(topics)
	return args.Error(0)
}

func (m *MessagingMock) Publish(topic string, payload interface{}) error {
	args := m.Called(topic, payload)
	return args.Error(0)
}
