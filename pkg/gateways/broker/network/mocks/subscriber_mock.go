package mocks

import (
	"github.com/ecosense/eco-ingest/pkg/gateways/broker/network"
	"github.com/stretchr/testify/mock"
)

type SubscriberMock struct {
	mock.Mock
}

func (s *SubscriberMock) SubscribeToDeviceMessages(msgChan chan network.InMsg) error {
	args := s.Called(msgChan)
	return args.Error(0)
}

func (s *SubscriberMock) SubscribeToDeviceData(msgChan chan network.InMsg, deviceID string) error {
	args := s.Called(msgChan, deviceID)
	return args.Error(0)
}

func (s *SubscriberMock) UnsubscribeFromDeviceChannels(deviceID string) error {
	args := s.Called(deviceID)
	return args.Error(0)
}
