package mocks

import (
	"github.com/stretchr/testify/mock"
)

type PublisherMock struct {
	mock.Mock
}

func (p *PublisherMock) PublishServerResponse(deviceID string, payload interface{}) error {
	args := p.Called(deviceID, payload)
	return args.Error(0)
}
