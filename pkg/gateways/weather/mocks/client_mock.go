package mocks

import (
	"context"

	"github.com/ecosense/eco-ingest/pkg/entities"
	"github.com/stretchr/testify/mock"
)

type ClientMock struct {
	mock.Mock
}

func (c *ClientMock) CurrentByCoordinates(ctx context.Context, lat, long string) entities.WeatherResult {
	args := c.Called(ctx, lat, long)
	return args.Get(0).(entities.WeatherResult)
}
