package mocks

import (
	"context"

	"github.com/ecosense/eco-ingest/pkg/entities"
	"github.com/stretchr/testify/mock"
)

type ReadingRepositoryMock struct {
	mock.Mock
}

func (r *ReadingRepositoryMock) SaveReading(ctx context.Context, record *entities.LogRecord) error {
	args := r.Called(ctx, record)
	return args.Error(0)
}

func (r *ReadingRepositoryMock) Close() error {
	args := r.Called()
	return args.Error(0)
}
