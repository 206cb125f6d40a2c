package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/internal/infra/queue"
)

// MockCallerRepository
type MockCallerRepository struct {
	mock.Mock
}

func (m *MockCallerRepository) Create(ctx context.Context, c *entity.Caller) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCallerRepository) List(ctx context.Context) ([]*entity.Caller, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Caller), args.Error(1)
}

func (m *MockCallerRepository) FindByID(ctx context.Context, id string) (*entity.Caller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Caller), args.Error(1)
}

func (m *MockCallerRepository) UpdateNotes(ctx context.Context, id, notes string, documentNames []string) error {
	args := m.Called(ctx, id, notes, documentNames)
	return args.Error(0)
}

func (m *MockCallerRepository) UpdateStatus(ctx context.Context, id string, status entity.Status, prioritized bool) error {
	args := m.Called(ctx, id, status, prioritized)
	return args.Error(0)
}

func (m *MockCallerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishScreeningEvent(ctx context.Context, event queue.ScreeningEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockRosterCache
type MockRosterCache struct {
	mock.Mock
}

func (m *MockRosterCache) Load(ctx context.Context) ([]*entity.Caller, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*entity.Caller), args.Bool(1), args.Error(2)
}

func (m *MockRosterCache) Store(ctx context.Context, roster []*entity.Caller) error {
	args := m.Called(ctx, roster)
	return args.Error(0)
}

func (m *MockRosterCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMetrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordScreening(priority string) {
	m.Called(priority)
}

func (m *MockMetrics) RecordStatusTransition(from, to string) {
	m.Called(from, to)
}
