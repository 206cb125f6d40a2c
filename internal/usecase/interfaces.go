package usecase

import (
	"context"

	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/internal/infra/queue"
)

type QueueProducerInterface interface {
	PublishScreeningEvent(ctx context.Context, event queue.ScreeningEvent) error
}

// RosterCache keeps the last roster snapshot read from the store.
type RosterCache interface {
	Load(ctx context.Context) ([]*entity.Caller, bool, error)
	Store(ctx context.Context, roster []*entity.Caller) error
	Invalidate(ctx context.Context) error
}

type MetricsRecorder interface {
	RecordScreening(priority string)
	RecordStatusTransition(from, to string)
}

type noopMetrics struct{}

func (noopMetrics) RecordScreening(string) {}
func (noopMetrics) RecordStatusTransition(string, string) {}
