package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/call-screener/pkg/logging"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyHost(ctx context.Context, event ScreeningEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type fakeAck struct {
	acked, nacked, requeued bool
}

func (a *fakeAck) Ack(bool) error {
	a.acked = true
	return nil
}

func (a *fakeAck) Nack(_ bool, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

type fakeConsumer struct {
	deliveries chan amqp.Delivery
}

func (c *fakeConsumer) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return c.deliveries, nil
}

func body(t *testing.T, e ScreeningEvent) []byte {
	t.Helper()
	b, err := json.Marshal(e)
	require.NoError(t, err)
	return b
}

func TestWorkerNotifiesForOnAir(t *testing.T) {
	ctx := context.Background()
	notifier := new(MockNotifier)
	notifier.On("NotifyHost", ctx, mock.MatchedBy(func(e ScreeningEvent) bool { return e.CallerID == "c-1" })).Return(nil)

	w := NewWorker(nil, notifier, logging.Discard())
	ack := &fakeAck{}
	w.handleDelivery(ctx, body(t, ScreeningEvent{CallerID: "c-1", Status: "on_air", Priority: "normal"}), ack)

	assert.True(t, ack.acked)
	notifier.AssertExpectations(t)
}

func TestWorkerNotifiesForUrgentQueued(t *testing.T) {
	ctx := context.Background()
	notifier := new(MockNotifier)
	notifier.On("NotifyHost", ctx, mock.Anything).Return(nil).Twice()

	w := NewWorker(nil, notifier, logging.Discard())
	w.handleDelivery(ctx, body(t, ScreeningEvent{CallerID: "c-1", Status: "queued", Priority: "critical"}), &fakeAck{})
	w.handleDelivery(ctx, body(t, ScreeningEvent{CallerID: "c-2", Status: "queued", Priority: "normal", PrioritizedForHost: true}), &fakeAck{})

	notifier.AssertNumberOfCalls(t, "NotifyHost", 2)
}

func TestWorkerSkipsRoutineEvents(t *testing.T) {
	notifier := new(MockNotifier)
	w := NewWorker(nil, notifier, logging.Discard())

	ack := &fakeAck{}
	w.handleDelivery(context.Background(), body(t, ScreeningEvent{CallerID: "c-1", Status: "queued", Priority: "medium"}), ack)
	w.handleDelivery(context.Background(), body(t, ScreeningEvent{CallerID: "c-2", Status: "completed", Priority: "high"}), ack)

	assert.True(t, ack.acked)
	notifier.AssertNotCalled(t, "NotifyHost", mock.Anything, mock.Anything)
}

func TestWorkerNacksMalformedAndFailed(t *testing.T) {
	ctx := context.Background()
	notifier := new(MockNotifier)
	notifier.On("NotifyHost", ctx, mock.Anything).Return(errors.New("smtp down"))
	w := NewWorker(nil, notifier, logging.Discard())

	bad := &fakeAck{}
	w.handleDelivery(ctx, []byte("{not json"), bad)
	assert.True(t, bad.nacked)
	assert.False(t, bad.requeued)

	failed := &fakeAck{}
	w.handleDelivery(ctx, body(t, ScreeningEvent{CallerID: "c-1", Status: "on_air"}), failed)
	assert.True(t, failed.nacked)
	assert.False(t, failed.acked)
}

func TestWorkerStartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery)}
	w := NewWorker(consumer, new(MockNotifier), logging.Discard())

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx, QueueName) }()

	cancel()
	assert.NoError(t, <-done)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: logging.NewWithWriter(&buf, "info")}

	err := n.NotifyHost(context.Background(), ScreeningEvent{CallerID: "c-1", Name: "Dale", Status: "on_air"})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"caller_id":"c-1"`)
	assert.Contains(t, buf.String(), `"msg":"host alert"`)
}
