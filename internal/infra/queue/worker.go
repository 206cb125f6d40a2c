package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/pkg/logging"
)

// HostNotifier tells the show host about a caller that needs attention.
type HostNotifier interface {
	NotifyHost(ctx context.Context, event ScreeningEvent) error
}

// Consumer is the part of *amqp.Channel the worker needs.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Acknowledger is the part of amqp.Delivery the worker needs.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type Worker struct {
	Channel  Consumer
	Notifier HostNotifier
	logger   *logging.Logger
}

func NewWorker(ch Consumer, notifier HostNotifier, logger *logging.Logger) *Worker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		logger:   logger.With("component", "host_board_worker"),
	}
}

// Start consumes until ctx is done or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	w.logger.Info("worker waiting for messages", "queue", queueName)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				w.logger.Warn("delivery channel closed")
				return nil
			}
			w.handleDelivery(ctx, d.Body, d)
		}
	}
}

func (w *Worker) handleDelivery(ctx context.Context, body []byte, ack Acknowledger) {
	var event ScreeningEvent
	if err := json.Unmarshal(body, &event); err != nil {
		w.logger.Error("malformed screening event", "error", err)
		// Rejected without requeue so a bad message cannot block the queue.
		ack.Nack(false, false)
		return
	}

	if err := w.processMessage(ctx, event); err != nil {
		w.logger.Error("host notification failed", "caller_id", event.CallerID, "error", err)
		ack.Nack(false, false)
		return
	}

	ack.Ack(false)
}

func (w *Worker) processMessage(ctx context.Context, event ScreeningEvent) error {
	switch {
	case event.Status == string(entity.StatusOnAir):
		w.logger.Info("caller going on air", "caller_id", event.CallerID)
		return w.Notifier.NotifyHost(ctx, event)

	case event.Status == string(entity.StatusQueued) &&
		(event.PrioritizedForHost || entity.Priority(event.Priority).Urgent()):
		w.logger.Info("urgent caller queued", "caller_id", event.CallerID, "priority", event.Priority)
		return w.Notifier.NotifyHost(ctx, event)

	default:
		w.logger.Debug("event needs no host alert", "caller_id", event.CallerID, "status", event.Status)
		return nil
	}
}

// LogNotifier stands in for a real alert channel when none is configured.
type LogNotifier struct {
	Logger *logging.Logger
}

func (n LogNotifier) NotifyHost(_ context.Context, event ScreeningEvent) error {
	n.Logger.Info("host alert",
		"caller_id", event.CallerID,
		"name", event.Name,
		"topic", event.Topic,
		"priority", event.Priority,
		"status", event.Status,
	)
	return nil
}
