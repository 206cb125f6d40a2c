package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OriginSubmission   = "SCREENING_SUBMITTED"
	OriginUpdate       = "SCREENING_UPDATED"
	OriginStatusChange = "STATUS_CHANGED"
)

// ScreeningEvent is what the host board hears about a caller. The phone is
// always masked before it leaves the service.
type ScreeningEvent struct {
	CallerID           string    `json:"caller_id"`
	Name               string    `json:"name"`
	MaskedPhone        string    `json:"masked_phone"`
	Location           string    `json:"location,omitempty"`
	Topic              string    `json:"topic"`
	Priority           string    `json:"priority"`
	Status             string    `json:"status"`
	PreviousStatus     string    `json:"previous_status,omitempty"`
	PrioritizedForHost bool      `json:"prioritized_for_host"`
	CallerType         string    `json:"caller_type"`
	Origin             string    `json:"origin"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// Publisher is the part of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishScreeningEvent(ctx context.Context, event ScreeningEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal screening event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to RabbitMQ: %w", err)
	}

	return nil
}
