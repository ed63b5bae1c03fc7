package rabbitmq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/muhammadheryan/commerce-engine/model"
	"github.com/muhammadheryan/commerce-engine/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// EventPublisher is the event sink of the engines. Delivery guarantees are
// those of the broker.
type EventPublisher interface {
	Publish(ctx context.Context, event model.Event) error
	PublishReservationExpiration(ctx context.Context, msg ReservationExpirationMessage) error
}

type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	mu      sync.Mutex
	now     func() time.Time
}

// Envelope wraps every domain event published on the events exchange.
type Envelope struct {
	ID         string          `json:"id"`
	Topic      string          `json:"topic"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type ReservationExpirationMessage struct {
	OrderID   uint64    `json:"order_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: channel, now: time.Now}, nil
}

// declareTopology declares the events exchange and the delayed expiration
// exchange with its queue. Declarations are idempotent so publisher and
// consumer both run it.
func declareTopology(channel *amqp091.Channel) error {
	err := channel.ExchangeDeclare(
		constant.EventsExchange, // name
		"topic",                 // type
		true,                    // durable
		false,                   // auto-delete
		false,                   // internal
		false,                   // no-wait
		nil,                     // arguments
	)
	if err != nil {
		return err
	}

	err = channel.ExchangeDeclare(
		constant.ReservationExpirationExchange,
		"x-delayed-message",
		true,
		false,
		false,
		false,
		amqp091.Table{"x-delayed-type": "direct"},
	)
	if err != nil {
		return err
	}

	_, err = channel.QueueDeclare(
		constant.ReservationExpirationQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	return channel.QueueBind(
		constant.ReservationExpirationQueue,
		constant.ReservationExpirationRoutingKey,
		constant.ReservationExpirationExchange,
		false,
		nil,
	)
}

// NewEnvelope encodes event for the wire under a fresh id.
func NewEnvelope(event model.Event) (Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		ID:         uuid.NewString(),
		Topic:      event.Topic(),
		OccurredAt: event.OccurredAt(),
		Payload:    payload,
	}, nil
}

// Publish sends event to the events exchange using its topic as routing key.
func (p *Publisher) Publish(ctx context.Context, event model.Event) error {
	envelope, err := NewEnvelope(event)
	if err != nil {
		return err
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(ctx,
		constant.EventsExchange, // exchange
		envelope.Topic,          // routing key
		false,                   // mandatory
		false,                   // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    envelope.ID,
			Timestamp:    envelope.OccurredAt,
			Type:         envelope.Topic,
			Body:         body,
		},
	)
}

// PublishReservationExpiration schedules msg for delivery at msg.ExpiresAt.
func (p *Publisher) PublishReservationExpiration(ctx context.Context, msg ReservationExpirationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	delayMs := msg.ExpiresAt.Sub(p.now()).Milliseconds()
	if delayMs < 0 {
		delayMs = 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(ctx,
		constant.ReservationExpirationExchange,
		constant.ReservationExpirationRoutingKey,
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    uuid.NewString(),
			Body:         body,
			Headers: amqp091.Table{
				"x-delay": delayMs,
			},
		},
	)
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

// PublishAll publishes events in order and logs failures. A nil publisher
// drops them.
func PublishAll(ctx context.Context, publisher EventPublisher, events []model.Event) {
	if publisher == nil {
		return
	}
	for _, event := range events {
		if err := publisher.Publish(ctx, event); err != nil {
			logger.Error("[PublishAll] publish event", zap.String("topic", event.Topic()), zap.String("error", err.Error()))
		}
	}
}
