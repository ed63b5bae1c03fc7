package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/muhammadheryan/commerce-engine/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer cancels orders whose reservations expired by calling the
// internal cancel endpoint, which releases their stock.
type Consumer struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	canceler *OrderCanceler
}

// OrderCanceler calls the internal order cancel API.
type OrderCanceler struct {
	APIURL string
	APIKey string
	Client *http.Client
}

func NewOrderCanceler(apiURL, apiKey string) *OrderCanceler {
	return &OrderCanceler{APIURL: apiURL, APIKey: apiKey, Client: &http.Client{Timeout: 10 * time.Second}}
}

func NewConsumer(url string, canceler *OrderCanceler) (*Consumer, error) {
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

	return &Consumer{conn: conn, channel: channel, canceler: canceler}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	// one message at a time
	if err := c.channel.Qos(1, 0, false); err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		constant.ReservationExpirationQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Warn("[Consumer] delivery channel closed")
					return
				}
				switch c.canceler.Handle(ctx, msg.Body) {
				case OutcomeAck:
					_ = msg.Ack(false)
				case OutcomeRequeue:
					_ = msg.Nack(false, true)
				}
			}
		}
	}()

	return nil
}

type Outcome int

const (
	OutcomeAck Outcome = iota
	OutcomeRequeue
)

// Handle processes one expiration message. Malformed messages are dropped;
// transport failures and server errors are retried.
func (o *OrderCanceler) Handle(ctx context.Context, body []byte) Outcome {
	var msg ReservationExpirationMessage
	if err := json.Unmarshal(body, &msg); err != nil || msg.OrderID == 0 {
		logger.Error("[Consumer] invalid expiration message", zap.ByteString("body", body))
		return OutcomeAck
	}

	if err := o.CancelOrder(ctx, msg.OrderID); err != nil {
		logger.Error("[Consumer] cancel order", zap.Uint64("order_id", msg.OrderID), zap.String("error", err.Error()))
		return OutcomeRequeue
	}

	logger.Info("[Consumer] expired order handled", zap.Uint64("order_id", msg.OrderID))
	return OutcomeAck
}

// CancelOrder treats 4xx responses as final: the order was already paid,
// canceled or never existed.
func (o *OrderCanceler) CancelOrder(ctx context.Context, orderID uint64) error {
	url := fmt.Sprintf("%s/internal/v1/order/%d/cancel", o.APIURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+o.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Service", "reservation-expiration-consumer")

	resp, err := o.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 500 {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode >= 400 {
		logger.Info("[Consumer] order not cancelable", zap.Uint64("order_id", orderID), zap.Int("status", resp.StatusCode))
	}
	return nil
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
