package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/muhammadheryan/commerce-engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	event := model.StockReserved{InventoryItemID: 4, WarehouseID: 2, ProductID: 9, OrderID: 11, Quantity: 3, At: at}

	envelope, err := NewEnvelope(event)
	require.NoError(t, err)

	_, err = uuid.Parse(envelope.ID)
	assert.NoError(t, err)
	assert.Equal(t, constant.TopicStockReserved, envelope.Topic)
	assert.True(t, envelope.OccurredAt.Equal(at))

	var payload model.StockReserved
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, uint64(11), payload.OrderID)
}

type recordingPublisher struct {
	topics []string
	fail   bool
}

func (r *recordingPublisher) Publish(_ context.Context, event model.Event) error {
	r.topics = append(r.topics, event.Topic())
	if r.fail {
		return errors.New("broker down")
	}
	return nil
}

func (r *recordingPublisher) PublishReservationExpiration(context.Context, ReservationExpirationMessage) error {
	return nil
}

func TestPublishAll(t *testing.T) {
	events := []model.Event{
		model.StockReserved{At: time.Now()},
		model.LowStock{At: time.Now()},
	}

	pub := &recordingPublisher{fail: true}
	PublishAll(context.Background(), pub, events)
	assert.Equal(t, []string{constant.TopicStockReserved, constant.TopicStockLow}, pub.topics, "failures do not stop later events")

	assert.NotPanics(t, func() { PublishAll(context.Background(), nil, events) })
}

func TestOrderCanceler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		status     int
		want       Outcome
		wantCalled bool
	}{
		{name: "canceled", body: `{"order_id": 7}`, status: http.StatusOK, want: OutcomeAck, wantCalled: true},
		{name: "already completed", body: `{"order_id": 7}`, status: http.StatusBadRequest, want: OutcomeAck, wantCalled: true},
		{name: "server error retried", body: `{"order_id": 7}`, status: http.StatusInternalServerError, want: OutcomeRequeue, wantCalled: true},
		{name: "malformed body dropped", body: `{"order_id":`, want: OutcomeAck},
		{name: "missing order id dropped", body: `{}`, want: OutcomeAck},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/internal/v1/order/7/cancel", r.URL.Path)
				assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			canceler := NewOrderCanceler(srv.URL, "key")
			assert.Equal(t, tt.want, canceler.Handle(context.Background(), []byte(tt.body)))
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}
