package model

import (
	"errors"
	"testing"
	"time"

	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func topics(events []Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Topic())
	}
	return out
}

func TestInventoryItem_Reserve(t *testing.T) {
	tests := []struct {
		name         string
		item         InventoryItem
		qty          int64
		wantErr      bool
		wantShortage bool
		wantTopics   []string
		wantReserved int64
	}{
		{
			name:         "reserve within available",
			item:         InventoryItem{ID: 1, QuantityOnHand: 100, QuantityReserved: 10, ReorderPoint: 20},
			qty:          30,
			wantTopics:   []string{constant.TopicStockReserved},
			wantReserved: 40,
		},
		{
			name:         "reserve crosses reorder point",
			item:         InventoryItem{ID: 1, QuantityOnHand: 100, ReorderPoint: 20},
			qty:          85,
			wantTopics:   []string{constant.TopicStockReserved, constant.TopicStockLow},
			wantReserved: 85,
		},
		{
			name:         "already below reorder point does not signal again",
			item:         InventoryItem{ID: 1, QuantityOnHand: 15, ReorderPoint: 20},
			qty:          5,
			wantTopics:   []string{constant.TopicStockReserved},
			wantReserved: 5,
		},
		{
			name:         "more than available",
			item:         InventoryItem{ID: 1, QuantityOnHand: 10, QuantityReserved: 8},
			qty:          3,
			wantErr:      true,
			wantShortage: true,
			wantReserved: 8,
		},
		{
			name:         "zero quantity",
			item:         InventoryItem{ID: 1, QuantityOnHand: 10},
			qty:          0,
			wantErr:      true,
			wantReserved: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := tt.item
			events, err := item.Reserve(tt.qty, 77, testNow)
			if tt.wantErr {
				require.Error(t, err)
				var shortage *StockShortageError
				assert.Equal(t, tt.wantShortage, errors.As(err, &shortage))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantTopics, topics(events))
			}
			assert.Equal(t, tt.wantReserved, item.QuantityReserved)
			assert.LessOrEqual(t, item.QuantityReserved, item.QuantityOnHand)
		})
	}
}

func TestInventoryItem_Lifecycle(t *testing.T) {
	item := InventoryItem{ID: 3, WarehouseID: 1, ProductID: 9, QuantityOnHand: 50, ReorderPoint: 10, ReorderQuantity: 40}

	_, err := item.Reserve(20, 5, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(30), item.Available())

	_, err = item.Release(25, 5, testNow)
	assert.ErrorIs(t, err, ErrReleaseExceedsReserved)

	events, err := item.Release(5, 5, testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{constant.TopicStockReleased}, topics(events))
	assert.Equal(t, int64(15), item.QuantityReserved)

	events, err = item.Fulfill(15, 5, testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{constant.TopicStockFulfilled}, topics(events))
	assert.Equal(t, int64(35), item.QuantityOnHand)
	assert.Equal(t, int64(0), item.QuantityReserved)
	assert.Equal(t, int64(35), item.Available())

	_, err = item.Fulfill(1, 5, testNow)
	assert.ErrorIs(t, err, ErrFulfillExceedsReserved)

	events, err = item.Restock(40, testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{constant.TopicStockRestocked}, topics(events))
	assert.Equal(t, int64(75), item.QuantityOnHand)
	require.NotNil(t, item.LastRestockedAt)
	assert.True(t, item.LastRestockedAt.Equal(testNow))
}

func TestInventoryItem_Adjust(t *testing.T) {
	item := InventoryItem{ID: 3, QuantityOnHand: 30, QuantityReserved: 10, ReorderPoint: 5}

	_, err := item.Adjust(-25, constant.AdjustReasonDamage, testNow)
	assert.ErrorIs(t, err, ErrAdjustBelowReserved)
	assert.Equal(t, int64(30), item.QuantityOnHand)

	_, err = item.Adjust(0, constant.AdjustReasonManual, testNow)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	events, err := item.Adjust(-16, constant.AdjustReasonCount, testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{constant.TopicStockAdjusted, constant.TopicStockLow}, topics(events))
	adjusted, ok := events[0].(StockAdjusted)
	require.True(t, ok)
	assert.Equal(t, int64(30), adjusted.OldOnHand)
	assert.Equal(t, int64(14), adjusted.NewOnHand)
	low, ok := events[1].(LowStock)
	require.True(t, ok)
	assert.Equal(t, int64(4), low.Available)
}
