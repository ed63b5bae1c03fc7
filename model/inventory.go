package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/muhammadheryan/commerce-engine/constant"
)

var (
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrReleaseExceedsReserved = errors.New("release exceeds reserved quantity")
	ErrFulfillExceedsReserved = errors.New("fulfill exceeds reserved quantity")
	ErrAdjustBelowReserved    = errors.New("adjustment would leave on-hand below reserved")
)

// StockShortageError reports that a requested quantity cannot be covered.
// WarehouseID is zero when the shortage spans all warehouses.
type StockShortageError struct {
	ProductID   uint64
	ProductName string
	WarehouseID uint64
	Requested   int64
	Available   int64
}

func (e *StockShortageError) Error() string {
	name := e.ProductName
	if name == "" {
		name = fmt.Sprintf("product %d", e.ProductID)
	}
	if e.WarehouseID != 0 {
		return fmt.Sprintf("insufficient stock for %s in warehouse %d: requested %d, available %d", name, e.WarehouseID, e.Requested, e.Available)
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", name, e.Requested, e.Available)
}

type Warehouse struct {
	ID       uint64                   `db:"id" json:"id"`
	Code     string                   `db:"code" json:"code"`
	Name     string                   `db:"name" json:"name"`
	City     string                   `db:"city" json:"city"`
	State    string                   `db:"state" json:"state"`
	Status   constant.WarehouseStatus `db:"status" json:"status"`
	Priority int                      `db:"priority" json:"priority"`
}

func (w Warehouse) IsActive() bool {
	return w.Status == constant.WarehouseStatusActive
}

// InventoryItem is the stock record of one (warehouse, product) pair.
// Available is derived and never stored.
type InventoryItem struct {
	ID               uint64     `db:"id" json:"id"`
	WarehouseID      uint64     `db:"warehouse_id" json:"warehouse_id"`
	ProductID        uint64     `db:"product_id" json:"product_id"`
	QuantityOnHand   int64      `db:"quantity_on_hand" json:"quantity_on_hand"`
	QuantityReserved int64      `db:"quantity_reserved" json:"quantity_reserved"`
	ReorderPoint     int64      `db:"reorder_point" json:"reorder_point"`
	ReorderQuantity  int64      `db:"reorder_quantity" json:"reorder_quantity"`
	LastRestockedAt  *time.Time `db:"last_restocked_at" json:"last_restocked_at,omitempty"`
	Version          int64      `db:"version" json:"-"`
}

func (i *InventoryItem) Available() int64 {
	return i.QuantityOnHand - i.QuantityReserved
}

// Adjust applies a signed correction to on-hand stock.
func (i *InventoryItem) Adjust(delta int64, reason string, now time.Time) ([]Event, error) {
	if delta == 0 {
		return nil, ErrInvalidQuantity
	}
	next := i.QuantityOnHand + delta
	if next < 0 || next < i.QuantityReserved {
		return nil, ErrAdjustBelowReserved
	}
	before := i.Available()
	old := i.QuantityOnHand
	i.QuantityOnHand = next

	events := []Event{StockAdjusted{
		InventoryItemID: i.ID,
		WarehouseID:     i.WarehouseID,
		ProductID:       i.ProductID,
		OldOnHand:       old,
		NewOnHand:       next,
		Reason:          reason,
		At:              now,
	}}
	return i.appendLowStock(events, before, now), nil
}

func (i *InventoryItem) Restock(qty int64, now time.Time) ([]Event, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	i.QuantityOnHand += qty
	restockedAt := now
	i.LastRestockedAt = &restockedAt
	return []Event{StockRestocked{
		InventoryItemID: i.ID,
		WarehouseID:     i.WarehouseID,
		ProductID:       i.ProductID,
		Quantity:        qty,
		NewOnHand:       i.QuantityOnHand,
		At:              now,
	}}, nil
}

func (i *InventoryItem) Reserve(qty int64, orderID uint64, now time.Time) ([]Event, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	before := i.Available()
	if qty > before {
		return nil, &StockShortageError{ProductID: i.ProductID, WarehouseID: i.WarehouseID, Requested: qty, Available: before}
	}
	i.QuantityReserved += qty

	events := []Event{StockReserved{
		InventoryItemID: i.ID,
		WarehouseID:     i.WarehouseID,
		ProductID:       i.ProductID,
		OrderID:         orderID,
		Quantity:        qty,
		At:              now,
	}}
	return i.appendLowStock(events, before, now), nil
}

func (i *InventoryItem) Release(qty int64, orderID uint64, now time.Time) ([]Event, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if qty > i.QuantityReserved {
		return nil, ErrReleaseExceedsReserved
	}
	i.QuantityReserved -= qty
	return []Event{StockReleased{
		InventoryItemID: i.ID,
		WarehouseID:     i.WarehouseID,
		ProductID:       i.ProductID,
		OrderID:         orderID,
		Quantity:        qty,
		At:              now,
	}}, nil
}

// Fulfill ships reserved stock: both on-hand and reserved drop by qty, so
// available is unchanged.
func (i *InventoryItem) Fulfill(qty int64, orderID uint64, now time.Time) ([]Event, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if qty > i.QuantityReserved {
		return nil, ErrFulfillExceedsReserved
	}
	i.QuantityReserved -= qty
	i.QuantityOnHand -= qty
	return []Event{StockFulfilled{
		InventoryItemID: i.ID,
		WarehouseID:     i.WarehouseID,
		ProductID:       i.ProductID,
		OrderID:         orderID,
		Quantity:        qty,
		At:              now,
	}}, nil
}

func (i *InventoryItem) appendLowStock(events []Event, availableBefore int64, now time.Time) []Event {
	after := i.Available()
	if availableBefore > i.ReorderPoint && after <= i.ReorderPoint {
		events = append(events, LowStock{
			InventoryItemID: i.ID,
			WarehouseID:     i.WarehouseID,
			ProductID:       i.ProductID,
			Available:       after,
			ReorderPoint:    i.ReorderPoint,
			ReorderQuantity: i.ReorderQuantity,
			At:              now,
		})
	}
	return events
}

// AllocationLine is one requested (product, quantity) pair.
type AllocationLine struct {
	ProductID   uint64 `json:"product_id" validate:"required"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
}

type AllocationRequest struct {
	Lines        []AllocationLine `json:"lines" validate:"required,min=1,dive"`
	CustomerCity string           `json:"customer_city"`
}

// AllocationEntry assigns part or all of a line to one warehouse.
type AllocationEntry struct {
	ProductID       uint64 `json:"product_id"`
	WarehouseID     uint64 `json:"warehouse_id"`
	WarehouseCode   string `json:"warehouse_code"`
	InventoryItemID uint64 `json:"inventory_item_id"`
	Quantity        int64  `json:"quantity"`
	Split           bool   `json:"split"`
}

type Reservation struct {
	ID              uint64    `db:"id" json:"id"`
	OrderID         uint64    `db:"order_id" json:"order_id"`
	InventoryItemID uint64    `db:"inventory_item_id" json:"inventory_item_id"`
	WarehouseID     uint64    `db:"warehouse_id" json:"warehouse_id"`
	ProductID       uint64    `db:"product_id" json:"product_id"`
	Quantity        int64     `db:"quantity" json:"quantity"`
	ExpiresAt       time.Time `db:"expires_at" json:"expires_at"`
}

type ReserveRequest struct {
	OrderID   uint64            `json:"order_id" validate:"required"`
	Entries   []AllocationEntry `json:"entries" validate:"required,min=1"`
	ExpiresAt time.Time         `json:"expires_at"`
}

type AdjustStockRequest struct {
	WarehouseID uint64 `json:"warehouse_id" validate:"required"`
	ProductID   uint64 `json:"product_id" validate:"required"`
	Delta       int64  `json:"delta" validate:"required"`
	Reason      string `json:"reason" validate:"required"`
}

type RestockRequest struct {
	WarehouseID uint64 `json:"warehouse_id" validate:"required"`
	ProductID   uint64 `json:"product_id" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
}

type TransferStockRequest struct {
	FromWarehouseID uint64 `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   uint64 `json:"to_warehouse_id" validate:"required"`
	ProductID       uint64 `json:"product_id" validate:"required"`
	Quantity        int64  `json:"quantity" validate:"required,gt=0"`
}
