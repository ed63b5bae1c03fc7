package model

import (
	"time"

	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/shopspring/decimal"
)

// Event is a domain decision produced by a mutating operation. Entities
// return the events they produce and the application layer dispatches them.
type Event interface {
	Topic() string
	OccurredAt() time.Time
}

type PromotionSelected struct {
	Strategy      constant.DiscountStrategy `json:"strategy"`
	Codes         []string                  `json:"codes"`
	OrderTotal    decimal.Decimal           `json:"order_total"`
	TotalDiscount decimal.Decimal           `json:"total_discount"`
	CustomerEmail string                    `json:"customer_email,omitempty"`
	At            time.Time                 `json:"at"`
}

func (e PromotionSelected) Topic() string         { return constant.TopicPromotionSelected }
func (e PromotionSelected) OccurredAt() time.Time { return e.At }

type PromotionApplied struct {
	PromotionID    uint64          `json:"promotion_id"`
	Code           string          `json:"code"`
	OrderID        uint64          `json:"order_id"`
	CustomerEmail  *string         `json:"customer_email,omitempty"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	At             time.Time       `json:"at"`
}

func (e PromotionApplied) Topic() string         { return constant.TopicPromotionApplied }
func (e PromotionApplied) OccurredAt() time.Time { return e.At }

type PromotionActivated struct {
	PromotionID uint64    `json:"promotion_id"`
	Code        string    `json:"code"`
	At          time.Time `json:"at"`
}

func (e PromotionActivated) Topic() string         { return constant.TopicPromotionActivated }
func (e PromotionActivated) OccurredAt() time.Time { return e.At }

type PromotionDeactivated struct {
	PromotionID uint64    `json:"promotion_id"`
	Code        string    `json:"code"`
	At          time.Time `json:"at"`
}

func (e PromotionDeactivated) Topic() string         { return constant.TopicPromotionDeactivated }
func (e PromotionDeactivated) OccurredAt() time.Time { return e.At }

type PromotionUsageLimitReached struct {
	PromotionID uint64    `json:"promotion_id"`
	Code        string    `json:"code"`
	UsageCount  int       `json:"usage_count"`
	At          time.Time `json:"at"`
}

func (e PromotionUsageLimitReached) Topic() string         { return constant.TopicPromotionLimitReached }
func (e PromotionUsageLimitReached) OccurredAt() time.Time { return e.At }

type StockAdjusted struct {
	InventoryItemID uint64    `json:"inventory_item_id"`
	WarehouseID     uint64    `json:"warehouse_id"`
	ProductID       uint64    `json:"product_id"`
	OldOnHand       int64     `json:"old_on_hand"`
	NewOnHand       int64     `json:"new_on_hand"`
	Reason          string    `json:"reason"`
	At              time.Time `json:"at"`
}

func (e StockAdjusted) Topic() string         { return constant.TopicStockAdjusted }
func (e StockAdjusted) OccurredAt() time.Time { return e.At }

type StockRestocked struct {
	InventoryItemID uint64    `json:"inventory_item_id"`
	WarehouseID     uint64    `json:"warehouse_id"`
	ProductID       uint64    `json:"product_id"`
	Quantity        int64     `json:"quantity"`
	NewOnHand       int64     `json:"new_on_hand"`
	At              time.Time `json:"at"`
}

func (e StockRestocked) Topic() string         { return constant.TopicStockRestocked }
func (e StockRestocked) OccurredAt() time.Time { return e.At }

type StockReserved struct {
	InventoryItemID uint64    `json:"inventory_item_id"`
	WarehouseID     uint64    `json:"warehouse_id"`
	ProductID       uint64    `json:"product_id"`
	OrderID         uint64    `json:"order_id"`
	Quantity        int64     `json:"quantity"`
	At              time.Time `json:"at"`
}

func (e StockReserved) Topic() string         { return constant.TopicStockReserved }
func (e StockReserved) OccurredAt() time.Time { return e.At }

type StockReleased struct {
	InventoryItemID uint64    `json:"inventory_item_id"`
	WarehouseID     uint64    `json:"warehouse_id"`
	ProductID       uint64    `json:"product_id"`
	OrderID         uint64    `json:"order_id"`
	Quantity        int64     `json:"quantity"`
	At              time.Time `json:"at"`
}

func (e StockReleased) Topic() string         { return constant.TopicStockReleased }
func (e StockReleased) OccurredAt() time.Time { return e.At }

type StockFulfilled struct {
	InventoryItemID uint64    `json:"inventory_item_id"`
	WarehouseID     uint64    `json:"warehouse_id"`
	ProductID       uint64    `json:"product_id"`
	OrderID         uint64    `json:"order_id"`
	Quantity        int64     `json:"quantity"`
	At              time.Time `json:"at"`
}

func (e StockFulfilled) Topic() string         { return constant.TopicStockFulfilled }
func (e StockFulfilled) OccurredAt() time.Time { return e.At }

// LowStock signals that available stock crossed down to the reorder point.
type LowStock struct {
	InventoryItemID uint64    `json:"inventory_item_id"`
	WarehouseID     uint64    `json:"warehouse_id"`
	ProductID       uint64    `json:"product_id"`
	Available       int64     `json:"available"`
	ReorderPoint    int64     `json:"reorder_point"`
	ReorderQuantity int64     `json:"reorder_quantity"`
	At              time.Time `json:"at"`
}

func (e LowStock) Topic() string         { return constant.TopicStockLow }
func (e LowStock) OccurredAt() time.Time { return e.At }

type AllocationPlanned struct {
	OrderID uint64            `json:"order_id,omitempty"`
	Entries []AllocationEntry `json:"entries"`
	At      time.Time         `json:"at"`
}

func (e AllocationPlanned) Topic() string         { return constant.TopicAllocationPlanComputed }
func (e AllocationPlanned) OccurredAt() time.Time { return e.At }
