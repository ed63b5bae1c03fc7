package model

import (
	"time"

	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

type OrderRequest struct {
	CustomerEmail   string             `json:"customer_email" validate:"omitempty,email"`
	CustomerSegment string             `json:"customer_segment"`
	CustomerCity    string             `json:"customer_city"`
	CouponCode      string             `json:"coupon_code"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive,required"`
}

type OrderResponse struct {
	OrderID    uint64            `json:"order_id"`
	ExpiresAt  time.Time         `json:"expires_at"`
	Pricing    DiscountPlan      `json:"pricing"`
	Allocation []AllocationEntry `json:"allocation"`
}

type InsertOrderTxItem struct {
	CustomerEmail string
	Status        constant.OrderStatus
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	FreeShipping  bool
	ExpiresAT     time.Time
}

// OrderLine is an order item priced at order time.
type OrderLine struct {
	ProductID uint64          `db:"product_id" json:"product_id"`
	Quantity  int64           `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
}

type OrderDetail struct {
	ID            uint64               `db:"id"`
	CustomerEmail string               `db:"customer_email"`
	Status        constant.OrderStatus `db:"status"`
	Subtotal      decimal.Decimal      `db:"subtotal"`
	Discount      decimal.Decimal      `db:"discount"`
	Total         decimal.Decimal      `db:"total"`
	FreeShipping  bool                 `db:"free_shipping"`
}

// OrderPricing is the discount state written back when a promotion is
// applied to an existing order.
type OrderPricing struct {
	Discount     decimal.Decimal
	Total        decimal.Decimal
	FreeShipping bool
}
