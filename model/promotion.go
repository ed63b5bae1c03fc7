package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/shopspring/decimal"
)

var (
	ErrUsageLimitReached = errors.New("promotion usage limit reached")
	ErrInvalidPromotion  = errors.New("invalid promotion")
)

// PromotionRow is the persisted shape of a promotion, without its rules.
type PromotionRow struct {
	ID                uint64                `db:"id" json:"id"`
	Code              string                `db:"code" json:"code"`
	Name              string                `db:"name" json:"name"`
	Description       string                `db:"description" json:"description,omitempty"`
	DiscountType      constant.DiscountType `db:"discount_type" json:"discount_type"`
	DiscountValue     decimal.Decimal       `db:"discount_value" json:"discount_value"`
	MaxDiscountAmount decimal.NullDecimal   `db:"max_discount_amount" json:"max_discount_amount"`
	MinPurchaseAmount decimal.NullDecimal   `db:"min_purchase_amount" json:"min_purchase_amount"`
	IsActive          bool                  `db:"is_active" json:"is_active"`
	IsStackable       bool                  `db:"is_stackable" json:"is_stackable"`
	Priority          int                   `db:"priority" json:"priority"`
	StartDate         time.Time             `db:"start_date" json:"start_date"`
	EndDate           time.Time             `db:"end_date" json:"end_date"`
	UsageLimit        *int                  `db:"usage_limit" json:"usage_limit,omitempty"`
	UsageCount        int                   `db:"usage_count" json:"usage_count"`
	PerCustomerLimit  *int                  `db:"per_customer_limit" json:"per_customer_limit,omitempty"`
	RequiresCoupon    bool                  `db:"requires_coupon" json:"requires_coupon"`
	TargetSegment     *string               `db:"target_segment" json:"target_segment,omitempty"`
	CreatedAt         time.Time             `db:"created_at" json:"created_at"`
}

// RuleRow is the persisted shape of a promotion rule. Value holds a JSON
// encoded argument whose shape depends on RuleType.
type RuleRow struct {
	ID          uint64            `db:"id"`
	PromotionID uint64            `db:"promotion_id"`
	RuleType    constant.RuleType `db:"rule_type"`
	Name        string            `db:"name"`
	Value       string            `db:"value"`
}

// Rule is a predicate attached to a promotion. Only the fields relevant to
// Type are set.
type Rule struct {
	ID         uint64            `json:"id"`
	Type       constant.RuleType `json:"type"`
	Name       string            `json:"name"`
	Amount     decimal.Decimal   `json:"amount,omitempty"`
	Quantity   int               `json:"quantity,omitempty"`
	ProductIDs []uint64          `json:"product_ids,omitempty"`
}

// Promotion is a discount policy together with its rules.
type Promotion struct {
	PromotionRow
	Rules []Rule `json:"rules"`
}

// NewPromotion assembles a promotion aggregate from its row and the rule rows
// that belong to it. Rule rows of other promotions are ignored.
func NewPromotion(row PromotionRow, ruleRows []RuleRow) (Promotion, error) {
	p := Promotion{PromotionRow: row, Rules: make([]Rule, 0, len(ruleRows))}
	for _, rr := range ruleRows {
		if rr.PromotionID != row.ID {
			continue
		}
		rule, err := ParseRule(rr)
		if err != nil {
			return Promotion{}, fmt.Errorf("promotion %s: %w", row.Code, err)
		}
		p.Rules = append(p.Rules, rule)
	}
	return p, nil
}

// ParseRule decodes the typed argument of a rule row.
func ParseRule(rr RuleRow) (Rule, error) {
	rule := Rule{ID: rr.ID, Type: rr.RuleType, Name: rr.Name}
	raw := strings.TrimSpace(rr.Value)
	switch rr.RuleType {
	case constant.RuleTypeMinimumPurchase:
		amount, err := decimal.NewFromString(strings.Trim(raw, `"`))
		if err != nil {
			return Rule{}, fmt.Errorf("rule %q: invalid amount %q", rr.Name, rr.Value)
		}
		rule.Amount = amount
	case constant.RuleTypeMinimumQuantity:
		qty, err := strconv.Atoi(strings.Trim(raw, `"`))
		if err != nil || qty < 0 {
			return Rule{}, fmt.Errorf("rule %q: invalid quantity %q", rr.Name, rr.Value)
		}
		rule.Quantity = qty
	case constant.RuleTypeSpecificProducts, constant.RuleTypeExcludeProducts:
		ids := make([]uint64, 0)
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &ids); err != nil {
				return Rule{}, fmt.Errorf("rule %q: invalid product list: %w", rr.Name, err)
			}
		}
		rule.ProductIDs = ids
	default:
		return Rule{}, fmt.Errorf("rule %q: unknown type %q", rr.Name, rr.RuleType)
	}
	return rule, nil
}

// NormalizeCode makes promotion codes case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks the structural invariants of a promotion definition.
func (p *Promotion) Validate() error {
	if NormalizeCode(p.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidPromotion)
	}
	if !p.DiscountType.IsValid() {
		return fmt.Errorf("%w: unknown discount type %q", ErrInvalidPromotion, p.DiscountType)
	}
	switch p.DiscountType {
	case constant.DiscountTypePercentage:
		if !p.DiscountValue.IsPositive() || p.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%w: percentage must be in (0,100]", ErrInvalidPromotion)
		}
	case constant.DiscountTypeFixedAmount:
		if !p.DiscountValue.IsPositive() {
			return fmt.Errorf("%w: fixed amount must be positive", ErrInvalidPromotion)
		}
	}
	if p.MaxDiscountAmount.Valid && p.MaxDiscountAmount.Decimal.IsNegative() {
		return fmt.Errorf("%w: max discount must not be negative", ErrInvalidPromotion)
	}
	if p.MinPurchaseAmount.Valid && p.MinPurchaseAmount.Decimal.IsNegative() {
		return fmt.Errorf("%w: minimum purchase must not be negative", ErrInvalidPromotion)
	}
	if !p.EndDate.After(p.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", ErrInvalidPromotion)
	}
	if p.UsageLimit != nil && (*p.UsageLimit < 0 || p.UsageCount > *p.UsageLimit) {
		return fmt.Errorf("%w: usage count exceeds usage limit", ErrInvalidPromotion)
	}
	if p.PerCustomerLimit != nil && *p.PerCustomerLimit < 0 {
		return fmt.Errorf("%w: per customer limit must not be negative", ErrInvalidPromotion)
	}
	for _, r := range p.Rules {
		if !r.Type.IsValid() {
			return fmt.Errorf("%w: unknown rule type %q", ErrInvalidPromotion, r.Type)
		}
	}
	return nil
}

// InWindow reports whether now falls in [StartDate, EndDate).
func (p *Promotion) InWindow(now time.Time) bool {
	return !now.Before(p.StartDate) && now.Before(p.EndDate)
}

// HasUsageRemaining reports whether the global usage cap still allows use.
func (p *Promotion) HasUsageRemaining() bool {
	return p.UsageLimit == nil || p.UsageCount < *p.UsageLimit
}

// IsCurrentlyActive is the filter behind the active promotion set.
func (p *Promotion) IsCurrentlyActive(now time.Time) bool {
	return p.IsActive && p.InWindow(now) && p.HasUsageRemaining()
}

func (p *Promotion) Activate(now time.Time) []Event {
	if p.IsActive {
		return nil
	}
	p.IsActive = true
	return []Event{PromotionActivated{PromotionID: p.ID, Code: p.Code, At: now}}
}

func (p *Promotion) Deactivate(now time.Time) []Event {
	if !p.IsActive {
		return nil
	}
	p.IsActive = false
	return []Event{PromotionDeactivated{PromotionID: p.ID, Code: p.Code, At: now}}
}

// RecordApplication counts one successful application against the promotion
// and returns the usage record to persist.
func (p *Promotion) RecordApplication(orderID uint64, customerEmail string, orderTotal, discount decimal.Decimal, now time.Time) (PromotionUsage, []Event, error) {
	if !p.HasUsageRemaining() {
		return PromotionUsage{}, nil, ErrUsageLimitReached
	}
	p.UsageCount++

	usage := PromotionUsage{
		PromotionID:    p.ID,
		OrderID:        orderID,
		OrderTotal:     orderTotal,
		DiscountAmount: discount,
		UsedAt:         now,
	}
	if email := strings.TrimSpace(customerEmail); email != "" {
		usage.CustomerEmail = &email
	}

	events := []Event{PromotionApplied{
		PromotionID:    p.ID,
		Code:           p.Code,
		OrderID:        orderID,
		CustomerEmail:  usage.CustomerEmail,
		DiscountAmount: discount,
		At:             now,
	}}
	if !p.HasUsageRemaining() {
		events = append(events, PromotionUsageLimitReached{PromotionID: p.ID, Code: p.Code, UsageCount: p.UsageCount, At: now})
	}
	return usage, events, nil
}

// PromotionUsage records one successful application. Never mutated.
type PromotionUsage struct {
	ID             uint64          `db:"id" json:"id"`
	PromotionID    uint64          `db:"promotion_id" json:"promotion_id"`
	OrderID        uint64          `db:"order_id" json:"order_id"`
	CustomerEmail  *string         `db:"customer_email" json:"customer_email,omitempty"`
	OrderTotal     decimal.Decimal `db:"order_total" json:"order_total"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	UsedAt         time.Time       `db:"used_at" json:"used_at"`
}

// PromotionUsageStats aggregates the usage history of one promotion.
type PromotionUsageStats struct {
	PromotionID       uint64          `db:"promotion_id" json:"promotion_id"`
	UsageCount        int64           `db:"usage_count" json:"usage_count"`
	DistinctCustomers int64           `db:"distinct_customers" json:"distinct_customers"`
	TotalDiscount     decimal.Decimal `db:"total_discount" json:"total_discount"`
	TotalOrderValue   decimal.Decimal `db:"total_order_value" json:"total_order_value"`
}

// OrderContext is the projection of an order the promotion engine needs.
type OrderContext struct {
	OrderTotal      decimal.Decimal `json:"order_total" validate:"gt=0"`
	ProductIDs      []uint64        `json:"product_ids"`
	ItemCount       int64           `json:"item_count,omitempty" validate:"gte=0"`
	CustomerEmail   string          `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerSegment string          `json:"customer_segment,omitempty"`
	CouponCode      string          `json:"coupon_code,omitempty"`
}

// AppliedPromotion is one line of a discount plan.
type AppliedPromotion struct {
	PromotionID    uint64                `json:"promotion_id"`
	Code           string                `json:"code"`
	Name           string                `json:"name"`
	DiscountType   constant.DiscountType `json:"discount_type"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
}

// DiscountPlan is the outcome of promotion selection.
type DiscountPlan struct {
	OriginalAmount decimal.Decimal           `json:"original_amount"`
	FinalAmount    decimal.Decimal           `json:"final_amount"`
	TotalDiscount  decimal.Decimal           `json:"total_discount"`
	Strategy       constant.DiscountStrategy `json:"strategy"`
	FreeShipping   bool                      `json:"free_shipping"`
	Applied        []AppliedPromotion        `json:"applied"`
}

// CreatePromotionRequest is the admin payload for defining a promotion.
type CreatePromotionRequest struct {
	Code              string                `json:"code" validate:"required,max=64"`
	Name              string                `json:"name" validate:"required,max=255"`
	Description       string                `json:"description"`
	DiscountType      constant.DiscountType `json:"discount_type" validate:"required"`
	DiscountValue     decimal.Decimal       `json:"discount_value"`
	MaxDiscountAmount decimal.NullDecimal   `json:"max_discount_amount"`
	MinPurchaseAmount decimal.NullDecimal   `json:"min_purchase_amount"`
	IsStackable       bool                  `json:"is_stackable"`
	Priority          int                   `json:"priority"`
	StartDate         time.Time             `json:"start_date" validate:"required"`
	EndDate           time.Time             `json:"end_date" validate:"required"`
	UsageLimit        *int                  `json:"usage_limit" validate:"omitempty,gte=0"`
	PerCustomerLimit  *int                  `json:"per_customer_limit" validate:"omitempty,gte=0"`
	RequiresCoupon    bool                  `json:"requires_coupon"`
	TargetSegment     *string               `json:"target_segment"`
	Rules             []RuleRequest         `json:"rules" validate:"dive"`
}

// RuleRequest describes a rule in a CreatePromotionRequest. Value uses the
// same JSON encoding as RuleRow.Value.
type RuleRequest struct {
	RuleType constant.RuleType `json:"rule_type" validate:"required"`
	Name     string            `json:"name" validate:"required"`
	Value    string            `json:"value"`
}

// ApplyPromotionRequest applies one promotion code to a persisted order.
// Totals, lines and customer come from the stored order.
type ApplyPromotionRequest struct {
	OrderID         uint64 `json:"order_id" validate:"required"`
	Code            string `json:"code" validate:"required"`
	CustomerSegment string `json:"customer_segment,omitempty"`
}

// PromotionValidation reports whether a code applies to an order and why not.
type PromotionValidation struct {
	Code           string          `json:"code"`
	Eligible       bool            `json:"eligible"`
	Reason         string          `json:"reason,omitempty"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// ValidatePromotionRequest asks whether Code applies to Order.
type ValidatePromotionRequest struct {
	Code  string       `json:"code" validate:"required"`
	Order OrderContext `json:"order"`
}
