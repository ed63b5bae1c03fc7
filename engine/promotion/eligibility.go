package promotion

import (
	"fmt"
	"strings"

	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/muhammadheryan/commerce-engine/model"
	"github.com/shopspring/decimal"
)

// Names of the checks reported by IneligibleError.
const (
	CheckInactive        = "inactive"
	CheckNotStarted      = "not_started"
	CheckExpired         = "expired"
	CheckUsageLimit      = "usage_limit"
	CheckCustomerLimit   = "customer_limit"
	CheckMinimumPurchase = "minimum_purchase"
	CheckSegment         = "segment"
	CheckRule            = "rule"
)

// IneligibleError names the check a promotion failed for an order.
type IneligibleError struct {
	Code   string
	Check  string
	Reason string
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("promotion %s not eligible: %s", e.Code, e.Reason)
}

func ineligible(p *model.Promotion, check, format string, args ...any) *IneligibleError {
	return &IneligibleError{Code: p.Code, Check: check, Reason: fmt.Sprintf(format, args...)}
}

// CheckAvailability verifies the time window, active flag and global usage
// cap. These are the conditions behind the active promotion set.
func (e *Engine) CheckAvailability(p *model.Promotion) error {
	now := e.now()
	switch {
	case !p.IsActive:
		return ineligible(p, CheckInactive, "promotion is not active")
	case now.Before(p.StartDate):
		return ineligible(p, CheckNotStarted, "promotion starts at %s", p.StartDate.Format("2006-01-02 15:04"))
	case !now.Before(p.EndDate):
		return ineligible(p, CheckExpired, "promotion ended at %s", p.EndDate.Format("2006-01-02 15:04"))
	case !p.HasUsageRemaining():
		return ineligible(p, CheckUsageLimit, "usage limit of %d reached", *p.UsageLimit)
	}
	return nil
}

// Evaluate runs every check for a directly requested promotion and returns
// the discount it grants on the full order total.
func (e *Engine) Evaluate(p *model.Promotion, order model.OrderContext, customerUsage int) (decimal.Decimal, error) {
	if err := e.CheckAvailability(p); err != nil {
		return decimal.Zero, err
	}
	if err := e.CheckEligibility(p, order, customerUsage); err != nil {
		return decimal.Zero, err
	}
	return Discount(p, order.OrderTotal), nil
}

// CheckEligibility evaluates the order dependent conditions of a promotion:
// minimum purchase, per-customer cap, target segment and every rule.
// customerUsage is the number of times the order's customer already used it.
func (e *Engine) CheckEligibility(p *model.Promotion, order model.OrderContext, customerUsage int) error {
	if p.MinPurchaseAmount.Valid && order.OrderTotal.LessThan(p.MinPurchaseAmount.Decimal) {
		return ineligible(p, CheckMinimumPurchase, "order total %s is below minimum purchase %s",
			order.OrderTotal.StringFixed(2), p.MinPurchaseAmount.Decimal.StringFixed(2))
	}
	if p.PerCustomerLimit != nil && strings.TrimSpace(order.CustomerEmail) != "" && customerUsage >= *p.PerCustomerLimit {
		return ineligible(p, CheckCustomerLimit, "customer already used this promotion %d time(s)", customerUsage)
	}
	if p.TargetSegment != nil && strings.TrimSpace(*p.TargetSegment) != "" &&
		!strings.EqualFold(strings.TrimSpace(*p.TargetSegment), strings.TrimSpace(order.CustomerSegment)) {
		return ineligible(p, CheckSegment, "promotion is limited to segment %q", *p.TargetSegment)
	}
	for _, r := range p.Rules {
		if !evaluateRule(r, order) {
			return ineligible(p, CheckRule, "rule %q (%s) not satisfied", r.Name, r.Type)
		}
	}
	return nil
}

func evaluateRule(r model.Rule, order model.OrderContext) bool {
	switch r.Type {
	case constant.RuleTypeMinimumPurchase:
		return order.OrderTotal.GreaterThanOrEqual(r.Amount)
	case constant.RuleTypeMinimumQuantity:
		return itemCount(order) >= int64(r.Quantity)
	case constant.RuleTypeSpecificProducts:
		return containsAny(order.ProductIDs, r.ProductIDs)
	case constant.RuleTypeExcludeProducts:
		return !containsAny(order.ProductIDs, r.ProductIDs)
	}
	return false
}

// itemCount falls back to the number of distinct products when the caller
// did not supply unit counts.
func itemCount(order model.OrderContext) int64 {
	if order.ItemCount > 0 {
		return order.ItemCount
	}
	return int64(len(order.ProductIDs))
}

func containsAny(ids, set []uint64) bool {
	if len(ids) == 0 || len(set) == 0 {
		return false
	}
	lookup := make(map[uint64]struct{}, len(set))
	for _, id := range set {
		lookup[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := lookup[id]; ok {
			return true
		}
	}
	return false
}
