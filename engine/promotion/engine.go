// Package promotion selects the best discount plan for an order from a
// snapshot of promotions. It performs no I/O: callers load the active
// promotions, the coupon promotion and the customer's usage counts first.
package promotion

import (
	"sort"
	"time"

	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/muhammadheryan/commerce-engine/model"
	"github.com/shopspring/decimal"
)

// Snapshot is the promotion state an order is priced against.
type Snapshot struct {
	// Active is the result of the policy store's active promotion query.
	Active []model.Promotion
	// Coupon is the promotion matching the order's coupon code, if any.
	Coupon *model.Promotion
	// CustomerUsage maps promotion id to the customer's prior uses.
	CustomerUsage map[uint64]int
}

type Engine struct {
	now func() time.Time
}

// NewEngine returns an engine reading the current time from now. A nil now
// uses time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Candidates returns the promotions eligible for order, ordered by priority
// descending and then by their position in the snapshot.
func (e *Engine) Candidates(order model.OrderContext, snap Snapshot) []model.Promotion {
	now := e.now()

	active := make([]model.Promotion, 0, len(snap.Active))
	for _, p := range snap.Active {
		if p.IsCurrentlyActive(now) {
			active = append(active, p)
		}
	}

	candidates := make([]model.Promotion, 0, len(active)+1)

	if code := model.NormalizeCode(order.CouponCode); code != "" {
		coupon := findByCode(active, code)
		if coupon == nil && snap.Coupon != nil && model.NormalizeCode(snap.Coupon.Code) == code && snap.Coupon.IsCurrentlyActive(now) {
			coupon = snap.Coupon
		}
		if coupon != nil && coupon.RequiresCoupon && e.CheckEligibility(coupon, order, snap.CustomerUsage[coupon.ID]) == nil {
			candidates = append(candidates, *coupon)
		}
	}

	for i := range active {
		p := &active[i]
		if p.RequiresCoupon {
			continue
		}
		if e.CheckEligibility(p, order, snap.CustomerUsage[p.ID]) != nil {
			continue
		}
		candidates = append(candidates, *p)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})
	return candidates
}

// CalculateBest prices order against snap. It compares the best single
// promotion with the sequential stack of all stackable candidates and keeps
// the larger discount; a tie keeps the single promotion. The absence of
// eligible promotions yields a zero discount plan.
func (e *Engine) CalculateBest(order model.OrderContext, snap Snapshot) model.DiscountPlan {
	if !order.OrderTotal.IsPositive() {
		return emptyPlan(order.OrderTotal)
	}

	candidates := e.Candidates(order, snap)
	if len(candidates) == 0 {
		return emptyPlan(order.OrderTotal)
	}

	single := bestSingle(candidates, order.OrderTotal)
	stacked := stack(candidates, order.OrderTotal)

	if totalOf(stacked).GreaterThan(totalOf(single)) {
		return buildPlan(order.OrderTotal, constant.StrategyStacked, stacked)
	}
	return buildPlan(order.OrderTotal, constant.StrategySingle, single)
}

// bestSingle picks the candidate with the largest discount on the full order
// total. Earlier candidates win ties.
func bestSingle(candidates []model.Promotion, total decimal.Decimal) []model.AppliedPromotion {
	bestIdx := -1
	best := decimal.Zero
	for i := range candidates {
		d := Discount(&candidates[i], total)
		if bestIdx == -1 || d.GreaterThan(best) {
			bestIdx, best = i, d
		}
	}
	return []model.AppliedPromotion{applied(&candidates[bestIdx], best)}
}

// stack applies the stackable candidates in order, each against the total
// left by the previous ones.
func stack(candidates []model.Promotion, total decimal.Decimal) []model.AppliedPromotion {
	remaining := total
	out := make([]model.AppliedPromotion, 0)
	for i := range candidates {
		p := &candidates[i]
		if !p.IsStackable {
			continue
		}
		d := Discount(p, remaining)
		out = append(out, applied(p, d))
		remaining = remaining.Sub(d)
		if !remaining.IsPositive() {
			break
		}
	}
	return out
}

func applied(p *model.Promotion, d decimal.Decimal) model.AppliedPromotion {
	return model.AppliedPromotion{
		PromotionID:    p.ID,
		Code:           p.Code,
		Name:           p.Name,
		DiscountType:   p.DiscountType,
		DiscountAmount: d,
	}
}

func totalOf(entries []model.AppliedPromotion) decimal.Decimal {
	total := decimal.Zero
	for _, a := range entries {
		total = total.Add(a.DiscountAmount)
	}
	return total
}

func buildPlan(original decimal.Decimal, strategy constant.DiscountStrategy, entries []model.AppliedPromotion) model.DiscountPlan {
	discount := totalOf(entries)
	if discount.GreaterThan(original) {
		discount = original
	}
	plan := model.DiscountPlan{
		OriginalAmount: original,
		FinalAmount:    original.Sub(discount),
		TotalDiscount:  discount,
		Strategy:       strategy,
		Applied:        entries,
	}
	for _, a := range entries {
		if a.DiscountType == constant.DiscountTypeFreeShipping {
			plan.FreeShipping = true
		}
	}
	return plan
}

func emptyPlan(original decimal.Decimal) model.DiscountPlan {
	return model.DiscountPlan{
		OriginalAmount: original,
		FinalAmount:    original,
		TotalDiscount:  decimal.Zero,
		Strategy:       constant.StrategyNone,
		Applied:        []model.AppliedPromotion{},
	}
}

func findByCode(promotions []model.Promotion, code string) *model.Promotion {
	for i := range promotions {
		if model.NormalizeCode(promotions[i].Code) == code {
			return &promotions[i]
		}
	}
	return nil
}
