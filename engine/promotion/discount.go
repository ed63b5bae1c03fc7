package promotion

import (
	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/muhammadheryan/commerce-engine/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BogoFraction approximates a buy-one-get-one discount as a share of the
// base amount. Order totals carry no unit prices, so a per-line calculation
// is not possible here.
var BogoFraction = decimal.RequireFromString("0.5")

// Discount computes what p takes off base. The result is rounded to cents
// and never exceeds base.
func Discount(p *model.Promotion, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}

	var d decimal.Decimal
	switch p.DiscountType {
	case constant.DiscountTypePercentage:
		d = capAt(base.Mul(p.DiscountValue).Div(hundred), p.MaxDiscountAmount)
	case constant.DiscountTypeFixedAmount:
		d = p.DiscountValue
	case constant.DiscountTypeBuyOneGetOne:
		d = capAt(base.Mul(BogoFraction), p.MaxDiscountAmount)
	case constant.DiscountTypeFreeShipping:
		return decimal.Zero
	default:
		return decimal.Zero
	}

	d = d.Round(2)
	if d.GreaterThan(base) {
		d = base
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func capAt(d decimal.Decimal, limit decimal.NullDecimal) decimal.Decimal {
	if limit.Valid && d.GreaterThan(limit.Decimal) {
		return limit.Decimal
	}
	return d
}
