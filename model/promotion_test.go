package model

import (
	"errors"
	"testing"
	"time"

	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePromotion() Promotion {
	return Promotion{PromotionRow: PromotionRow{
		ID:            4,
		Code:          "SPRING",
		DiscountType:  constant.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(15),
		IsActive:      true,
		StartDate:     testNow.Add(-24 * time.Hour),
		EndDate:       testNow.Add(24 * time.Hour),
	}}
}

func TestNewPromotion(t *testing.T) {
	rows := []RuleRow{
		{ID: 1, PromotionID: 4, RuleType: constant.RuleTypeSpecificProducts, Name: "shoes", Value: "[3, 4]"},
		{ID: 2, PromotionID: 4, RuleType: constant.RuleTypeMinimumPurchase, Name: "basket", Value: `"75.50"`},
		{ID: 3, PromotionID: 9, RuleType: constant.RuleTypeMinimumQuantity, Name: "other", Value: "2"},
		{ID: 4, PromotionID: 4, RuleType: constant.RuleTypeMinimumQuantity, Name: "pair", Value: "2"},
	}

	p, err := NewPromotion(basePromotion().PromotionRow, rows)

	require.NoError(t, err)
	require.Len(t, p.Rules, 3)
	assert.Equal(t, []uint64{3, 4}, p.Rules[0].ProductIDs)
	assert.True(t, decimal.RequireFromString("75.5").Equal(p.Rules[1].Amount))
	assert.Equal(t, 2, p.Rules[2].Quantity)
}

func TestParseRule_Invalid(t *testing.T) {
	tests := []RuleRow{
		{RuleType: constant.RuleTypeMinimumPurchase, Name: "a", Value: "lots"},
		{RuleType: constant.RuleTypeMinimumQuantity, Name: "b", Value: "-1"},
		{RuleType: constant.RuleTypeExcludeProducts, Name: "c", Value: "{"},
		{RuleType: "weekday", Name: "d", Value: "1"},
	}
	for _, rr := range tests {
		t.Run(rr.Name, func(t *testing.T) {
			_, err := ParseRule(rr)
			assert.Error(t, err)
		})
	}
}

func TestPromotion_Validate(t *testing.T) {
	limit := 3
	tests := []struct {
		name    string
		mutate  func(p *Promotion)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *Promotion) {}},
		{name: "missing code", mutate: func(p *Promotion) { p.Code = "  " }, wantErr: true},
		{name: "percentage above 100", mutate: func(p *Promotion) { p.DiscountValue = decimal.NewFromInt(101) }, wantErr: true},
		{name: "percentage exactly 100", mutate: func(p *Promotion) { p.DiscountValue = decimal.NewFromInt(100) }},
		{name: "fixed amount zero", mutate: func(p *Promotion) {
			p.DiscountType = constant.DiscountTypeFixedAmount
			p.DiscountValue = decimal.Zero
		}, wantErr: true},
		{name: "free shipping with zero value", mutate: func(p *Promotion) {
			p.DiscountType = constant.DiscountTypeFreeShipping
			p.DiscountValue = decimal.Zero
		}},
		{name: "unknown kind", mutate: func(p *Promotion) { p.DiscountType = "cashback" }, wantErr: true},
		{name: "end before start", mutate: func(p *Promotion) { p.EndDate = p.StartDate }, wantErr: true},
		{name: "usage above limit", mutate: func(p *Promotion) { p.UsageLimit = &limit; p.UsageCount = 4 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := basePromotion()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidPromotion))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPromotion_ActivateDeactivate(t *testing.T) {
	p := basePromotion()

	assert.Empty(t, p.Activate(testNow), "already active")
	events := p.Deactivate(testNow)
	require.Len(t, events, 1)
	assert.Equal(t, constant.TopicPromotionDeactivated, events[0].Topic())
	assert.False(t, p.IsCurrentlyActive(testNow))

	events = p.Activate(testNow)
	require.Len(t, events, 1)
	assert.Equal(t, constant.TopicPromotionActivated, events[0].Topic())
	assert.True(t, p.IsCurrentlyActive(testNow))
}

func TestPromotion_Window(t *testing.T) {
	p := basePromotion()
	assert.True(t, p.InWindow(p.StartDate))
	assert.False(t, p.InWindow(p.EndDate))
	assert.False(t, p.InWindow(p.StartDate.Add(-time.Second)))
}

func TestPromotion_RecordApplication(t *testing.T) {
	limit := 2
	p := basePromotion()
	p.UsageLimit = &limit
	p.UsageCount = 1

	usage, events, err := p.RecordApplication(10, " buyer@example.com ", decimal.NewFromInt(200), decimal.NewFromInt(30), testNow)

	require.NoError(t, err)
	assert.Equal(t, 2, p.UsageCount)
	assert.Equal(t, uint64(10), usage.OrderID)
	require.NotNil(t, usage.CustomerEmail)
	assert.Equal(t, "buyer@example.com", *usage.CustomerEmail)
	assert.Equal(t, []string{constant.TopicPromotionApplied, constant.TopicPromotionLimitReached}, topics(events))

	_, _, err = p.RecordApplication(11, "", decimal.NewFromInt(200), decimal.NewFromInt(30), testNow)
	assert.ErrorIs(t, err, ErrUsageLimitReached)
	assert.Equal(t, 2, p.UsageCount)
}
