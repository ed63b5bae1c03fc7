package promotion_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	apppromotion "github.com/muhammadheryan/commerce-engine/application/promotion"
	"github.com/muhammadheryan/commerce-engine/cmd/config"
	"github.com/muhammadheryan/commerce-engine/constant"
	ordermocks "github.com/muhammadheryan/commerce-engine/mocks/repository/order"
	promotionmocks "github.com/muhammadheryan/commerce-engine/mocks/repository/promotion"
	redismocks "github.com/muhammadheryan/commerce-engine/mocks/repository/redis"
	txmocks "github.com/muhammadheryan/commerce-engine/mocks/repository/tx"
	rabbitmqmocks "github.com/muhammadheryan/commerce-engine/mocks/thirdparty/rabbitmq"
	"github.com/muhammadheryan/commerce-engine/model"
	promotionrepo "github.com/muhammadheryan/commerce-engine/repository/promotion"
	cerr "github.com/muhammadheryan/commerce-engine/utils/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fields struct {
	config        *config.Config
	txRepo        *txmocks.TxRepository
	promotionRepo *promotionmocks.PromotionRepository
	orderRepo     *ordermocks.OrderRepository
	cacheRepo     *redismocks.Repository
	publisher     *rabbitmqmocks.EventPublisher
}

func newFields(t *testing.T) fields {
	return fields{
		config:        &config.Config{Redis: config.RedisConfig{PromotionCacheTTL: 30 * time.Second}},
		txRepo:        txmocks.NewTxRepository(t),
		promotionRepo: promotionmocks.NewPromotionRepository(t),
		orderRepo:     ordermocks.NewOrderRepository(t),
		cacheRepo:     redismocks.NewRepository(t),
		publisher:     rabbitmqmocks.NewEventPublisher(t),
	}
}

func (f fields) app() apppromotion.PromotionApp {
	return apppromotion.NewPromotionApp(f.config, f.txRepo, f.promotionRepo, f.orderRepo, f.cacheRepo, f.publisher)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(v int) *int {
	return &v
}

// running returns a promotion whose window contains the current time.
func running(id uint64, code string, discountType constant.DiscountType, value string) model.Promotion {
	now := time.Now()
	return model.Promotion{
		PromotionRow: model.PromotionRow{
			ID:            id,
			Code:          code,
			Name:          code + " promo",
			DiscountType:  discountType,
			DiscountValue: dec(value),
			IsActive:      true,
			StartDate:     now.Add(-time.Hour),
			EndDate:       now.Add(time.Hour),
		},
	}
}

func assertErrCode(t *testing.T, err error, errCode constant.ErrorType) {
	t.Helper()
	require.Error(t, err)
	var ce cerr.CustomError
	require.True(t, errors.As(err, &ce), "expected CustomError, got %T", err)
	assert.Equal(t, constant.ErrorTypeCode[errCode], ce.ErrorCode())
}

func TestPromotionApp_CalculateBest(t *testing.T) {
	save10 := running(1, "SAVE10", constant.DiscountTypePercentage, "10")
	flat15 := running(2, "FLAT15", constant.DiscountTypeFixedAmount, "15")
	coupon := running(3, "VIP20", constant.DiscountTypeFixedAmount, "20")
	coupon.RequiresCoupon = true

	tests := []struct {
		name         string
		order        *model.OrderContext
		mockCall     func(f fields)
		wantDiscount string
		wantCodes    []string
		wantErr      bool
		errCode      constant.ErrorType
	}{
		{
			name:  "success: served from cache",
			order: &model.OrderContext{OrderTotal: dec("100")},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetActivePromotions", mock.Anything).Return([]model.Promotion{save10, flat15}, true, nil).Once()
				f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e model.Event) bool {
					return e.Topic() == constant.TopicPromotionSelected
				})).Return(nil).Once()
			},
			wantDiscount: "15",
			wantCodes:    []string{"FLAT15"},
		},
		{
			name:  "success: cache miss loads and stores active set",
			order: &model.OrderContext{OrderTotal: dec("100")},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetActivePromotions", mock.Anything).Return(nil, false, nil).Once()
				f.promotionRepo.On("FindActive", mock.Anything, mock.Anything).Return([]model.Promotion{save10}, nil).Once()
				f.cacheRepo.On("SetActivePromotions", mock.Anything, []model.Promotion{save10}, 30*time.Second).Return(nil).Once()
				f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantDiscount: "10",
			wantCodes:    []string{"SAVE10"},
		},
		{
			name:  "success: cache failure falls back to database",
			order: &model.OrderContext{OrderTotal: dec("100")},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetActivePromotions", mock.Anything).Return(nil, false, errors.New("redis down")).Once()
				f.promotionRepo.On("FindActive", mock.Anything, mock.Anything).Return([]model.Promotion{save10}, nil).Once()
				f.cacheRepo.On("SetActivePromotions", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
				f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantDiscount: "10",
			wantCodes:    []string{"SAVE10"},
		},
		{
			name:  "success: coupon outside active set is looked up by code",
			order: &model.OrderContext{OrderTotal: dec("100"), CouponCode: " vip20 ", CustomerEmail: "a@example.com"},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetActivePromotions", mock.Anything).Return([]model.Promotion{save10}, true, nil).Once()
				f.promotionRepo.On("FindByCode", mock.Anything, "VIP20").Return(&coupon, nil).Once()
				f.promotionRepo.On("CustomerUsageCounts", mock.Anything, "a@example.com", []uint64{1, 3}).Return(map[uint64]int{}, nil).Once()
				f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantDiscount: "20",
			wantCodes:    []string{"VIP20"},
		},
		{
			name:  "success: no eligible promotion publishes nothing",
			order: &model.OrderContext{OrderTotal: dec("100")},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetActivePromotions", mock.Anything).Return([]model.Promotion{}, true, nil).Once()
			},
			wantDiscount: "0",
			wantCodes:    []string{},
		},
		{
			name:  "error: active promotions query fails",
			order: &model.OrderContext{OrderTotal: dec("100")},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetActivePromotions", mock.Anything).Return(nil, false, nil).Once()
				f.promotionRepo.On("FindActive", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name:    "error: nil order",
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			plan, err := f.app().CalculateBest(context.Background(), tt.order)
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.wantDiscount).Equal(plan.TotalDiscount), "discount %s", plan.TotalDiscount)
			codes := make([]string, 0)
			for _, a := range plan.Applied {
				codes = append(codes, a.Code)
			}
			assert.Equal(t, tt.wantCodes, codes)
		})
	}
}

func TestPromotionApp_ValidatePromotion(t *testing.T) {
	withMin := running(1, "MIN50", constant.DiscountTypeFixedAmount, "5")
	withMin.MinPurchaseAmount = decimal.NewNullDecimal(dec("50"))

	tests := []struct {
		name         string
		code         string
		order        *model.OrderContext
		mockCall     func(f fields)
		wantEligible bool
		wantReason   bool
		wantErr      bool
		errCode      constant.ErrorType
	}{
		{
			name:  "success: eligible",
			code:  "min50",
			order: &model.OrderContext{OrderTotal: dec("80"), CustomerEmail: "a@example.com"},
			mockCall: func(f fields) {
				f.promotionRepo.On("FindByCode", mock.Anything, "MIN50").Return(&withMin, nil).Once()
				f.promotionRepo.On("CustomerUsageCounts", mock.Anything, "a@example.com", []uint64{1}).Return(map[uint64]int{}, nil).Once()
			},
			wantEligible: true,
		},
		{
			name:  "success: below minimum reports reason",
			code:  "MIN50",
			order: &model.OrderContext{OrderTotal: dec("20")},
			mockCall: func(f fields) {
				f.promotionRepo.On("FindByCode", mock.Anything, "MIN50").Return(&withMin, nil).Once()
			},
			wantEligible: false,
			wantReason:   true,
		},
		{
			name:  "error: unknown code",
			code:  "NOPE",
			order: &model.OrderContext{OrderTotal: dec("20")},
			mockCall: func(f fields) {
				f.promotionRepo.On("FindByCode", mock.Anything, "NOPE").Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:    "error: blank code",
			code:    "  ",
			order:   &model.OrderContext{OrderTotal: dec("20")},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := f.app().ValidatePromotion(context.Background(), tt.code, tt.order)
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEligible, got.Eligible)
			assert.Equal(t, tt.wantReason, got.Reason != "")
		})
	}
}

func TestPromotionApp_ApplyToOrder(t *testing.T) {
	req := &model.ApplyPromotionRequest{OrderID: 42, Code: "save10"}
	pending := func() *model.OrderDetail {
		return &model.OrderDetail{ID: 42, CustomerEmail: "a@example.com", Status: constant.OrderStatusPending, Subtotal: dec("200"), Total: dec("200")}
	}
	lines := []model.OrderLine{{ProductID: 1, Quantity: 2, UnitPrice: dec("100")}}

	// loadOrder expects the stored order to be locked and read back.
	loadOrder := func(f fields, tx *sqlx.Tx, detail *model.OrderDetail) {
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.orderRepo.On("GetOrderDetailTx", mock.Anything, tx, uint64(42)).Return(detail, nil).Once()
		f.orderRepo.On("GetOrderLinesTx", mock.Anything, tx, uint64(42)).Return(lines, nil).Once()
	}

	tests := []struct {
		name     string
		promo    func() *model.Promotion
		mockCall func(f fields, p *model.Promotion)
		want     string
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: usage recorded, order repriced and events published",
			promo: func() *model.Promotion {
				p := running(1, "SAVE10", constant.DiscountTypePercentage, "10")
				return &p
			},
			mockCall: func(f fields, p *model.Promotion) {
				tx := &sqlx.Tx{}
				loadOrder(f, tx, pending())
				f.promotionRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "SAVE10").Return(p, nil).Once()
				f.promotionRepo.On("CustomerUsageCountTx", mock.Anything, tx, uint64(1), "a@example.com").Return(0, nil).Once()
				f.promotionRepo.On("IncrementUsageTx", mock.Anything, tx, uint64(1)).Return(true, nil).Once()
				f.promotionRepo.On("InsertUsageTx", mock.Anything, tx, mock.MatchedBy(func(u *model.PromotionUsage) bool {
					return u.OrderID == 42 && u.DiscountAmount.Equal(dec("20")) && u.OrderTotal.Equal(dec("200")) &&
						*u.CustomerEmail == "a@example.com"
				})).Return(nil).Once()
				f.orderRepo.On("UpdateOrderPricingTx", mock.Anything, tx, uint64(42), mock.MatchedBy(func(pr *model.OrderPricing) bool {
					return pr.Discount.Equal(dec("20")) && pr.Total.Equal(dec("180")) && !pr.FreeShipping
				})).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.cacheRepo.On("InvalidateActivePromotions", mock.Anything).Return(nil).Once()
				f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e model.Event) bool {
					return e.Topic() == constant.TopicPromotionApplied
				})).Return(nil).Once()
			},
			want: "20",
		},
		{
			name:  "error: unknown order",
			promo: func() *model.Promotion { return nil },
			mockCall: func(f fields, p *model.Promotion) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.orderRepo.On("GetOrderDetailTx", mock.Anything, tx, uint64(42)).Return(nil, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:  "error: order no longer pending",
			promo: func() *model.Promotion { return nil },
			mockCall: func(f fields, p *model.Promotion) {
				tx := &sqlx.Tx{}
				paid := pending()
				paid.Status = constant.OrderStatusCompleted
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.orderRepo.On("GetOrderDetailTx", mock.Anything, tx, uint64(42)).Return(paid, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidOrderStatus,
		},
		{
			name: "error: minimum purchase checked against the stored subtotal",
			promo: func() *model.Promotion {
				p := running(1, "SAVE10", constant.DiscountTypePercentage, "10")
				p.MinPurchaseAmount = decimal.NewNullDecimal(dec("500"))
				return &p
			},
			mockCall: func(f fields, p *model.Promotion) {
				tx := &sqlx.Tx{}
				loadOrder(f, tx, pending())
				f.promotionRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "SAVE10").Return(p, nil).Once()
				f.promotionRepo.On("CustomerUsageCountTx", mock.Anything, tx, uint64(1), "a@example.com").Return(0, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPromotionIneligible,
		},
		{
			name:  "error: code not found",
			promo: func() *model.Promotion { return nil },
			mockCall: func(f fields, p *model.Promotion) {
				tx := &sqlx.Tx{}
				loadOrder(f, tx, pending())
				f.promotionRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "SAVE10").Return(p, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: per customer limit reached",
			promo: func() *model.Promotion {
				p := running(1, "SAVE10", constant.DiscountTypePercentage, "10")
				p.PerCustomerLimit = intPtr(1)
				return &p
			},
			mockCall: func(f fields, p *model.Promotion) {
				tx := &sqlx.Tx{}
				loadOrder(f, tx, pending())
				f.promotionRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "SAVE10").Return(p, nil).Once()
				f.promotionRepo.On("CustomerUsageCountTx", mock.Anything, tx, uint64(1), "a@example.com").Return(1, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPromotionIneligible,
		},
		{
			name: "error: global usage cap exhausted",
			promo: func() *model.Promotion {
				p := running(1, "SAVE10", constant.DiscountTypePercentage, "10")
				p.UsageLimit = intPtr(3)
				p.UsageCount = 3
				return &p
			},
			mockCall: func(f fields, p *model.Promotion) {
				tx := &sqlx.Tx{}
				loadOrder(f, tx, pending())
				f.promotionRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "SAVE10").Return(p, nil).Once()
				f.promotionRepo.On("CustomerUsageCountTx", mock.Anything, tx, uint64(1), "a@example.com").Return(0, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPromotionUsageLimit,
		},
		{
			name: "error: conditional increment lost the race",
			promo: func() *model.Promotion {
				p := running(1, "SAVE10", constant.DiscountTypePercentage, "10")
				return &p
			},
			mockCall: func(f fields, p *model.Promotion) {
				tx := &sqlx.Tx{}
				loadOrder(f, tx, pending())
				f.promotionRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "SAVE10").Return(p, nil).Once()
				f.promotionRepo.On("CustomerUsageCountTx", mock.Anything, tx, uint64(1), "a@example.com").Return(0, nil).Once()
				f.promotionRepo.On("IncrementUsageTx", mock.Anything, tx, uint64(1)).Return(false, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPromotionUsageLimit,
		},
		{
			name: "error: already applied to order",
			promo: func() *model.Promotion {
				p := running(1, "SAVE10", constant.DiscountTypePercentage, "10")
				return &p
			},
			mockCall: func(f fields, p *model.Promotion) {
				tx := &sqlx.Tx{}
				loadOrder(f, tx, pending())
				f.promotionRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "SAVE10").Return(p, nil).Once()
				f.promotionRepo.On("CustomerUsageCountTx", mock.Anything, tx, uint64(1), "a@example.com").Return(0, nil).Once()
				f.promotionRepo.On("IncrementUsageTx", mock.Anything, tx, uint64(1)).Return(true, nil).Once()
				f.promotionRepo.On("InsertUsageTx", mock.Anything, tx, mock.Anything).Return(promotionrepo.ErrDuplicateUsage).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPromotionAlreadyApplied,
		},
		{
			name:  "error: begin tx",
			promo: func() *model.Promotion { return nil },
			mockCall: func(f fields, p *model.Promotion) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, errors.New("db down")).Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Maybe()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f, tt.promo())

			got, err := f.app().ApplyToOrder(context.Background(), req)
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "SAVE10", got.Code)
			assert.True(t, dec(tt.want).Equal(got.DiscountAmount))
		})
	}
}

func TestPromotionApp_ApplyPlanTx(t *testing.T) {
	order := &model.OrderContext{OrderTotal: dec("100"), CustomerEmail: "a@example.com"}
	plan := &model.DiscountPlan{
		Strategy: constant.StrategyStacked,
		Applied: []model.AppliedPromotion{
			{PromotionID: 1, Code: "A", DiscountAmount: dec("10")},
			{PromotionID: 2, Code: "B", DiscountAmount: dec("9")},
		},
	}

	t.Run("success: every applied promotion recorded", func(t *testing.T) {
		f := newFields(t)
		tx := &sqlx.Tx{}
		a := running(1, "A", constant.DiscountTypePercentage, "10")
		b := running(2, "B", constant.DiscountTypePercentage, "10")
		b.UsageLimit = intPtr(1)

		f.promotionRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&a, nil).Once()
		f.promotionRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(2)).Return(&b, nil).Once()
		f.promotionRepo.On("CustomerUsageCountTx", mock.Anything, tx, mock.Anything, "a@example.com").Return(0, nil).Twice()
		f.promotionRepo.On("IncrementUsageTx", mock.Anything, tx, mock.Anything).Return(true, nil).Twice()
		f.promotionRepo.On("InsertUsageTx", mock.Anything, tx, mock.MatchedBy(func(u *model.PromotionUsage) bool {
			return u.OrderID == 7
		})).Return(nil).Twice()

		events, err := f.app().ApplyPlanTx(context.Background(), tx, 7, order, plan)
		require.NoError(t, err)

		topics := make([]string, 0, len(events))
		for _, e := range events {
			topics = append(topics, e.Topic())
		}
		assert.Equal(t, []string{
			constant.TopicPromotionApplied,
			constant.TopicPromotionApplied,
			constant.TopicPromotionLimitReached,
		}, topics)
	})

	t.Run("error: promotion deactivated after pricing", func(t *testing.T) {
		f := newFields(t)
		tx := &sqlx.Tx{}
		a := running(1, "A", constant.DiscountTypePercentage, "10")
		a.IsActive = false

		f.promotionRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&a, nil).Once()

		_, err := f.app().ApplyPlanTx(context.Background(), tx, 7, order, plan)
		assertErrCode(t, err, constant.ErrPromotionIneligible)
	})

	t.Run("error: customer cap reached since pricing", func(t *testing.T) {
		f := newFields(t)
		tx := &sqlx.Tx{}
		a := running(1, "A", constant.DiscountTypePercentage, "10")
		a.PerCustomerLimit = intPtr(1)

		f.promotionRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&a, nil).Once()
		f.promotionRepo.On("CustomerUsageCountTx", mock.Anything, tx, uint64(1), "a@example.com").Return(1, nil).Once()

		events, err := f.app().ApplyPlanTx(context.Background(), tx, 7, order, plan)
		assertErrCode(t, err, constant.ErrPromotionIneligible)
		assert.Nil(t, events)
		f.promotionRepo.AssertNotCalled(t, "IncrementUsageTx", mock.Anything, mock.Anything, mock.Anything)
		f.promotionRepo.AssertNotCalled(t, "InsertUsageTx", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("success: nil plan records nothing", func(t *testing.T) {
		f := newFields(t)
		events, err := f.app().ApplyPlanTx(context.Background(), &sqlx.Tx{}, 7, order, nil)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestPromotionApp_CreatePromotion(t *testing.T) {
	now := time.Now()
	base := func() *model.CreatePromotionRequest {
		return &model.CreatePromotionRequest{
			Code:          " summer10 ",
			Name:          "Summer",
			DiscountType:  constant.DiscountTypePercentage,
			DiscountValue: dec("10"),
			StartDate:     now,
			EndDate:       now.Add(24 * time.Hour),
			Rules: []model.RuleRequest{
				{RuleType: constant.RuleTypeMinimumQuantity, Name: "two items", Value: "2"},
			},
		}
	}

	tests := []struct {
		name     string
		req      func() *model.CreatePromotionRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success",
			req:  base,
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.promotionRepo.On("CreateTx", mock.Anything, tx, mock.MatchedBy(func(row *model.PromotionRow) bool {
					return row.Code == "SUMMER10" && row.IsActive
				}), []model.RuleRow{{RuleType: constant.RuleTypeMinimumQuantity, Name: "two items", Value: "2"}}).Return(uint64(9), nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.cacheRepo.On("InvalidateActivePromotions", mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "error: malformed rule value",
			req: func() *model.CreatePromotionRequest {
				r := base()
				r.Rules[0].Value = "many"
				return r
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: percentage above 100",
			req: func() *model.CreatePromotionRequest {
				r := base()
				r.DiscountValue = dec("150")
				return r
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: end before start",
			req: func() *model.CreatePromotionRequest {
				r := base()
				r.EndDate = r.StartDate.Add(-time.Hour)
				return r
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: duplicate code",
			req:  base,
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.promotionRepo.On("CreateTx", mock.Anything, tx, mock.Anything, mock.Anything).Return(uint64(0), promotionrepo.ErrDuplicateCode).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := f.app().CreatePromotion(context.Background(), tt.req())
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(9), got.ID)
			assert.Equal(t, "SUMMER10", got.Code)
			require.Len(t, got.Rules, 1)
			assert.Equal(t, 2, got.Rules[0].Quantity)
		})
	}
}

func TestPromotionApp_ActivateDeactivate(t *testing.T) {
	tests := []struct {
		name     string
		activate bool
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:     "success: deactivate",
			activate: false,
			mockCall: func(f fields) {
				p := running(5, "X", constant.DiscountTypeFixedAmount, "5")
				f.promotionRepo.On("FindByID", mock.Anything, uint64(5)).Return(&p, nil).Once()
				f.promotionRepo.On("UpdateActive", mock.Anything, uint64(5), false).Return(nil).Once()
				f.cacheRepo.On("InvalidateActivePromotions", mock.Anything).Return(nil).Once()
				f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e model.Event) bool {
					return e.Topic() == constant.TopicPromotionDeactivated
				})).Return(nil).Once()
			},
		},
		{
			name:     "success: activating an active promotion is a no-op",
			activate: true,
			mockCall: func(f fields) {
				p := running(5, "X", constant.DiscountTypeFixedAmount, "5")
				f.promotionRepo.On("FindByID", mock.Anything, uint64(5)).Return(&p, nil).Once()
			},
		},
		{
			name:     "success: activate",
			activate: true,
			mockCall: func(f fields) {
				p := running(5, "X", constant.DiscountTypeFixedAmount, "5")
				p.IsActive = false
				f.promotionRepo.On("FindByID", mock.Anything, uint64(5)).Return(&p, nil).Once()
				f.promotionRepo.On("UpdateActive", mock.Anything, uint64(5), true).Return(nil).Once()
				f.cacheRepo.On("InvalidateActivePromotions", mock.Anything).Return(errors.New("redis down")).Once()
				f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:     "error: not found",
			activate: true,
			mockCall: func(f fields) {
				f.promotionRepo.On("FindByID", mock.Anything, uint64(5)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:     "error: row vanished before update",
			activate: false,
			mockCall: func(f fields) {
				p := running(5, "X", constant.DiscountTypeFixedAmount, "5")
				f.promotionRepo.On("FindByID", mock.Anything, uint64(5)).Return(&p, nil).Once()
				f.promotionRepo.On("UpdateActive", mock.Anything, uint64(5), false).Return(sql.ErrNoRows).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			var err error
			if tt.activate {
				err = f.app().ActivatePromotion(context.Background(), 5)
			} else {
				err = f.app().DeactivatePromotion(context.Background(), 5)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPromotionApp_GetUsageStats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFields(t)
		p := running(5, "X", constant.DiscountTypeFixedAmount, "5")
		stats := &model.PromotionUsageStats{PromotionID: 5, UsageCount: 3, DistinctCustomers: 2, TotalDiscount: dec("15")}
		f.promotionRepo.On("FindByID", mock.Anything, uint64(5)).Return(&p, nil).Once()
		f.promotionRepo.On("UsageStats", mock.Anything, uint64(5)).Return(stats, nil).Once()

		got, err := f.app().GetUsageStats(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, stats, got)
	})

	t.Run("error: not found", func(t *testing.T) {
		f := newFields(t)
		f.promotionRepo.On("FindByID", mock.Anything, uint64(5)).Return(nil, nil).Once()

		_, err := f.app().GetUsageStats(context.Background(), 5)
		assertErrCode(t, err, constant.ErrNotFound)
	})
}
