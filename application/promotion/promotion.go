package promotion

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/commerce-engine/cmd/config"
	"github.com/muhammadheryan/commerce-engine/constant"
	promoengine "github.com/muhammadheryan/commerce-engine/engine/promotion"
	"github.com/muhammadheryan/commerce-engine/model"
	orderrepo "github.com/muhammadheryan/commerce-engine/repository/order"
	promotionrepo "github.com/muhammadheryan/commerce-engine/repository/promotion"
	redisrepo "github.com/muhammadheryan/commerce-engine/repository/redis"
	txrepo "github.com/muhammadheryan/commerce-engine/repository/tx"
	"github.com/muhammadheryan/commerce-engine/thirdparty/rabbitmq"
	cerr "github.com/muhammadheryan/commerce-engine/utils/errors"
	"github.com/muhammadheryan/commerce-engine/utils/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PromotionApp interface {
	// CalculateBest prices an order against the active promotions. Having no
	// eligible promotion is not an error.
	CalculateBest(ctx context.Context, order *model.OrderContext) (*model.DiscountPlan, error)
	// ValidatePromotion reports whether code applies to order and, when it
	// does not, which check failed.
	ValidatePromotion(ctx context.Context, code string, order *model.OrderContext) (*model.PromotionValidation, error)
	// ApplyToOrder applies one code to a pending order, prices it against the
	// stored order and writes the new discount back in the same transaction.
	ApplyToOrder(ctx context.Context, req *model.ApplyPromotionRequest) (*model.AppliedPromotion, error)
	// ApplyPlanTx records every promotion of plan against orderID inside tx.
	// The returned events must be handed to OnApplied after commit.
	ApplyPlanTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, order *model.OrderContext, plan *model.DiscountPlan) ([]model.Event, error)
	OnApplied(ctx context.Context, events []model.Event)

	CreatePromotion(ctx context.Context, req *model.CreatePromotionRequest) (*model.Promotion, error)
	ActivatePromotion(ctx context.Context, id uint64) error
	DeactivatePromotion(ctx context.Context, id uint64) error
	GetUsageStats(ctx context.Context, id uint64) (*model.PromotionUsageStats, error)
}

type promotionAppImpl struct {
	config        *config.Config
	txRepo        txrepo.TxRepository
	promotionRepo promotionrepo.PromotionRepository
	orderRepo     orderrepo.OrderRepository
	cacheRepo     redisrepo.Repository
	publisher     rabbitmq.EventPublisher
	engine        *promoengine.Engine
	now           func() time.Time
}

func NewPromotionApp(config *config.Config, txRepo txrepo.TxRepository, promotionRepo promotionrepo.PromotionRepository, orderRepo orderrepo.OrderRepository,
	cacheRepo redisrepo.Repository, publisher rabbitmq.EventPublisher) PromotionApp {
	return &promotionAppImpl{
		config:        config,
		txRepo:        txRepo,
		promotionRepo: promotionRepo,
		orderRepo:     orderRepo,
		cacheRepo:     cacheRepo,
		publisher:     publisher,
		engine:        promoengine.NewEngine(time.Now),
		now:           time.Now,
	}
}

func (s *promotionAppImpl) CalculateBest(ctx context.Context, order *model.OrderContext) (*model.DiscountPlan, error) {
	if order == nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	snap, err := s.snapshot(ctx, order)
	if err != nil {
		return nil, err
	}

	plan := s.engine.CalculateBest(*order, snap)
	logger.Debug("[CalculateBest] plan selected",
		zap.String("strategy", string(plan.Strategy)),
		zap.String("discount", plan.TotalDiscount.String()),
		zap.Int("promotions", len(plan.Applied)),
	)

	if len(plan.Applied) > 0 {
		codes := make([]string, 0, len(plan.Applied))
		for _, a := range plan.Applied {
			codes = append(codes, a.Code)
		}
		rabbitmq.PublishAll(ctx, s.publisher, []model.Event{model.PromotionSelected{
			Strategy:      plan.Strategy,
			Codes:         codes,
			OrderTotal:    plan.OriginalAmount,
			TotalDiscount: plan.TotalDiscount,
			CustomerEmail: order.CustomerEmail,
			At:            s.now(),
		}})
	}

	return &plan, nil
}

// snapshot loads everything the engine needs to price order.
func (s *promotionAppImpl) snapshot(ctx context.Context, order *model.OrderContext) (promoengine.Snapshot, error) {
	active, err := s.activePromotions(ctx)
	if err != nil {
		return promoengine.Snapshot{}, err
	}
	snap := promoengine.Snapshot{Active: active}

	ids := make([]uint64, 0, len(active)+1)
	for _, p := range active {
		ids = append(ids, p.ID)
	}

	if code := model.NormalizeCode(order.CouponCode); code != "" && !containsCode(active, code) {
		coupon, err := s.promotionRepo.FindByCode(ctx, code)
		if err != nil {
			logger.Error("[CalculateBest] error promotionRepo.FindByCode", zap.String("code", code), zap.String("error", err.Error()))
			return promoengine.Snapshot{}, cerr.SetCustomError(constant.ErrInternal)
		}
		if coupon != nil {
			snap.Coupon = coupon
			ids = append(ids, coupon.ID)
		}
	}

	if order.CustomerEmail != "" {
		usage, err := s.promotionRepo.CustomerUsageCounts(ctx, order.CustomerEmail, ids)
		if err != nil {
			logger.Error("[CalculateBest] error promotionRepo.CustomerUsageCounts", zap.String("error", err.Error()))
			return promoengine.Snapshot{}, cerr.SetCustomError(constant.ErrInternal)
		}
		snap.CustomerUsage = usage
	}
	return snap, nil
}

// activePromotions reads through the cache. Cache failures only cost a
// database round trip.
func (s *promotionAppImpl) activePromotions(ctx context.Context) ([]model.Promotion, error) {
	cached, ok, err := s.cacheRepo.GetActivePromotions(ctx)
	if err != nil {
		logger.Warn("[activePromotions] cache read failed", zap.String("error", err.Error()))
	}
	if ok {
		return cached, nil
	}

	active, err := s.promotionRepo.FindActive(ctx, s.now())
	if err != nil {
		logger.Error("[activePromotions] error promotionRepo.FindActive", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.cacheRepo.SetActivePromotions(ctx, active, s.config.Redis.PromotionCacheTTL); err != nil {
		logger.Warn("[activePromotions] cache write failed", zap.String("error", err.Error()))
	}
	return active, nil
}

func (s *promotionAppImpl) ValidatePromotion(ctx context.Context, code string, order *model.OrderContext) (*model.PromotionValidation, error) {
	code = model.NormalizeCode(code)
	if code == "" || order == nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	p, err := s.promotionRepo.FindByCode(ctx, code)
	if err != nil {
		logger.Error("[ValidatePromotion] error promotionRepo.FindByCode", zap.String("code", code), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound).WithReason("promotion " + code)
	}

	usage := 0
	if order.CustomerEmail != "" {
		counts, err := s.promotionRepo.CustomerUsageCounts(ctx, order.CustomerEmail, []uint64{p.ID})
		if err != nil {
			logger.Error("[ValidatePromotion] error promotionRepo.CustomerUsageCounts", zap.String("error", err.Error()))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}
		usage = counts[p.ID]
	}

	discount, err := s.engine.Evaluate(p, *order, usage)
	if err != nil {
		var ie *promoengine.IneligibleError
		if errors.As(err, &ie) {
			return &model.PromotionValidation{Code: p.Code, Eligible: false, Reason: ie.Reason, DiscountAmount: discount}, nil
		}
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return &model.PromotionValidation{Code: p.Code, Eligible: true, DiscountAmount: discount}, nil
}

func (s *promotionAppImpl) ApplyToOrder(ctx context.Context, req *model.ApplyPromotionRequest) (*model.AppliedPromotion, error) {
	if req == nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	code := model.NormalizeCode(req.Code)
	if code == "" || req.OrderID == 0 {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ApplyToOrder] begin tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	orderDetail, err := s.orderRepo.GetOrderDetailTx(ctx, tx, req.OrderID)
	if err != nil {
		logger.Error("[ApplyToOrder] error orderRepo.GetOrderDetailTx", zap.Uint64("order_id", req.OrderID), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if orderDetail == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound).WithReason("order " + strconv.FormatUint(req.OrderID, 10))
	}
	if orderDetail.Status != constant.OrderStatusPending {
		return nil, cerr.SetCustomError(constant.ErrInvalidOrderStatus).WithReason("order is " + orderDetail.Status.String())
	}

	lines, err := s.orderRepo.GetOrderLinesTx(ctx, tx, req.OrderID)
	if err != nil {
		logger.Error("[ApplyToOrder] error orderRepo.GetOrderLinesTx", zap.Uint64("order_id", req.OrderID), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	order := storedOrderContext(orderDetail, lines, req.CustomerSegment, code)

	p, err := s.promotionRepo.GetByCodeForUpdateTx(ctx, tx, code)
	if err != nil {
		logger.Error("[ApplyToOrder] error promotionRepo.GetByCodeForUpdateTx", zap.String("code", code), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound).WithReason("promotion " + code)
	}

	usage, err := s.promotionRepo.CustomerUsageCountTx(ctx, tx, p.ID, order.CustomerEmail)
	if err != nil {
		logger.Error("[ApplyToOrder] error promotionRepo.CustomerUsageCountTx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	discount, err := s.engine.Evaluate(p, order, usage)
	if err != nil {
		logger.Info("[ApplyToOrder] promotion rejected", zap.String("code", code), zap.Uint64("order_id", req.OrderID), zap.String("reason", err.Error()))
		return nil, rejection(err)
	}

	events, err := s.recordTx(ctx, tx, p, req.OrderID, &order, discount)
	if err != nil {
		return nil, err
	}

	pricing := repriced(orderDetail, p, discount)
	if err := s.orderRepo.UpdateOrderPricingTx(ctx, tx, req.OrderID, &pricing); err != nil {
		logger.Error("[ApplyToOrder] error orderRepo.UpdateOrderPricingTx", zap.Uint64("order_id", req.OrderID), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ApplyToOrder] commit tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.OnApplied(ctx, events)

	return &model.AppliedPromotion{
		PromotionID:    p.ID,
		Code:           p.Code,
		Name:           p.Name,
		DiscountType:   p.DiscountType,
		DiscountAmount: discount,
	}, nil
}

func (s *promotionAppImpl) ApplyPlanTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, order *model.OrderContext, plan *model.DiscountPlan) ([]model.Event, error) {
	events := make([]model.Event, 0)
	if plan == nil {
		return events, nil
	}

	for _, applied := range plan.Applied {
		p, err := s.promotionRepo.GetByIDForUpdateTx(ctx, tx, applied.PromotionID)
		if err != nil {
			logger.Error("[ApplyPlanTx] error promotionRepo.GetByIDForUpdateTx", zap.Uint64("promotion_id", applied.PromotionID), zap.String("error", err.Error()))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}
		if p == nil {
			return nil, cerr.SetCustomError(constant.ErrNotFound).WithReason("promotion " + applied.Code)
		}
		// the plan was computed without locks; availability and the
		// customer's usage may have changed
		if err := s.engine.CheckAvailability(p); err != nil {
			return nil, rejection(err)
		}
		usage, err := s.promotionRepo.CustomerUsageCountTx(ctx, tx, p.ID, order.CustomerEmail)
		if err != nil {
			logger.Error("[ApplyPlanTx] error promotionRepo.CustomerUsageCountTx", zap.Uint64("promotion_id", p.ID), zap.String("error", err.Error()))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}
		if err := s.engine.CheckEligibility(p, *order, usage); err != nil {
			return nil, rejection(err)
		}

		recorded, err := s.recordTx(ctx, tx, p, orderID, order, applied.DiscountAmount)
		if err != nil {
			return nil, err
		}
		events = append(events, recorded...)
	}
	return events, nil
}

// recordTx counts one application of p and stores its usage record.
func (s *promotionAppImpl) recordTx(ctx context.Context, tx *sqlx.Tx, p *model.Promotion, orderID uint64, order *model.OrderContext, discount decimal.Decimal) ([]model.Event, error) {
	usage, events, err := p.RecordApplication(orderID, order.CustomerEmail, order.OrderTotal, discount, s.now())
	if err != nil {
		return nil, cerr.SetCustomError(constant.ErrPromotionUsageLimit).WithReason(p.Code)
	}

	ok, err := s.promotionRepo.IncrementUsageTx(ctx, tx, p.ID)
	if err != nil {
		logger.Error("[recordTx] error promotionRepo.IncrementUsageTx", zap.Uint64("promotion_id", p.ID), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		return nil, cerr.SetCustomError(constant.ErrPromotionUsageLimit).WithReason(p.Code)
	}

	if err := s.promotionRepo.InsertUsageTx(ctx, tx, &usage); err != nil {
		if errors.Is(err, promotionrepo.ErrDuplicateUsage) {
			return nil, cerr.SetCustomError(constant.ErrPromotionAlreadyApplied).WithReason(p.Code)
		}
		logger.Error("[recordTx] error promotionRepo.InsertUsageTx", zap.Uint64("promotion_id", p.ID), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return events, nil
}

func (s *promotionAppImpl) OnApplied(ctx context.Context, events []model.Event) {
	if len(events) == 0 {
		return
	}
	s.invalidateCache(ctx)
	rabbitmq.PublishAll(ctx, s.publisher, events)
}

func (s *promotionAppImpl) CreatePromotion(ctx context.Context, req *model.CreatePromotionRequest) (*model.Promotion, error) {
	p := model.Promotion{
		PromotionRow: model.PromotionRow{
			Code:              model.NormalizeCode(req.Code),
			Name:              req.Name,
			Description:       req.Description,
			DiscountType:      req.DiscountType,
			DiscountValue:     req.DiscountValue,
			MaxDiscountAmount: req.MaxDiscountAmount,
			MinPurchaseAmount: req.MinPurchaseAmount,
			IsActive:          true,
			IsStackable:       req.IsStackable,
			Priority:          req.Priority,
			StartDate:         req.StartDate,
			EndDate:           req.EndDate,
			UsageLimit:        req.UsageLimit,
			PerCustomerLimit:  req.PerCustomerLimit,
			RequiresCoupon:    req.RequiresCoupon,
			TargetSegment:     req.TargetSegment,
		},
		Rules: make([]model.Rule, 0, len(req.Rules)),
	}

	ruleRows := make([]model.RuleRow, 0, len(req.Rules))
	for _, rr := range req.Rules {
		row := model.RuleRow{RuleType: rr.RuleType, Name: rr.Name, Value: rr.Value}
		rule, err := model.ParseRule(row)
		if err != nil {
			return nil, cerr.SetCustomError(constant.ErrInvalidRequest).WithReason(err.Error())
		}
		ruleRows = append(ruleRows, row)
		p.Rules = append(p.Rules, rule)
	}

	if err := p.Validate(); err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest).WithReason(err.Error())
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreatePromotion] begin tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	id, err := s.promotionRepo.CreateTx(ctx, tx, &p.PromotionRow, ruleRows)
	if err != nil {
		if errors.Is(err, promotionrepo.ErrDuplicateCode) {
			return nil, cerr.SetCustomError(constant.ErrInvalidRequest).WithReason("code " + p.Code + " already exists")
		}
		logger.Error("[CreatePromotion] error promotionRepo.CreateTx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreatePromotion] commit tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed = true

	p.ID = id
	p.CreatedAt = s.now()
	s.invalidateCache(ctx)
	logger.Info("[CreatePromotion] promotion created", zap.Uint64("promotion_id", id), zap.String("code", p.Code))
	return &p, nil
}

func (s *promotionAppImpl) ActivatePromotion(ctx context.Context, id uint64) error {
	return s.setActive(ctx, "[ActivatePromotion]", id, true)
}

func (s *promotionAppImpl) DeactivatePromotion(ctx context.Context, id uint64) error {
	return s.setActive(ctx, "[DeactivatePromotion]", id, false)
}

func (s *promotionAppImpl) setActive(ctx context.Context, op string, id uint64, active bool) error {
	p, err := s.promotionRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error(op+" error promotionRepo.FindByID", zap.Uint64("promotion_id", id), zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return cerr.SetCustomError(constant.ErrNotFound)
	}

	var events []model.Event
	if active {
		events = p.Activate(s.now())
	} else {
		events = p.Deactivate(s.now())
	}
	if len(events) == 0 {
		return nil
	}

	if err := s.promotionRepo.UpdateActive(ctx, id, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cerr.SetCustomError(constant.ErrNotFound)
		}
		logger.Error(op+" error promotionRepo.UpdateActive", zap.Uint64("promotion_id", id), zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	s.invalidateCache(ctx)
	rabbitmq.PublishAll(ctx, s.publisher, events)
	return nil
}

func (s *promotionAppImpl) GetUsageStats(ctx context.Context, id uint64) (*model.PromotionUsageStats, error) {
	p, err := s.promotionRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[GetUsageStats] error promotionRepo.FindByID", zap.Uint64("promotion_id", id), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	stats, err := s.promotionRepo.UsageStats(ctx, id)
	if err != nil {
		logger.Error("[GetUsageStats] error promotionRepo.UsageStats", zap.Uint64("promotion_id", id), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return stats, nil
}

func (s *promotionAppImpl) invalidateCache(ctx context.Context) {
	if err := s.cacheRepo.InvalidateActivePromotions(ctx); err != nil {
		logger.Warn("[invalidateCache] cache delete failed", zap.String("error", err.Error()))
	}
}

// rejection converts an eligibility failure into the error returned to callers.
func rejection(err error) error {
	var ie *promoengine.IneligibleError
	if !errors.As(err, &ie) {
		return cerr.SetCustomError(constant.ErrInternal)
	}
	if ie.Check == promoengine.CheckUsageLimit {
		return cerr.SetCustomError(constant.ErrPromotionUsageLimit).WithReason(ie.Reason)
	}
	return cerr.SetCustomError(constant.ErrPromotionIneligible).WithReason(ie.Reason)
}

// storedOrderContext prices against what was persisted at checkout.
func storedOrderContext(detail *model.OrderDetail, lines []model.OrderLine, segment, code string) model.OrderContext {
	order := model.OrderContext{
		OrderTotal:      detail.Subtotal,
		ProductIDs:      make([]uint64, 0, len(lines)),
		CustomerEmail:   detail.CustomerEmail,
		CustomerSegment: segment,
		CouponCode:      code,
	}
	for _, line := range lines {
		order.ProductIDs = append(order.ProductIDs, line.ProductID)
		order.ItemCount += line.Quantity
	}
	return order
}

// repriced adds discount to the order's existing discount. The total never
// drops below zero.
func repriced(detail *model.OrderDetail, p *model.Promotion, discount decimal.Decimal) model.OrderPricing {
	total := detail.Discount.Add(discount)
	if total.GreaterThan(detail.Subtotal) {
		total = detail.Subtotal
	}
	return model.OrderPricing{
		Discount:     total,
		Total:        detail.Subtotal.Sub(total),
		FreeShipping: detail.FreeShipping || p.DiscountType == constant.DiscountTypeFreeShipping,
	}
}

func containsCode(promotions []model.Promotion, code string) bool {
	for _, p := range promotions {
		if model.NormalizeCode(p.Code) == code {
			return true
		}
	}
	return false
}
