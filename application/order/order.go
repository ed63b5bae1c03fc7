package order

import (
	"context"
	"strconv"
	"time"

	"github.com/muhammadheryan/commerce-engine/application/inventory"
	"github.com/muhammadheryan/commerce-engine/application/promotion"
	"github.com/muhammadheryan/commerce-engine/cmd/config"
	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/muhammadheryan/commerce-engine/model"
	orderrepo "github.com/muhammadheryan/commerce-engine/repository/order"
	productrepo "github.com/muhammadheryan/commerce-engine/repository/product"
	txrepo "github.com/muhammadheryan/commerce-engine/repository/tx"
	"github.com/muhammadheryan/commerce-engine/thirdparty/rabbitmq"
	"github.com/muhammadheryan/commerce-engine/utils/errors"
	"github.com/muhammadheryan/commerce-engine/utils/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderApp interface {
	// PlaceOrder prices the order, reserves its stock and records the
	// promotions it uses in a single transaction.
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)
	PayOrder(ctx context.Context, orderID uint64) error
	CancelOrder(ctx context.Context, orderID uint64) error
}

type orderAppImpl struct {
	config       *config.Config
	txRepo       txrepo.TxRepository
	orderRepo    orderrepo.OrderRepository
	productRepo  productrepo.ProductRepository
	promotionApp promotion.PromotionApp
	inventoryApp inventory.InventoryApp
	publisher    rabbitmq.EventPublisher
	now          func() time.Time
}

func NewOrderApp(config *config.Config, txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, productRepo productrepo.ProductRepository,
	promotionApp promotion.PromotionApp, inventoryApp inventory.InventoryApp, publisher rabbitmq.EventPublisher) OrderApp {
	return &orderAppImpl{
		config:       config,
		txRepo:       txRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		promotionApp: promotionApp,
		inventoryApp: inventoryApp,
		publisher:    publisher,
		now:          time.Now,
	}
}

func (s *orderAppImpl) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	// merge repeated products, keeping first-seen order
	items := make([]model.OrderItemRequest, 0, len(req.Items))
	index := make(map[uint64]int, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, errors.SetCustomError(constant.ErrInvalidRequest)
		}
		if i, ok := index[item.ProductID]; ok {
			items[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(items)
		items = append(items, item)
	}

	productIDs := make([]uint64, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		logger.Error("[PlaceOrder] get products", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	byID := make(map[uint64]model.ProductDetail, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	subtotal := decimal.Zero
	var itemCount int64
	lines := make([]model.OrderLine, 0, len(items))
	allocLines := make([]model.AllocationLine, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, errors.SetCustomError(constant.ErrNotFound).WithReason("product " + strconv.FormatUint(item.ProductID, 10))
		}
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(item.Quantity)))
		itemCount += item.Quantity
		lines = append(lines, model.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: product.Price})
		allocLines = append(allocLines, model.AllocationLine{ProductID: item.ProductID, ProductName: product.Name, Quantity: item.Quantity})
	}

	orderCtx := &model.OrderContext{
		OrderTotal:      subtotal,
		ProductIDs:      productIDs,
		ItemCount:       itemCount,
		CustomerEmail:   req.CustomerEmail,
		CustomerSegment: req.CustomerSegment,
		CouponCode:      req.CouponCode,
	}
	plan, err := s.promotionApp.CalculateBest(ctx, orderCtx)
	if err != nil {
		return nil, err
	}

	entries, err := s.inventoryApp.PlanAllocation(ctx, &model.AllocationRequest{Lines: allocLines, CustomerCity: req.CustomerCity})
	if err != nil {
		return nil, err
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[PlaceOrder] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	expiresAt := s.now().Add(s.config.Order.OrderExpiration)
	orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, &model.InsertOrderTxItem{
		CustomerEmail: req.CustomerEmail,
		Status:        constant.OrderStatusPending,
		Subtotal:      subtotal,
		Discount:      plan.TotalDiscount,
		Total:         plan.FinalAmount,
		FreeShipping:  plan.FreeShipping,
		ExpiresAT:     expiresAt,
	})
	if err != nil {
		logger.Error("[PlaceOrder] insert order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderID, lines); err != nil {
		logger.Error("[PlaceOrder] insert items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	stockEvents, err := s.inventoryApp.ReserveTx(ctx, tx, &model.ReserveRequest{OrderID: orderID, Entries: entries, ExpiresAt: expiresAt})
	if err != nil {
		logger.Info("[PlaceOrder] reserve stock failed", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return nil, err
	}

	promotionEvents, err := s.promotionApp.ApplyPlanTx(ctx, tx, orderID, orderCtx, plan)
	if err != nil {
		logger.Info("[PlaceOrder] apply promotions failed", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return nil, err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[PlaceOrder] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	planned := model.AllocationPlanned{Entries: entries, At: s.now()}
	rabbitmq.PublishAll(ctx, s.publisher, append([]model.Event{planned}, stockEvents...))
	s.promotionApp.OnApplied(ctx, promotionEvents)

	if s.publisher != nil {
		msg := rabbitmq.ReservationExpirationMessage{OrderID: orderID, ExpiresAt: expiresAt}
		if err := s.publisher.PublishReservationExpiration(ctx, msg); err != nil {
			logger.Error("[PlaceOrder] publish reservation expiration", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		}
	}

	logger.Info("[PlaceOrder] order placed",
		zap.Uint64("order_id", orderID),
		zap.String("subtotal", subtotal.String()),
		zap.String("discount", plan.TotalDiscount.String()),
		zap.Int("allocations", len(entries)),
	)

	return &model.OrderResponse{
		OrderID:    orderID,
		ExpiresAt:  expiresAt,
		Pricing:    *plan,
		Allocation: entries,
	}, nil
}

func (s *orderAppImpl) PayOrder(ctx context.Context, orderID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[PayOrder] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	orderDetail, err := s.orderRepo.GetOrderDetailTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[PayOrder] get order detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if orderDetail == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if orderDetail.Status != constant.OrderStatusPending {
		return errors.SetCustomError(constant.ErrInvalidOrderStatus).WithReason("order is " + orderDetail.Status.String())
	}

	// ship reserved stock: on-hand and reserved both drop
	events, err := s.inventoryApp.FulfillOrderTx(ctx, tx, orderID)
	if err != nil {
		return err
	}

	if err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, int(constant.OrderStatusCompleted)); err != nil {
		logger.Error("[PayOrder] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[PayOrder] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	rabbitmq.PublishAll(ctx, s.publisher, events)
	return nil
}

// CancelOrder releases the order's reservations. Promotion usage recorded
// at checkout is kept.
func (s *orderAppImpl) CancelOrder(ctx context.Context, orderID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CancelOrder] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	orderDetail, err := s.orderRepo.GetOrderDetailTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[CancelOrder] get order detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if orderDetail == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if orderDetail.Status != constant.OrderStatusPending {
		return errors.SetCustomError(constant.ErrInvalidOrderStatus).WithReason("order is " + orderDetail.Status.String())
	}

	// release reservations to decrease reserved only
	events, err := s.inventoryApp.ReleaseOrderTx(ctx, tx, orderID)
	if err != nil {
		return err
	}

	if err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, int(constant.OrderStatusCanceled)); err != nil {
		logger.Error("[CancelOrder] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CancelOrder] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	rabbitmq.PublishAll(ctx, s.publisher, events)
	return nil
}
