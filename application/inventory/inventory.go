package inventory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/commerce-engine/cmd/config"
	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/muhammadheryan/commerce-engine/engine/allocation"
	"github.com/muhammadheryan/commerce-engine/model"
	txrepo "github.com/muhammadheryan/commerce-engine/repository/tx"
	warehouserepo "github.com/muhammadheryan/commerce-engine/repository/warehouse"
	"github.com/muhammadheryan/commerce-engine/thirdparty/rabbitmq"
	cerr "github.com/muhammadheryan/commerce-engine/utils/errors"
	"github.com/muhammadheryan/commerce-engine/utils/logger"
	"go.uber.org/zap"
)

type InventoryApp interface {
	// PlanAllocation plans which warehouses would fulfill req without
	// reserving anything.
	PlanAllocation(ctx context.Context, req *model.AllocationRequest) ([]model.AllocationEntry, error)
	// PreviewAllocation is PlanAllocation for callers that will not reserve
	// the plan; it announces the plan as it is computed.
	PreviewAllocation(ctx context.Context, req *model.AllocationRequest) ([]model.AllocationEntry, error)
	ReserveAllocation(ctx context.Context, req *model.ReserveRequest) error
	ReserveTx(ctx context.Context, tx *sqlx.Tx, req *model.ReserveRequest) ([]model.Event, error)
	ReleaseOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.Event, error)
	FulfillOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.Event, error)
	AdjustStock(ctx context.Context, req *model.AdjustStockRequest) (*model.InventoryItem, error)
	Restock(ctx context.Context, req *model.RestockRequest) (*model.InventoryItem, error)
}

type inventoryAppImpl struct {
	config        *config.Config
	txRepo        txrepo.TxRepository
	warehouseRepo warehouserepo.WarehouseRepository
	publisher     rabbitmq.EventPublisher
	now           func() time.Time
}

func NewInventoryApp(config *config.Config, txRepo txrepo.TxRepository, warehouseRepo warehouserepo.WarehouseRepository, publisher rabbitmq.EventPublisher) InventoryApp {
	return &inventoryAppImpl{
		config:        config,
		txRepo:        txRepo,
		warehouseRepo: warehouseRepo,
		publisher:     publisher,
		now:           time.Now,
	}
}

func (s *inventoryAppImpl) PreviewAllocation(ctx context.Context, req *model.AllocationRequest) ([]model.AllocationEntry, error) {
	entries, err := s.PlanAllocation(ctx, req)
	if err != nil {
		return nil, err
	}

	rabbitmq.PublishAll(ctx, s.publisher, []model.Event{model.AllocationPlanned{Entries: entries, At: s.now()}})
	return entries, nil
}

func (s *inventoryAppImpl) PlanAllocation(ctx context.Context, req *model.AllocationRequest) ([]model.AllocationEntry, error) {
	if req == nil || len(req.Lines) == 0 {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	warehouses, err := s.warehouseRepo.ActiveWarehouses(ctx)
	if err != nil {
		logger.Error("[PlanAllocation] error warehouseRepo.ActiveWarehouses", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	productIDs := make([]uint64, 0, len(req.Lines))
	seen := make(map[uint64]bool, len(req.Lines))
	for _, line := range req.Lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			productIDs = append(productIDs, line.ProductID)
		}
	}

	items, err := s.warehouseRepo.InventoryForProducts(ctx, productIDs)
	if err != nil {
		logger.Error("[PlanAllocation] error warehouseRepo.InventoryForProducts", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	entries, err := allocation.Plan(*req, allocation.Stock{Warehouses: warehouses, Items: items})
	if err != nil {
		return nil, stockError(err)
	}
	return entries, nil
}

func (s *inventoryAppImpl) ReserveAllocation(ctx context.Context, req *model.ReserveRequest) error {
	if req.ExpiresAt.IsZero() {
		req.ExpiresAt = s.now().Add(s.config.Order.OrderExpiration)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ReserveAllocation] begin tx", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	events, err := s.ReserveTx(ctx, tx, req)
	if err != nil {
		return err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ReserveAllocation] commit tx", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	committed = true

	rabbitmq.PublishAll(ctx, s.publisher, events)
	return nil
}

// ReserveTx reserves every entry of req. Rows are locked in item id order.
func (s *inventoryAppImpl) ReserveTx(ctx context.Context, tx *sqlx.Tx, req *model.ReserveRequest) ([]model.Event, error) {
	if req.OrderID == 0 || len(req.Entries) == 0 {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	entries := make([]model.AllocationEntry, len(req.Entries))
	copy(entries, req.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].InventoryItemID < entries[j].InventoryItemID
	})

	now := s.now()
	events := make([]model.Event, 0, len(entries))
	for _, entry := range entries {
		item, err := s.warehouseRepo.GetInventoryItemForUpdateTx(ctx, tx, entry.InventoryItemID)
		if err != nil {
			logger.Error("[ReserveTx] error warehouseRepo.GetInventoryItemForUpdateTx", zap.Uint64("item_id", entry.InventoryItemID), zap.String("error", err.Error()))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}
		if item == nil {
			return nil, cerr.SetCustomError(constant.ErrNotFound).WithReason("inventory item")
		}

		reserved, err := item.Reserve(entry.Quantity, req.OrderID, now)
		if err != nil {
			return nil, stockError(err)
		}

		if err := s.updateItem(ctx, tx, "[ReserveTx]", item); err != nil {
			return nil, err
		}

		reservation := &model.Reservation{
			OrderID:         req.OrderID,
			InventoryItemID: item.ID,
			WarehouseID:     item.WarehouseID,
			ProductID:       item.ProductID,
			Quantity:        entry.Quantity,
			ExpiresAt:       req.ExpiresAt,
		}
		if err := s.warehouseRepo.InsertReservationTx(ctx, tx, reservation); err != nil {
			if errors.Is(err, warehouserepo.ErrDuplicateReservation) {
				return nil, cerr.SetCustomError(constant.ErrAlreadyReserved)
			}
			logger.Error("[ReserveTx] error warehouseRepo.InsertReservationTx", zap.Uint64("order_id", req.OrderID), zap.String("error", err.Error()))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}
		events = append(events, reserved...)
	}
	return events, nil
}

func (s *inventoryAppImpl) ReleaseOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.Event, error) {
	return s.settleTx(ctx, tx, "[ReleaseOrderTx]", orderID, func(item *model.InventoryItem, r model.Reservation, now time.Time) ([]model.Event, error) {
		return item.Release(r.Quantity, orderID, now)
	})
}

func (s *inventoryAppImpl) FulfillOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.Event, error) {
	return s.settleTx(ctx, tx, "[FulfillOrderTx]", orderID, func(item *model.InventoryItem, r model.Reservation, now time.Time) ([]model.Event, error) {
		return item.Fulfill(r.Quantity, orderID, now)
	})
}

// settleTx applies settle to every reservation of orderID and deletes them.
// An order without reservations settles to no events.
func (s *inventoryAppImpl) settleTx(ctx context.Context, tx *sqlx.Tx, op string, orderID uint64,
	settle func(item *model.InventoryItem, r model.Reservation, now time.Time) ([]model.Event, error)) ([]model.Event, error) {
	reservations, err := s.warehouseRepo.GetReservationsByOrderTx(ctx, tx, orderID)
	if err != nil {
		logger.Error(op+" error warehouseRepo.GetReservationsByOrderTx", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	reservations = append([]model.Reservation(nil), reservations...)
	sort.SliceStable(reservations, func(i, j int) bool {
		return reservations[i].InventoryItemID < reservations[j].InventoryItemID
	})

	now := s.now()
	events := make([]model.Event, 0, len(reservations))
	for _, r := range reservations {
		item, err := s.warehouseRepo.GetInventoryItemForUpdateTx(ctx, tx, r.InventoryItemID)
		if err != nil {
			logger.Error(op+" error warehouseRepo.GetInventoryItemForUpdateTx", zap.Uint64("item_id", r.InventoryItemID), zap.String("error", err.Error()))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}
		if item == nil {
			logger.Error(op+" reservation points to missing item", zap.Uint64("reservation_id", r.ID), zap.Uint64("item_id", r.InventoryItemID))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}

		settled, err := settle(item, r, now)
		if err != nil {
			logger.Error(op+" reservation exceeds reserved stock", zap.Uint64("reservation_id", r.ID), zap.String("error", err.Error()))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}

		if err := s.updateItem(ctx, tx, op, item); err != nil {
			return nil, err
		}
		if err := s.warehouseRepo.DeleteReservationTx(ctx, tx, r.ID); err != nil {
			logger.Error(op+" error warehouseRepo.DeleteReservationTx", zap.Uint64("reservation_id", r.ID), zap.String("error", err.Error()))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}
		events = append(events, settled...)
	}
	return events, nil
}

func (s *inventoryAppImpl) AdjustStock(ctx context.Context, req *model.AdjustStockRequest) (*model.InventoryItem, error) {
	if req.Delta == 0 || req.Reason == "" {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[AdjustStock] begin tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	item, err := s.warehouseRepo.GetInventoryForUpdateTx(ctx, tx, req.WarehouseID, req.ProductID)
	if err != nil {
		logger.Error("[AdjustStock] error warehouseRepo.GetInventoryForUpdateTx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if item == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	events, err := item.Adjust(req.Delta, req.Reason, s.now())
	if err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest).WithReason(err.Error())
	}
	if err := s.updateItem(ctx, tx, "[AdjustStock]", item); err != nil {
		return nil, err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[AdjustStock] commit tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed = true

	rabbitmq.PublishAll(ctx, s.publisher, events)
	return item, nil
}

// Restock adds stock to a warehouse, creating the inventory row on the
// first delivery of a product.
func (s *inventoryAppImpl) Restock(ctx context.Context, req *model.RestockRequest) (*model.InventoryItem, error) {
	if req.Quantity <= 0 {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Restock] begin tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	item, err := LockOrCreateItemTx(ctx, s.warehouseRepo, tx, req.WarehouseID, req.ProductID)
	if err != nil {
		return nil, err
	}

	events, err := item.Restock(req.Quantity, s.now())
	if err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest).WithReason(err.Error())
	}
	if err := s.updateItem(ctx, tx, "[Restock]", item); err != nil {
		return nil, err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Restock] commit tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed = true

	rabbitmq.PublishAll(ctx, s.publisher, events)
	return item, nil
}

func (s *inventoryAppImpl) updateItem(ctx context.Context, tx *sqlx.Tx, op string, item *model.InventoryItem) error {
	if err := s.warehouseRepo.UpdateInventoryItemTx(ctx, tx, item); err != nil {
		if errors.Is(err, warehouserepo.ErrVersionConflict) {
			return cerr.SetCustomError(constant.ErrConcurrentUpdate)
		}
		logger.Error(op+" error warehouseRepo.UpdateInventoryItemTx", zap.Uint64("item_id", item.ID), zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// LockOrCreateItemTx locks the inventory row of (warehouseID, productID),
// inserting an empty one when the warehouse has never stocked the product.
func LockOrCreateItemTx(ctx context.Context, repo warehouserepo.WarehouseRepository, tx *sqlx.Tx, warehouseID, productID uint64) (*model.InventoryItem, error) {
	item, err := repo.GetInventoryForUpdateTx(ctx, tx, warehouseID, productID)
	if err != nil {
		logger.Error("[LockOrCreateItemTx] error warehouseRepo.GetInventoryForUpdateTx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if item != nil {
		return item, nil
	}

	warehouse, err := repo.GetWarehouseByID(ctx, warehouseID)
	if err != nil {
		logger.Error("[LockOrCreateItemTx] error warehouseRepo.GetWarehouseByID", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if warehouse == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound).WithReason("warehouse")
	}

	item = &model.InventoryItem{WarehouseID: warehouseID, ProductID: productID}
	if _, err := repo.CreateInventoryItemTx(ctx, tx, item); err != nil {
		logger.Error("[LockOrCreateItemTx] error warehouseRepo.CreateInventoryItemTx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return item, nil
}

// stockError converts an allocation or reservation failure into the error
// returned to callers.
func stockError(err error) error {
	var shortage *model.StockShortageError
	if errors.As(err, &shortage) {
		return cerr.SetCustomError(constant.ErrInsufficientStock).
			WithReason(shortage.Error()).
			WithQuantities(shortage.Requested, shortage.Available)
	}
	if errors.Is(err, model.ErrInvalidQuantity) {
		return cerr.SetCustomError(constant.ErrInvalidRequest).WithReason(err.Error())
	}
	logger.Error("[stockError] unexpected error", zap.String("error", err.Error()))
	return cerr.SetCustomError(constant.ErrInternal)
}
