package warehouse

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	appinventory "github.com/muhammadheryan/commerce-engine/application/inventory"
	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/muhammadheryan/commerce-engine/model"
	txrepo "github.com/muhammadheryan/commerce-engine/repository/tx"
	warehouserepo "github.com/muhammadheryan/commerce-engine/repository/warehouse"
	"github.com/muhammadheryan/commerce-engine/thirdparty/rabbitmq"
	"github.com/muhammadheryan/commerce-engine/utils/errors"
	"github.com/muhammadheryan/commerce-engine/utils/logger"
	"go.uber.org/zap"
)

type WarehouseApp interface {
	ActivateWarehouse(ctx context.Context, warehouseID uint64) error
	DeactivateWarehouse(ctx context.Context, warehouseID uint64) error
	TransferStock(ctx context.Context, req *model.TransferStockRequest) error
}

type warehouseAppImpl struct {
	txRepo        txrepo.TxRepository
	warehouseRepo warehouserepo.WarehouseRepository
	publisher     rabbitmq.EventPublisher
	now           func() time.Time
}

func NewWarehouseApp(txRepo txrepo.TxRepository, warehouseRepo warehouserepo.WarehouseRepository, publisher rabbitmq.EventPublisher) WarehouseApp {
	return &warehouseAppImpl{
		txRepo:        txRepo,
		warehouseRepo: warehouseRepo,
		publisher:     publisher,
		now:           time.Now,
	}
}

func (s *warehouseAppImpl) ActivateWarehouse(ctx context.Context, warehouseID uint64) error {
	warehouse, err := s.warehouseRepo.GetWarehouseByID(ctx, warehouseID)
	if err != nil {
		logger.Error("[ActivateWarehouse] get warehouse failed", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if warehouse == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	err = s.warehouseRepo.UpdateWarehouseStatus(ctx, warehouseID, constant.WarehouseStatusActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[ActivateWarehouse] update status failed", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	logger.Info("[ActivateWarehouse] warehouse active", zap.Uint64("warehouse_id", warehouseID), zap.String("code", warehouse.Code))
	return nil
}

// DeactivateWarehouse takes a warehouse out of allocation. Warehouses still
// holding reservations cannot be deactivated. The check and the status
// change share a transaction that holds the warehouse's inventory rows.
func (s *warehouseAppImpl) DeactivateWarehouse(ctx context.Context, warehouseID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[DeactivateWarehouse] begin tx failed", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	warehouse, err := s.warehouseRepo.GetWarehouseForUpdateTx(ctx, tx, warehouseID)
	if err != nil {
		logger.Error("[DeactivateWarehouse] get warehouse failed", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if warehouse == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	reservedStock, err := s.warehouseRepo.CheckReservedStockForUpdateTx(ctx, tx, warehouseID)
	if err != nil {
		logger.Error("[DeactivateWarehouse] check reserved stock failed", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if reservedStock > 0 {
		return errors.SetCustomError(constant.ErrWarehouseHasReservedStock)
	}

	if err := s.warehouseRepo.UpdateWarehouseStatusTx(ctx, tx, warehouseID, constant.WarehouseStatusInactive); err != nil {
		logger.Error("[DeactivateWarehouse] update status failed", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[DeactivateWarehouse] commit tx failed", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	logger.Info("[DeactivateWarehouse] warehouse inactive", zap.Uint64("warehouse_id", warehouseID), zap.String("code", warehouse.Code))
	return nil
}

// TransferStock moves available stock of one product between warehouses.
// Reserved stock never moves.
func (s *warehouseAppImpl) TransferStock(ctx context.Context, req *model.TransferStockRequest) error {
	if req.FromWarehouseID == req.ToWarehouseID {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if req.Quantity <= 0 {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[TransferStock] begin tx failed", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	// lock the lower warehouse id first
	firstID, secondID := req.FromWarehouseID, req.ToWarehouseID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}
	first, err := appinventory.LockOrCreateItemTx(ctx, s.warehouseRepo, tx, firstID, req.ProductID)
	if err != nil {
		return err
	}
	second, err := appinventory.LockOrCreateItemTx(ctx, s.warehouseRepo, tx, secondID, req.ProductID)
	if err != nil {
		return err
	}
	source, destination := first, second
	if firstID != req.FromWarehouseID {
		source, destination = second, first
	}

	now := s.now()
	outEvents, err := source.Adjust(-req.Quantity, constant.AdjustReasonTransfer, now)
	if err != nil {
		if stderrors.Is(err, model.ErrAdjustBelowReserved) {
			return errors.SetCustomError(constant.ErrInsufficientStock).WithQuantities(req.Quantity, source.Available())
		}
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	inEvents, err := destination.Adjust(req.Quantity, constant.AdjustReasonTransfer, now)
	if err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	for _, item := range []*model.InventoryItem{source, destination} {
		if err := s.warehouseRepo.UpdateInventoryItemTx(ctx, tx, item); err != nil {
			if stderrors.Is(err, warehouserepo.ErrVersionConflict) {
				return errors.SetCustomError(constant.ErrConcurrentUpdate)
			}
			logger.Error("[TransferStock] update inventory failed", zap.Uint64("item_id", item.ID), zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[TransferStock] commit tx failed", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	rabbitmq.PublishAll(ctx, s.publisher, append(outEvents, inEvents...))
	return nil
}
