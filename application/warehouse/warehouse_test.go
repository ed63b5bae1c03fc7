package warehouse_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	appwarehouse "github.com/muhammadheryan/commerce-engine/application/warehouse"
	"github.com/muhammadheryan/commerce-engine/constant"
	txmocks "github.com/muhammadheryan/commerce-engine/mocks/repository/tx"
	warehousemocks "github.com/muhammadheryan/commerce-engine/mocks/repository/warehouse"
	rabbitmqmocks "github.com/muhammadheryan/commerce-engine/mocks/thirdparty/rabbitmq"
	"github.com/muhammadheryan/commerce-engine/model"
	warehouserepo "github.com/muhammadheryan/commerce-engine/repository/warehouse"
	cerr "github.com/muhammadheryan/commerce-engine/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fields struct {
	txRepo        *txmocks.TxRepository
	warehouseRepo *warehousemocks.WarehouseRepository
	publisher     *rabbitmqmocks.EventPublisher
}

func newFields(t *testing.T) fields {
	return fields{
		txRepo:        txmocks.NewTxRepository(t),
		warehouseRepo: warehousemocks.NewWarehouseRepository(t),
		publisher:     rabbitmqmocks.NewEventPublisher(t),
	}
}

func (f fields) app() appwarehouse.WarehouseApp {
	return appwarehouse.NewWarehouseApp(f.txRepo, f.warehouseRepo, f.publisher)
}

func checkErr(t *testing.T, err error, wantErr bool, errCode constant.ErrorType) {
	t.Helper()
	if !wantErr {
		assert.NoError(t, err)
		return
	}
	require.Error(t, err)
	var ce cerr.CustomError
	require.True(t, errors.As(err, &ce), "expected CustomError, got %T", err)
	assert.Equal(t, constant.ErrorTypeCode[errCode], ce.ErrorCode())
}

func TestWarehouseApp_ActivateWarehouse(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success",
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetWarehouseByID", mock.Anything, uint64(1)).Return(&model.Warehouse{ID: 1, Code: "JKT"}, nil).Once()
				f.warehouseRepo.On("UpdateWarehouseStatus", mock.Anything, uint64(1), constant.WarehouseStatusActive).Return(nil).Once()
			},
		},
		{
			name: "error: not found",
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetWarehouseByID", mock.Anything, uint64(1)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: update reports missing row",
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetWarehouseByID", mock.Anything, uint64(1)).Return(&model.Warehouse{ID: 1}, nil).Once()
				f.warehouseRepo.On("UpdateWarehouseStatus", mock.Anything, uint64(1), constant.WarehouseStatusActive).Return(sql.ErrNoRows).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: lookup fails",
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetWarehouseByID", mock.Anything, uint64(1)).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)
			checkErr(t, f.app().ActivateWarehouse(context.Background(), 1), tt.wantErr, tt.errCode)
		})
	}
}

func TestWarehouseApp_DeactivateWarehouse(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(f fields, tx *sqlx.Tx)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success",
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.warehouseRepo.On("GetWarehouseForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.Warehouse{ID: 1}, nil).Once()
				f.warehouseRepo.On("CheckReservedStockForUpdateTx", mock.Anything, tx, uint64(1)).Return(int64(0), nil).Once()
				f.warehouseRepo.On("UpdateWarehouseStatusTx", mock.Anything, tx, uint64(1), constant.WarehouseStatusInactive).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
			},
		},
		{
			name: "error: reserved stock outstanding",
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.warehouseRepo.On("GetWarehouseForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.Warehouse{ID: 1}, nil).Once()
				f.warehouseRepo.On("CheckReservedStockForUpdateTx", mock.Anything, tx, uint64(1)).Return(int64(4), nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrWarehouseHasReservedStock,
		},
		{
			name: "error: not found",
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.warehouseRepo.On("GetWarehouseForUpdateTx", mock.Anything, tx, uint64(1)).Return(nil, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: status update rolls back",
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.warehouseRepo.On("GetWarehouseForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.Warehouse{ID: 1}, nil).Once()
				f.warehouseRepo.On("CheckReservedStockForUpdateTx", mock.Anything, tx, uint64(1)).Return(int64(0), nil).Once()
				f.warehouseRepo.On("UpdateWarehouseStatusTx", mock.Anything, tx, uint64(1), constant.WarehouseStatusInactive).Return(errors.New("db down")).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f, &sqlx.Tx{})
			checkErr(t, f.app().DeactivateWarehouse(context.Background(), 1), tt.wantErr, tt.errCode)
		})
	}
}

func TestWarehouseApp_TransferStock(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.TransferStockRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: lower warehouse locked first",
			req:  &model.TransferStockRequest{FromWarehouseID: 2, ToWarehouseID: 1, ProductID: 10, Quantity: 4},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				first := f.warehouseRepo.On("GetInventoryForUpdateTx", mock.Anything, tx, uint64(1), uint64(10)).
					Return(&model.InventoryItem{ID: 100, WarehouseID: 1, ProductID: 10, QuantityOnHand: 1}, nil).Once()
				f.warehouseRepo.On("GetInventoryForUpdateTx", mock.Anything, tx, uint64(2), uint64(10)).
					Return(&model.InventoryItem{ID: 200, WarehouseID: 2, ProductID: 10, QuantityOnHand: 10, QuantityReserved: 2}, nil).Once().
					NotBefore(first)
				f.warehouseRepo.On("UpdateInventoryItemTx", mock.Anything, tx, mock.MatchedBy(func(i *model.InventoryItem) bool {
					return i.ID == 200 && i.QuantityOnHand == 6
				})).Return(nil).Once()
				f.warehouseRepo.On("UpdateInventoryItemTx", mock.Anything, tx, mock.MatchedBy(func(i *model.InventoryItem) bool {
					return i.ID == 100 && i.QuantityOnHand == 5
				})).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e model.Event) bool {
					adjusted, ok := e.(model.StockAdjusted)
					return ok && adjusted.Reason == constant.AdjustReasonTransfer
				})).Return(nil).Twice()
			},
		},
		{
			name: "success: destination row created on first transfer",
			req:  &model.TransferStockRequest{FromWarehouseID: 1, ToWarehouseID: 3, ProductID: 10, Quantity: 2},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.warehouseRepo.On("GetInventoryForUpdateTx", mock.Anything, tx, uint64(1), uint64(10)).
					Return(&model.InventoryItem{ID: 100, WarehouseID: 1, ProductID: 10, QuantityOnHand: 9}, nil).Once()
				f.warehouseRepo.On("GetInventoryForUpdateTx", mock.Anything, tx, uint64(3), uint64(10)).Return(nil, nil).Once()
				f.warehouseRepo.On("GetWarehouseByID", mock.Anything, uint64(3)).Return(&model.Warehouse{ID: 3}, nil).Once()
				f.warehouseRepo.On("CreateInventoryItemTx", mock.Anything, tx, mock.Anything).Return(uint64(300), nil).Once()
				f.warehouseRepo.On("UpdateInventoryItemTx", mock.Anything, tx, mock.Anything).Return(nil).Twice()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Twice()
			},
		},
		{
			name: "error: reserved stock cannot move",
			req:  &model.TransferStockRequest{FromWarehouseID: 1, ToWarehouseID: 2, ProductID: 10, Quantity: 5},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.warehouseRepo.On("GetInventoryForUpdateTx", mock.Anything, tx, uint64(1), uint64(10)).
					Return(&model.InventoryItem{ID: 100, WarehouseID: 1, ProductID: 10, QuantityOnHand: 8, QuantityReserved: 4}, nil).Once()
				f.warehouseRepo.On("GetInventoryForUpdateTx", mock.Anything, tx, uint64(2), uint64(10)).
					Return(&model.InventoryItem{ID: 200, WarehouseID: 2, ProductID: 10}, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
		{
			name: "error: concurrent update",
			req:  &model.TransferStockRequest{FromWarehouseID: 1, ToWarehouseID: 2, ProductID: 10, Quantity: 1},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.warehouseRepo.On("GetInventoryForUpdateTx", mock.Anything, tx, uint64(1), uint64(10)).
					Return(&model.InventoryItem{ID: 100, WarehouseID: 1, ProductID: 10, QuantityOnHand: 8}, nil).Once()
				f.warehouseRepo.On("GetInventoryForUpdateTx", mock.Anything, tx, uint64(2), uint64(10)).
					Return(&model.InventoryItem{ID: 200, WarehouseID: 2, ProductID: 10}, nil).Once()
				f.warehouseRepo.On("UpdateInventoryItemTx", mock.Anything, tx, mock.Anything).Return(warehouserepo.ErrVersionConflict).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrConcurrentUpdate,
		},
		{
			name:    "error: same warehouse",
			req:     &model.TransferStockRequest{FromWarehouseID: 1, ToWarehouseID: 1, ProductID: 10, Quantity: 1},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:    "error: non-positive quantity",
			req:     &model.TransferStockRequest{FromWarehouseID: 1, ToWarehouseID: 2, ProductID: 10},
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
			checkErr(t, f.app().TransferStock(context.Background(), tt.req), tt.wantErr, tt.errCode)
		})
	}
}
