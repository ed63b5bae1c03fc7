package warehouse

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/muhammadheryan/commerce-engine/model"
	txrepo "github.com/muhammadheryan/commerce-engine/repository/tx"
)

var (
	// ErrVersionConflict means the inventory row changed since it was read.
	ErrVersionConflict      = errors.New("inventory item version conflict")
	ErrDuplicateReservation = errors.New("reservation already exists for order and item")
)

type WarehouseRepository interface {
	ActiveWarehouses(ctx context.Context) ([]model.Warehouse, error)
	GetWarehouseByID(ctx context.Context, warehouseID uint64) (*model.Warehouse, error)
	UpdateWarehouseStatus(ctx context.Context, warehouseID uint64, status constant.WarehouseStatus) error
	InventoryForProducts(ctx context.Context, productIDs []uint64) (map[uint64][]model.InventoryItem, error)

	GetWarehouseForUpdateTx(ctx context.Context, tx *sqlx.Tx, warehouseID uint64) (*model.Warehouse, error)
	UpdateWarehouseStatusTx(ctx context.Context, tx *sqlx.Tx, warehouseID uint64, status constant.WarehouseStatus) error
	CheckReservedStockForUpdateTx(ctx context.Context, tx *sqlx.Tx, warehouseID uint64) (int64, error)
	GetInventoryItemForUpdateTx(ctx context.Context, tx *sqlx.Tx, itemID uint64) (*model.InventoryItem, error)
	GetInventoryForUpdateTx(ctx context.Context, tx *sqlx.Tx, warehouseID, productID uint64) (*model.InventoryItem, error)
	CreateInventoryItemTx(ctx context.Context, tx *sqlx.Tx, item *model.InventoryItem) (uint64, error)
	UpdateInventoryItemTx(ctx context.Context, tx *sqlx.Tx, item *model.InventoryItem) error
	InsertReservationTx(ctx context.Context, tx *sqlx.Tx, reservation *model.Reservation) error
	GetReservationsByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.Reservation, error)
	DeleteReservationTx(ctx context.Context, tx *sqlx.Tx, reservationID uint64) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewWarehouseRepository(conn *sqlx.DB) WarehouseRepository {
	return &SQL{conn: conn}
}

const (
	warehouseColumns = `id, code, name, city, state, status, priority`
	inventoryColumns = `id, warehouse_id, product_id, quantity_on_hand, quantity_reserved, reorder_point,
reorder_quantity, last_restocked_at, version`

	updateInventoryItem = `UPDATE inventory_item
SET quantity_on_hand = ?, quantity_reserved = ?, last_restocked_at = ?, version = version + 1
WHERE id = ? AND version = ?`

	insertInventoryItem = `INSERT INTO inventory_item (warehouse_id, product_id, quantity_on_hand, quantity_reserved,
reorder_point, reorder_quantity, last_restocked_at, version)
VALUES (:warehouse_id, :product_id, :quantity_on_hand, :quantity_reserved, :reorder_point, :reorder_quantity,
:last_restocked_at, 0)`

	insertReservation = `INSERT INTO stock_reservation (order_id, inventory_item_id, warehouse_id, product_id, quantity, expires_at)
VALUES (:order_id, :inventory_item_id, :warehouse_id, :product_id, :quantity, :expires_at)`
)

func (r *SQL) ActiveWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	warehouses := make([]model.Warehouse, 0)
	q := "SELECT " + warehouseColumns + " FROM warehouse WHERE status = ? ORDER BY priority, id"
	if err := r.conn.SelectContext(ctx, &warehouses, q, constant.WarehouseStatusActive); err != nil {
		return nil, err
	}
	return warehouses, nil
}

// GetWarehouseByID returns nil, nil when the warehouse does not exist.
func (r *SQL) GetWarehouseByID(ctx context.Context, warehouseID uint64) (*model.Warehouse, error) {
	var w model.Warehouse
	if err := r.conn.GetContext(ctx, &w, "SELECT "+warehouseColumns+" FROM warehouse WHERE id = ?", warehouseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *SQL) UpdateWarehouseStatus(ctx context.Context, warehouseID uint64, status constant.WarehouseStatus) error {
	res, err := r.conn.ExecContext(ctx, "UPDATE warehouse SET status = ? WHERE id = ?", status, warehouseID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// MySQL reports zero affected rows when the status is unchanged.
		w, err := r.GetWarehouseByID(ctx, warehouseID)
		if err != nil {
			return err
		}
		if w == nil {
			return sql.ErrNoRows
		}
	}
	return nil
}

// GetWarehouseForUpdateTx locks the warehouse row. It returns nil, nil when
// the warehouse does not exist.
func (r *SQL) GetWarehouseForUpdateTx(ctx context.Context, tx *sqlx.Tx, warehouseID uint64) (*model.Warehouse, error) {
	var w model.Warehouse
	if err := tx.GetContext(ctx, &w, "SELECT "+warehouseColumns+" FROM warehouse WHERE id = ? FOR UPDATE", warehouseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *SQL) UpdateWarehouseStatusTx(ctx context.Context, tx *sqlx.Tx, warehouseID uint64, status constant.WarehouseStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE warehouse SET status = ? WHERE id = ?", status, warehouseID)
	return err
}

// CheckReservedStockForUpdateTx sums the reserved stock of a warehouse and
// locks its inventory rows, so no reservation can land before tx ends.
func (r *SQL) CheckReservedStockForUpdateTx(ctx context.Context, tx *sqlx.Tx, warehouseID uint64) (int64, error) {
	reserved := make([]int64, 0)
	q := "SELECT quantity_reserved FROM inventory_item WHERE warehouse_id = ? FOR UPDATE"
	if err := tx.SelectContext(ctx, &reserved, q, warehouseID); err != nil {
		return 0, err
	}
	var total int64
	for _, qty := range reserved {
		total += qty
	}
	return total, nil
}

func (r *SQL) InventoryForProducts(ctx context.Context, productIDs []uint64) (map[uint64][]model.InventoryItem, error) {
	byProduct := make(map[uint64][]model.InventoryItem, len(productIDs))
	if len(productIDs) == 0 {
		return byProduct, nil
	}

	query, args, err := sqlx.In("SELECT "+inventoryColumns+" FROM inventory_item WHERE product_id IN (?) ORDER BY id", productIDs)
	if err != nil {
		return nil, err
	}
	items := make([]model.InventoryItem, 0)
	if err := r.conn.SelectContext(ctx, &items, r.conn.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, item := range items {
		byProduct[item.ProductID] = append(byProduct[item.ProductID], item)
	}
	return byProduct, nil
}

// GetInventoryItemForUpdateTx locks the row until tx ends. It returns nil, nil
// when the item does not exist.
func (r *SQL) GetInventoryItemForUpdateTx(ctx context.Context, tx *sqlx.Tx, itemID uint64) (*model.InventoryItem, error) {
	return getInventory(ctx, tx, "SELECT "+inventoryColumns+" FROM inventory_item WHERE id = ? FOR UPDATE", itemID)
}

func (r *SQL) GetInventoryForUpdateTx(ctx context.Context, tx *sqlx.Tx, warehouseID, productID uint64) (*model.InventoryItem, error) {
	return getInventory(ctx, tx, "SELECT "+inventoryColumns+" FROM inventory_item WHERE warehouse_id = ? AND product_id = ? FOR UPDATE", warehouseID, productID)
}

func getInventory(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := tx.GetContext(ctx, &item, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *SQL) CreateInventoryItemTx(ctx context.Context, tx *sqlx.Tx, item *model.InventoryItem) (uint64, error) {
	res, err := tx.NamedExecContext(ctx, insertInventoryItem, item)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	item.ID = uint64(id)
	item.Version = 0
	return uint64(id), nil
}

// UpdateInventoryItemTx writes the quantities of item if its version is
// still current and bumps item.Version on success.
func (r *SQL) UpdateInventoryItemTx(ctx context.Context, tx *sqlx.Tx, item *model.InventoryItem) error {
	res, err := tx.ExecContext(ctx, updateInventoryItem, item.QuantityOnHand, item.QuantityReserved, item.LastRestockedAt, item.ID, item.Version)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected != 1 {
		return ErrVersionConflict
	}
	item.Version++
	return nil
}

func (r *SQL) InsertReservationTx(ctx context.Context, tx *sqlx.Tx, reservation *model.Reservation) error {
	res, err := tx.NamedExecContext(ctx, insertReservation, reservation)
	if err != nil {
		if txrepo.IsDuplicateKey(err) {
			return ErrDuplicateReservation
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	reservation.ID = uint64(id)
	return nil
}

func (r *SQL) GetReservationsByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.Reservation, error) {
	reservations := make([]model.Reservation, 0)
	q := "SELECT id, order_id, inventory_item_id, warehouse_id, product_id, quantity, expires_at FROM stock_reservation WHERE order_id = ? ORDER BY id FOR UPDATE"
	if err := tx.SelectContext(ctx, &reservations, q, orderID); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *SQL) DeleteReservationTx(ctx context.Context, tx *sqlx.Tx, reservationID uint64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM stock_reservation WHERE id = ?", reservationID)
	return err
}
