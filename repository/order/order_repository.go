package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/commerce-engine/model"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error)
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, lines []model.OrderLine) error
	UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status int) error
	GetOrderDetailTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderDetail, error)
	GetOrderLinesTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderLine, error)
	UpdateOrderPricingTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, pricing *model.OrderPricing) error
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error) {
	q := "INSERT INTO `order` (customer_email, status, subtotal, discount, total, free_shipping, expires_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
	res, err := tx.ExecContext(ctx, q, req.CustomerEmail, req.Status, req.Subtotal, req.Discount, req.Total, req.FreeShipping, req.ExpiresAT)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, lines []model.OrderLine) error {
	q := "INSERT INTO order_item (order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)"
	for _, it := range lines {
		if _, err := tx.ExecContext(ctx, q, orderID, it.ProductID, it.Quantity, it.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status int) error {
	_, err := tx.ExecContext(ctx, "UPDATE `order` SET status = ? WHERE id = ?", status, orderID)
	return err
}

// GetOrderDetailTx locks the order row. It returns nil, nil when the order
// does not exist.
func (r *SQL) GetOrderDetailTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	row := tx.QueryRowxContext(ctx, "SELECT id, customer_email, status, subtotal, discount, total, free_shipping FROM `order` WHERE id = ? FOR UPDATE", orderID)
	if err := row.StructScan(&detail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (r *SQL) GetOrderLinesTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderLine, error) {
	lines := make([]model.OrderLine, 0)
	q := "SELECT product_id, quantity, unit_price FROM order_item WHERE order_id = ? ORDER BY id"
	if err := tx.SelectContext(ctx, &lines, q, orderID); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *SQL) UpdateOrderPricingTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, pricing *model.OrderPricing) error {
	_, err := tx.ExecContext(ctx, "UPDATE `order` SET discount = ?, total = ?, free_shipping = ? WHERE id = ?",
		pricing.Discount, pricing.Total, pricing.FreeShipping, orderID)
	return err
}
