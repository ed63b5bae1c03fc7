package product

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/commerce-engine/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []uint64) ([]model.ProductDetail, error)
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

// Available stock only counts active warehouses, matching what allocation
// can draw from.
const getProductsByIDs = `SELECT p.id, p.name, p.description, p.price,
COALESCE(SUM(CASE WHEN w.id IS NOT NULL THEN i.quantity_on_hand - i.quantity_reserved ELSE 0 END), 0) AS available_stock
FROM product p
LEFT JOIN inventory_item i ON i.product_id = p.id
LEFT JOIN warehouse w ON w.id = i.warehouse_id AND w.status = 1
WHERE p.id IN (?)
GROUP BY p.id, p.name, p.description, p.price`

// GetByIDs returns the products that exist among ids. Callers detect
// missing products by comparing lengths.
func (s *SQL) GetByIDs(ctx context.Context, ids []uint64) ([]model.ProductDetail, error) {
	details := make([]model.ProductDetail, 0, len(ids))
	if len(ids) == 0 {
		return details, nil
	}
	query, args, err := sqlx.In(getProductsByIDs, ids)
	if err != nil {
		return nil, fmt.Errorf("build product query: %w", err)
	}
	if err := s.conn.SelectContext(ctx, &details, s.conn.Rebind(query), args...); err != nil {
		return nil, err
	}
	return details, nil
}
