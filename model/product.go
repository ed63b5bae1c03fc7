package model

import "github.com/shopspring/decimal"

type ProductDetail struct {
	ID             uint64          `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Description    string          `db:"description" json:"description,omitempty"`
	AvailableStock int64           `db:"available_stock" json:"available_stock"`
	Price          decimal.Decimal `db:"price" json:"price"`
}
