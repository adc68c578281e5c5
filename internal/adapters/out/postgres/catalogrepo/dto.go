// Package catalogrepo reads unit prices from the product catalog's products table.
package catalogrepo

import (
	"github.com/shopspring/decimal"
)

// ProductDTO is a products row. The catalog service owns the table; this package
// only reads it.
type ProductDTO struct {
	Ref   string          `gorm:"type:varchar(128);primaryKey"`
	Name  string          `gorm:"type:varchar(255);not null"`
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}
