package catalogrepo

import (
	"context"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductCatalog implements ports.ProductCatalog using GORM.
type GormProductCatalog struct {
	db *gorm.DB
}

func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// Prices returns the current price of each known ref.
func (c *GormProductCatalog) Prices(ctx context.Context, refs []order.ProductRef) (map[order.ProductRef]kernel.Money, error) {
	prices := make(map[order.ProductRef]kernel.Money, len(refs))
	if len(refs) == 0 {
		return prices, nil
	}

	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		keys = append(keys, ref.String())
	}

	var dtos []ProductDTO
	if err := c.db.WithContext(ctx).Where("ref IN ?", keys).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		price, err := priceOf(dto)
		if err != nil {
			return nil, err
		}
		prices[order.ProductRef(dto.Ref)] = price
	}
	return prices, nil
}

// priceOf rejects catalog prices an order cannot carry. The catalog row is at
// fault, so the error is errs.ErrStoredDataIsInvalid rather than a validation error.
func priceOf(dto ProductDTO) (kernel.Money, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return kernel.Money{}, fmt.Errorf("%w: product %s: %v", errs.ErrStoredDataIsInvalid, dto.Ref, err)
	}
	return price, nil
}
