package postgres

import (
	"fmt"

	"storefront/internal/adapters/out/postgres/catalogrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/outboxrepo"
	"storefront/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or extends every table the service reads or writes.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&outboxrepo.NoticeDTO{},
		&catalogrepo.ProductDTO{},
		&userrepo.UserDTO{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
