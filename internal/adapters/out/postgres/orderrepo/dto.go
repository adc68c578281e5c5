// Package orderrepo persists the order aggregate. An order is stored as one row
// in orders plus its lines in order_items, kept in checkout order by position.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table row. Status columns hold the enum values of the
// order package; version is the optimistic concurrency token.
type OrderDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items          []OrderItemDTO  `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod  string          `gorm:"type:varchar(32);not null"`
	TransactionID  *string         `gorm:"type:varchar(255)"`
	PaymentStatus  int             `gorm:"type:smallint;not null"`
	DeliveryStatus int             `gorm:"type:smallint;not null"`
	CreatedAt      time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime:false"`
	Version        int             `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order.
type OrderItemDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position   int             `gorm:"primaryKey;autoIncrement:false"`
	ProductRef string          `gorm:"type:varchar(128);not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}
