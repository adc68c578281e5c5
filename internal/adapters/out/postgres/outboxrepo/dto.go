// Package outboxrepo stores invalidation notices in the same database
// transaction as the order change that produced them.
package outboxrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// NoticeDTO is one invalidation_outbox row. SentAt stays NULL until the relay
// has published the notice.
type NoticeDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Event      string         `gorm:"type:varchar(64);not null"`
	OrderID    uuid.UUID      `gorm:"type:uuid;not null"`
	Tags       pq.StringArray `gorm:"type:text[];not null"`
	OccurredAt time.Time      `gorm:"not null;index"`
	SentAt     *time.Time     `gorm:"index"`
}

func (NoticeDTO) TableName() string {
	return "invalidation_outbox"
}
