package outboxrepo

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/invalidation"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores notices as pending.
func (r *GormOutboxRepository) Add(ctx context.Context, notices ...invalidation.Notice) error {
	if len(notices) == 0 {
		return nil
	}

	dtos := make([]NoticeDTO, 0, len(notices))
	for _, n := range notices {
		dtos = append(dtos, fromDomain(n))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending locks up to limit unsent rows, oldest first. Concurrent relays
// skip each other's rows instead of waiting on them.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]invalidation.Notice, error) {
	var dtos []NoticeDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	notices := make([]invalidation.Notice, 0, len(dtos))
	for _, dto := range dtos {
		n, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		notices = append(notices, n)
	}
	return notices, nil
}

func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []kernel.UUID, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).
		Model(&NoticeDTO{}).
		Where("id IN ?", raw).
		Update("sent_at", sentAt.UTC()).Error
}

func (r *GormOutboxRepository) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("sent_at IS NOT NULL AND sent_at < ?", before.UTC()).
		Delete(&NoticeDTO{})
	return result.RowsAffected, result.Error
}

func fromDomain(n invalidation.Notice) NoticeDTO {
	tags := make(pq.StringArray, 0, len(n.Tags))
	for _, t := range n.Tags {
		tags = append(tags, t.String())
	}
	return NoticeDTO{
		ID:         n.ID.Bytes(),
		Event:      string(n.Event),
		OrderID:    n.OrderID.Bytes(),
		Tags:       tags,
		OccurredAt: n.OccurredAt.UTC(),
	}
}

// toDomain reports unreadable rows as errs.ErrStoredDataIsInvalid.
func toDomain(dto NoticeDTO) (invalidation.Notice, error) {
	notice, err := restore(dto)
	if err != nil {
		return invalidation.Notice{}, fmt.Errorf("%w: outbox notice %s: %v", errs.ErrStoredDataIsInvalid, dto.ID, err)
	}
	return notice, nil
}

func restore(dto NoticeDTO) (invalidation.Notice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return invalidation.Notice{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return invalidation.Notice{}, err
	}

	tags := make([]invalidation.Tag, 0, len(dto.Tags))
	for _, raw := range dto.Tags {
		tag, tagErr := invalidation.ParseTag(raw)
		if tagErr != nil {
			return invalidation.Notice{}, tagErr
		}
		tags = append(tags, tag)
	}

	return invalidation.Notice{
		ID:         id,
		Event:      order.EventName(dto.Event),
		OrderID:    orderID,
		Tags:       tags,
		OccurredAt: dto.OccurredAt,
	}, nil
}
