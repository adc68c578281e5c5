package outboxrepo

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/invalidation"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noticeFixture() invalidation.Notice {
	return invalidation.NoticeFor(order.Event{
		ID:         kernel.NewUUID(),
		Name:       order.EventPaymentStatusChanged,
		OrderID:    kernel.NewUUID(),
		OwnerID:    kernel.NewUUID(),
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
}

func TestMapper_TagsRoundTripThroughStringArray(t *testing.T) {
	notice := noticeFixture()

	dto := fromDomain(notice)
	require.Len(t, dto.Tags, len(notice.Tags))
	for i, tag := range notice.Tags {
		assert.Equal(t, tag.String(), dto.Tags[i])
	}

	restored, err := toDomain(dto)
	require.NoError(t, err)
	assert.True(t, notice.ID.IsEqual(restored.ID))
	assert.True(t, notice.OrderID.IsEqual(restored.OrderID))
	assert.Equal(t, notice.Event, restored.Event)
	assert.Equal(t, notice.Tags, restored.Tags)
	assert.True(t, notice.OccurredAt.Equal(restored.OccurredAt))
}

func TestMapper_UnknownTagIsStoredDataError(t *testing.T) {
	dto := fromDomain(noticeFixture())
	dto.Tags = pq.StringArray{"Nonsense"}

	_, err := toDomain(dto)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStoredDataIsInvalid)
	assert.False(t, errs.IsValidationError(err))
}
