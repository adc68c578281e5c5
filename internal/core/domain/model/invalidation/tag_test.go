package invalidation_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/invalidation"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsFor(t *testing.T) {
	ownerID := kernel.NewUUID()

	tags := invalidation.TagsFor(ownerID)

	require.Len(t, tags, 2)
	assert.Equal(t, "MyOrder:"+ownerID.String(), tags[0].String())
	assert.Equal(t, "AllOrders", tags[1].String())
}

func TestParseTag(t *testing.T) {
	ownerID := kernel.NewUUID()

	t.Run("should round trip", func(t *testing.T) {
		for _, tag := range invalidation.TagsFor(ownerID) {
			parsed, err := invalidation.ParseTag(tag.String())

			require.NoError(t, err)
			assert.Equal(t, tag.String(), parsed.String())
		}
	})

	t.Run("should reject unknown or malformed tags", func(t *testing.T) {
		for _, s := range []string{"", "MyOrder", "AllOrders:" + ownerID.String(), "MyOrder:nope", "Reviews"} {
			_, err := invalidation.ParseTag(s)

			require.Error(t, err, s)
		}
	})
}

func TestTag_VisibleTo(t *testing.T) {
	ownerID := kernel.NewUUID()
	owner, _ := actor.NewActor(ownerID, false)
	stranger, _ := actor.NewActor(kernel.NewUUID(), false)
	admin, _ := actor.NewActor(kernel.NewUUID(), true)

	mine := invalidation.MyOrders(ownerID)
	all := invalidation.AllOrders()

	assert.True(t, mine.VisibleTo(owner))
	assert.False(t, mine.VisibleTo(stranger))
	assert.True(t, mine.VisibleTo(admin))

	assert.False(t, all.VisibleTo(owner))
	assert.True(t, all.VisibleTo(admin))
}

func TestNoticeFor(t *testing.T) {
	event := order.Event{
		ID:         kernel.NewUUID(),
		Name:       order.EventPaymentStatusChanged,
		OrderID:    kernel.NewUUID(),
		OwnerID:    kernel.NewUUID(),
		OccurredAt: time.Now(),
	}

	notice := invalidation.NoticeFor(event)

	assert.True(t, notice.ID.IsEqual(event.ID))
	assert.Equal(t, event.Name, notice.Event)
	assert.Len(t, notice.Tags, 2)
	assert.Equal(t, invalidation.ViewMyOrders, notice.Tags[0].View)
	assert.True(t, notice.Tags[0].Owner.IsEqual(event.OwnerID))
}
