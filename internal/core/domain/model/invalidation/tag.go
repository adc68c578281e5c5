// Package invalidation describes which cached order views become stale after a
// change. Tags are signals to refetch on next read, not carriers of new state.
package invalidation

import (
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// View names a cached list.
type View string

const (
	// ViewMyOrders is one owner's order list. Tags for it carry the owner.
	ViewMyOrders View = "MyOrder"

	// ViewAllOrders is the admin list of every order.
	ViewAllOrders View = "AllOrders"
)

// Tag marks one view as stale.
type Tag struct {
	View  View
	Owner *kernel.UUID
}

// MyOrders returns the tag for ownerID's order list.
func MyOrders(ownerID kernel.UUID) Tag {
	return Tag{View: ViewMyOrders, Owner: &ownerID}
}

// AllOrders returns the tag for the admin order list.
func AllOrders() Tag {
	return Tag{View: ViewAllOrders}
}

// TagsFor returns the tags every change to an order owned by ownerID emits.
func TagsFor(ownerID kernel.UUID) []Tag {
	return []Tag{MyOrders(ownerID), AllOrders()}
}

// ParseTag is the inverse of Tag.String.
func ParseTag(s string) (Tag, error) {
	view, owner, scoped := strings.Cut(s, ":")
	switch {
	case View(view) == ViewAllOrders && !scoped:
		return AllOrders(), nil
	case View(view) == ViewMyOrders && scoped:
		ownerID, err := kernel.UUIDFromString(owner)
		if err != nil {
			return Tag{}, err
		}
		return MyOrders(ownerID), nil
	default:
		return Tag{}, errs.NewValueIsInvalidErrorWithCause("tag", fmt.Errorf("%q is not a known tag", s))
	}
}

// String renders "AllOrders" or "MyOrder:<owner id>".
func (t Tag) String() string {
	if t.Owner == nil {
		return string(t.View)
	}
	return string(t.View) + ":" + t.Owner.String()
}

// VisibleTo reports whether a reads the view the tag refers to. Admins read
// every view; customers only their own list.
func (t Tag) VisibleTo(a actor.Actor) bool {
	if a.IsAdmin() {
		return true
	}
	return t.View == ViewMyOrders && t.Owner != nil && a.Owns(*t.Owner)
}

// Notice is one delivery unit: the tags produced by a single order event.
type Notice struct {
	ID         kernel.UUID
	Event      order.EventName
	OrderID    kernel.UUID
	Tags       []Tag
	OccurredAt time.Time
}

// NoticeFor converts an order event into the notice relayed to caches.
func NoticeFor(e order.Event) Notice {
	return Notice{
		ID:         e.ID,
		Event:      e.Name,
		OrderID:    e.OrderID,
		Tags:       TagsFor(e.OwnerID),
		OccurredAt: e.OccurredAt,
	}
}
