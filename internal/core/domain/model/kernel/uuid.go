package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through one of the constructors.
// Validate returns it for the zero value.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object wrapping github.com/google/uuid. It identifies orders,
// their owners and outbox notices.
//
// The zero value is invalid. Build one with NewUUID, UUIDFromString or
// UUIDFromBytes. A UUID is immutable and safe to share between goroutines.
//
// Example:
//
//	id := kernel.NewUUID()
//
//	parsed, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    return err // 400 validation_error at the HTTP edge
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID. Command handlers use it
// for new order ids.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	fmt.Println(orderID) // e.g. "0f8fad5b-d9cb-469f-a165-70867728950e"
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses a UUID received from a client or a token claim.
// It accepts the forms github.com/google/uuid accepts:
//   - "0f8fad5b-d9cb-469f-a165-70867728950e"
//   - "{0f8fad5b-d9cb-469f-a165-70867728950e}"
//   - "urn:uuid:0f8fad5b-d9cb-469f-a165-70867728950e"
//   - "0f8fad5bd9cb469fa16570867728950e"
//
// Malformed input yields an errs.ValueIsInvalidError. The nil UUID yields
// ErrUUIDIsNotConstructed.
//
// Example:
//
//	ownerID, err := kernel.UUIDFromString(claims.UserID)
//	if err != nil {
//	    return actor.Actor{}, err
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("UUID", fmt.Errorf("invalid UUID format: %w", err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes builds a UUID from exactly 16 bytes, as stored by the database adapters.
// A slice of any other length is an error, and so is the nil UUID.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(dto.ID[:])
//	if err != nil {
//	    return nil, err
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// It is the form used in JSON bodies, log attributes and invalidation tags.
//
// Example:
//
//	logger.Info("order created", "order_id", id.String())
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID (an array, not a slice). Persistence
// adapters store it directly in uuid columns.
//
// Example:
//
//	dto := OrderDTO{ID: o.ID().Bytes()}
//	raw := dto.ID[:] // 16 bytes
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs by value.
//
// Example:
//
//	if !o.OwnerID().IsEqual(requester.ID()) {
//	    return errs.NewForbiddenError("read order")
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID. Aggregates call it
// from their setters so a zero id never reaches storage.
//
// Example:
//
//	var id kernel.UUID
//	err := id.Validate() // errors.Is(err, errs.ErrValueIsRequired) == true
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
