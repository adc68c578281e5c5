package orderrepo

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	dto := OrderDTO{
		ID:             aggregate.ID().Bytes(),
		OwnerID:        aggregate.OwnerID().Bytes(),
		Items:          make([]OrderItemDTO, 0, len(items)),
		TotalPrice:     aggregate.TotalPrice().Decimal(),
		PaymentMethod:  aggregate.PaymentMethod().String(),
		TransactionID:  aggregate.TransactionID(),
		PaymentStatus:  int(aggregate.PaymentStatus()),
		DeliveryStatus: int(aggregate.DeliveryStatus()),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
		Version:        aggregate.Version(),
	}

	for i, item := range items {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:    dto.ID,
			Position:   i,
			ProductRef: item.ProductRef().String(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Decimal(),
		})
	}

	return dto
}

// toDomain reports rows that break the aggregate's rules as
// errs.ErrStoredDataIsInvalid, never as a validation error.
func toDomain(dto OrderDTO) (*order.Order, error) {
	restored, err := restore(dto)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s: %v", errs.ErrStoredDataIsInvalid, dto.ID, err)
	}
	return restored, nil
}

func restore(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, fmt.Errorf("item %d: %w", itemDTO.Position, priceErr)
		}
		item, itemErr := order.NewItem(order.ProductRef(itemDTO.ProductRef), itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, fmt.Errorf("item %d: %w", itemDTO.Position, itemErr)
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	method, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:             id,
		OwnerID:        ownerID,
		Items:          items,
		TotalPrice:     total,
		PaymentMethod:  method,
		TransactionID:  dto.TransactionID,
		PaymentStatus:  order.PaymentStatus(dto.PaymentStatus),
		DeliveryStatus: order.DeliveryStatus(dto.DeliveryStatus),
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
		Version:        dto.Version,
	})
}
