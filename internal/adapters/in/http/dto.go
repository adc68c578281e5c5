package http

import (
	"encoding/json"
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

type NewOrderItem struct {
	ProductRef string `json:"productRef"`
	Quantity   int    `json:"quantity"`
}

type NewOrder struct {
	Items         []NewOrderItem `json:"items"`
	PaymentMethod string         `json:"paymentMethod"`
}

type PaymentUpdate struct {
	Status        string  `json:"status"`
	TransactionID *string `json:"transactionId"`
}

// DeliveryUpdate accepts the status under either name; Status wins when both are set.
type DeliveryUpdate struct {
	Status         string `json:"status"`
	DeliveryStatus string `json:"deliveryStatus"`
}

func (u DeliveryUpdate) target() string {
	if u.Status != "" {
		return u.Status
	}
	return u.DeliveryStatus
}

type OrderItem struct {
	ProductRef string      `json:"productRef"`
	Quantity   int         `json:"quantity"`
	UnitPrice  json.Number `json:"unitPrice"`
}

type Order struct {
	ID             string      `json:"id"`
	OwnerID        string      `json:"ownerId"`
	Items          []OrderItem `json:"items"`
	TotalPrice     json.Number `json:"totalPrice"`
	PaymentMethod  string      `json:"paymentMethod"`
	TransactionID  *string     `json:"transactionId,omitempty"`
	PaymentStatus  string      `json:"paymentStatus"`
	DeliveryStatus string      `json:"deliveryStatus"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

type OwnerProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminOrder is an Order from the admin list. Owner is omitted when the user
// service did not return a profile.
type AdminOrder struct {
	Order
	Owner *OwnerProfile `json:"owner,omitempty"`
}

func money(m kernel.Money) json.Number {
	return json.Number(m.Decimal().StringFixed(2))
}

func toOrder(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			ProductRef: item.ProductRef().String(),
			Quantity:   item.Quantity(),
			UnitPrice:  money(item.UnitPrice()),
		})
	}

	return Order{
		ID:             o.ID().String(),
		OwnerID:        o.OwnerID().String(),
		Items:          items,
		TotalPrice:     money(o.TotalPrice()),
		PaymentMethod:  o.PaymentMethod().String(),
		TransactionID:  o.TransactionID(),
		PaymentStatus:  o.PaymentStatus().String(),
		DeliveryStatus: o.DeliveryStatus().String(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

func toOrders(orders []*order.Order) []Order {
	response := make([]Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrder(o))
	}
	return response
}

func toOwnerProfile(p *ports.UserProfile) *OwnerProfile {
	if p == nil {
		return nil
	}
	return &OwnerProfile{ID: p.ID.String(), Name: p.Name, Email: p.Email}
}

func toAdminOrders(rows []queries.ListAllOrdersQueryResponse) []AdminOrder {
	response := make([]AdminOrder, 0, len(rows))
	for _, row := range rows {
		response = append(response, AdminOrder{
			Order: toOrder(row.Order),
			Owner: toOwnerProfile(row.Owner),
		})
	}
	return response
}
