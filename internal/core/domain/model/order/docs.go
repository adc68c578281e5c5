// Package order provides the Order aggregate of the storefront: what was bought,
// how it is paid, and how far delivery has progressed.
//
// The package includes:
//   - Order: the aggregate root owning identity, items, totals and both status axes
//   - Item, ProductRef: immutable order lines priced at checkout
//   - PaymentMethod: how the customer chose to pay
//   - PaymentStatus, DeliveryStatus: the two independent state machines
//   - DeliveryPolicy: the cross-axis rule deciding whether unpaid orders may ship
//   - Event: domain events recorded by the aggregate for the invalidation outbox
//
// Key business rules:
//   - An order has at least one item; quantity >= 1 and unit price >= 0
//   - The total is the sum of quantity x unit price, computed once at creation
//   - Payment: Pending -> Paid | Failed; Paid and Failed are terminal
//   - Delivery: Pending -> Shipped -> Done, forward only
//   - Requesting the current status on either axis is a no-op
//   - Delivery leaves Pending only once payment is Paid, unless the order is
//     cash on delivery and the policy lets such orders ship first
//
// Who may request a transition is not decided here; see the services package.
package order
