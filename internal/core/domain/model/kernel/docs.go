// Package kernel provides the shared value objects of the storefront domain.
//
// The package includes:
//   - UUID: identifier for orders, owners and domain events
//   - Money: a non-negative, two-decimal amount used for unit prices and totals
//
// Both are immutable. Their zero values are invalid and are rejected by Validate,
// which lets aggregates detect values that bypassed a constructor.
package kernel
