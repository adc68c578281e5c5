// Package services provides domain services that combine the Order aggregate
// with the actor performing an operation.
//
// The package includes:
//   - OrderAccessPolicy: who may read, list and change orders
//   - StatusTransitioner: the status transition engine, applying authorized
//     payment and delivery changes under the configured DeliveryPolicy
//
// Neither service performs I/O; command and query handlers load and persist.
package services
