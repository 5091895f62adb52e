// Package kernel provides the shared value objects of the shipment domain.
//
//   - UUID: identifiers of aggregates and entities
//   - Email: normalized mailbox addresses identifying principals and parties
//
// Both are immutable and have invalid zero values; build them with their constructors.
package kernel
