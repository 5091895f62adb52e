// Package shipment provides the Shipment aggregate root and its value objects.
//
// The package includes:
//   - Shipment: identity, parties, parcel, commerce, lifecycle and feedback of one parcel
//   - Status: the fixed forward-only order of lifecycle statuses
//   - TrackingNumber, Parcel, Payment, HistoryEntry, Feedback: value objects
//   - Comment: one entry of the discussion thread of a shipment
//   - Domain events raised by the aggregate and published after commit
//
// Key business rules:
//   - A shipment starts in Dispatched with exactly one history entry by its sender
//   - Status only moves forward: Dispatched -> In Transit -> Delivered -> Returned -> Cancelled,
//     any later status may be targeted directly
//   - Feedback is written once, while Delivered
//   - Who may perform a mutation is decided by the authorization policy, not here
package shipment
