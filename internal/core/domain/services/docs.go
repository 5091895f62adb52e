// Package services provides the domain services of the shipment lifecycle engine:
// rules that need more than one aggregate or sit in front of every mutation.
//
// The package includes:
//   - TrackingCodeGenerator: tracking numbers and expected delivery dates
//   - ValidationPolicy: field-level checks of raw user input
//   - PricingCalculator: the shipping charge
//   - AuthorizationPolicy: who may do what to a shipment
//   - StatusTransitionEngine: authorized, forward-only status changes
package services
