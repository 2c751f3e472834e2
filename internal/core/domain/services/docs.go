// Package services provides domain services for the bib delivery system that
// don't naturally belong to a single aggregate root.
//
// The package includes:
//   - PricingEstimator: serviceability checks, distance estimation and fee computation
//   - CodeGenerator: generation of pickup PIN and delivery OTP security codes
//
// Both services are stateless. Distance estimation and code generation are
// pluggable through small interfaces so command handlers can be tested with
// deterministic implementations.
package services
