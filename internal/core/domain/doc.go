// Package domain defines the core business entities for Compass.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - IngestedDocument: A submitted unit of text content
//   - ProcessedInsight: The classifier's verdict on one document
//   - Alert: A notification derived from an alert-worthy insight
//   - DataStore: The aggregate persisted as a single unit
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
