// Package domain defines the core entities for ucictl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DesiredSpec: A declared desired state for one UCI section
//   - Section: A live section as observed in the store
//   - Value: A scalar or ordered-list option value
//   - Operation: A single intended store mutation
//   - Result: The outcome of one reconciliation run
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
