// Package driving defines the interfaces through which callers drive
// the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI adapter (or any other host) depends on these interfaces, and
// core services implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
