// Package services implements the driving port interfaces.
// Services contain the reconciliation logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no external dependencies beyond the ports;
// the engine makes every decision from observed store state and the
// desired spec, and a thin sequencer performs the actual invocations.
package services
