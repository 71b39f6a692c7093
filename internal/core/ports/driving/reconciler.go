package driving

import (
	"context"

	"github.com/ucikit/ucictl/internal/core/domain"
)

// Reconciler converges a UCI config toward a declared desired state.
type Reconciler interface {
	// Apply reconciles the store against the spec, issuing the minimal
	// mutation sequence. The returned result carries the command log
	// even when an invocation fails partway.
	Apply(ctx context.Context, spec domain.DesiredSpec) (*domain.Result, error)

	// Plan computes the operations Apply would issue without mutating
	// the store. Evaluating a spec never has side effects.
	Plan(ctx context.Context, spec domain.DesiredSpec) (*domain.Result, error)
}
