package services

import (
	"context"
	"fmt"

	"github.com/ucikit/ucictl/internal/core/domain"
	"github.com/ucikit/ucictl/internal/core/ports/driven"
)

// Sequencer executes operations against the store strictly in order.
// In dry-run mode invocations are recorded but not executed, so
// evaluating a spec never mutates the store.
type Sequencer struct {
	store  driven.Store
	dryRun bool

	// created is the identity assigned to a section created earlier in
	// this sequence; substituted wherever domain.NewSection appears.
	created string
}

// NewSequencer creates a sequencer for one reconciliation run. It holds
// per-run state and must not be reused across runs.
func NewSequencer(store driven.Store, dryRun bool) *Sequencer {
	return &Sequencer{store: store, dryRun: dryRun}
}

// Run executes the operations in order and returns the human-readable
// command log. Execution is fail-fast: the first invocation failure
// aborts the remainder, and the log reflects the commands issued up to
// and including the failed one.
func (s *Sequencer) Run(ctx context.Context, ops []domain.Operation) ([]string, error) {
	log := make([]string, 0, len(ops))
	for _, op := range ops {
		resolved, err := s.resolve(op)
		if err != nil {
			return log, err
		}
		log = append(log, resolved.Command())
		if s.dryRun {
			continue
		}
		if err := s.execute(ctx, resolved); err != nil {
			return log, err
		}
	}
	return log, nil
}

// resolve substitutes the created-section placeholder. In dry-run no
// store identity exists, so the log shows the store's last-of-type
// selector for the section the create would have added.
func (s *Sequencer) resolve(op domain.Operation) (domain.Operation, error) {
	if op.Kind == domain.OpCreateSection && op.Section == "" {
		if s.dryRun {
			s.created = fmt.Sprintf("@%s[-1]", op.Value)
		}
		return op, nil
	}
	if op.Section != domain.NewSection {
		return op, nil
	}
	if s.created == "" {
		return op, fmt.Errorf("%w: operation addresses a section that was never created", domain.ErrValidation)
	}
	op.Section = s.created
	return op, nil
}

// execute performs one store invocation.
func (s *Sequencer) execute(ctx context.Context, op domain.Operation) error {
	switch op.Kind {
	case domain.OpCreateSection:
		id, err := s.store.AddSection(ctx, op.Config, op.Value, op.Section)
		if err != nil {
			return err
		}
		if op.Section == "" {
			s.created = id
		}
		return nil
	case domain.OpSetOption:
		return s.store.Set(ctx, op.Config, op.Section, op.Option, op.Value)
	case domain.OpAddListEntry:
		return s.store.AddList(ctx, op.Config, op.Section, op.Option, op.Value)
	case domain.OpRemoveListEntry:
		return s.store.DelList(ctx, op.Config, op.Section, op.Option, op.Value)
	case domain.OpDeleteOption:
		return s.store.DeleteOption(ctx, op.Config, op.Section, op.Option)
	case domain.OpDeleteSection:
		return s.store.DeleteSection(ctx, op.Config, op.Section)
	case domain.OpReorder:
		return s.store.Reorder(ctx, op.Config, op.Section, op.Position)
	case domain.OpCommit:
		return s.store.Commit(ctx, op.Config)
	}
	return fmt.Errorf("%w: unknown operation kind %q", domain.ErrValidation, op.Kind)
}
