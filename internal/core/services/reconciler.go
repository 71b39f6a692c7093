package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ucikit/ucictl/internal/core/domain"
	"github.com/ucikit/ucictl/internal/core/ports/driven"
	"github.com/ucikit/ucictl/internal/core/ports/driving"
)

// Ensure ReconcilerService implements the interface.
var _ driving.Reconciler = (*ReconcilerService)(nil)

// ReconcilerService drives the reconciliation state machine: observe
// the ledger, locate the target section, branch on (state, found),
// sequence the resulting operations, observe again, then commit if
// requested.
type ReconcilerService struct {
	store              driven.Store
	history            driven.HistoryStore
	commitOnChangeOnly bool
}

// ReconcilerOption configures a ReconcilerService.
type ReconcilerOption func(*ReconcilerService)

// WithHistory records every run in the given journal.
func WithHistory(h driven.HistoryStore) ReconcilerOption {
	return func(r *ReconcilerService) { r.history = h }
}

// WithCommitOnChangeOnly suppresses the commit invocation when no
// operation was sequenced. The default matches the original contract:
// commit executes whenever requested, independent of changed.
func WithCommitOnChangeOnly() ReconcilerOption {
	return func(r *ReconcilerService) { r.commitOnChangeOnly = true }
}

// NewReconciler creates a reconciler backed by the given store.
func NewReconciler(store driven.Store, opts ...ReconcilerOption) *ReconcilerService {
	r := &ReconcilerService{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply reconciles the store against the spec.
func (r *ReconcilerService) Apply(ctx context.Context, spec domain.DesiredSpec) (*domain.Result, error) {
	return r.run(ctx, spec, false)
}

// Plan computes the operations Apply would issue without mutating the
// store.
func (r *ReconcilerService) Plan(ctx context.Context, spec domain.DesiredSpec) (*domain.Result, error) {
	return r.run(ctx, spec, true)
}

// run executes the state machine for one spec. All accumulated state
// (ledgers, command log) lives in the per-run result; nothing is shared
// across invocations.
func (r *ReconcilerService) run(ctx context.Context, spec domain.DesiredSpec, dryRun bool) (*domain.Result, error) {
	startedAt := time.Now()

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	result := &domain.Result{
		RunID:  uuid.New().String(),
		Config: spec.Config,
		DryRun: dryRun,
	}

	// Observing(before): a ledger read failure is fatal for the run.
	before, err := r.store.Changes(ctx, spec.Config)
	if err != nil {
		return result, r.finish(ctx, &spec, result, startedAt, fmt.Errorf("reading change ledger: %w", err))
	}
	result.ChangesBefore = before

	sections, err := r.store.Sections(ctx, spec.Config)
	if err != nil {
		return result, r.finish(ctx, &spec, result, startedAt, fmt.Errorf("reading sections: %w", err))
	}

	// Locating: the target identity is resolved once and reused for
	// every subsequent operation in this run.
	target, err := Locate(sections, &spec)
	if err != nil {
		return result, r.finish(ctx, &spec, result, startedAt, err)
	}

	ops, err := r.branch(&spec, sections, target)
	if err != nil {
		return result, r.finish(ctx, &spec, result, startedAt, err)
	}

	// Sequencing: fail-fast, no rollback; the store's own commit and
	// revert mechanics are the recovery boundary.
	seq := NewSequencer(r.store, dryRun)
	result.Commands, err = seq.Run(ctx, ops)
	if err != nil {
		return result, r.finish(ctx, &spec, result, startedAt, err)
	}

	// Observing(after): captured before any commit, as the original
	// module did. The ledger is audit evidence; changed is derived
	// from the operation count.
	after, err := r.store.Changes(ctx, spec.Config)
	if err != nil {
		return result, r.finish(ctx, &spec, result, startedAt, fmt.Errorf("reading change ledger: %w", err))
	}
	result.ChangesAfter = after
	result.Changed = len(ops) > 0

	if spec.Commit && (!r.commitOnChangeOnly || result.Changed) {
		commitLog, err := seq.Run(ctx, []domain.Operation{{Kind: domain.OpCommit, Config: spec.Config}})
		result.Commands = append(result.Commands, commitLog...)
		if err != nil {
			return result, r.finish(ctx, &spec, result, startedAt, err)
		}
	}

	return result, r.finish(ctx, &spec, result, startedAt, nil)
}

// branch selects the operation set for the (state, found) pair.
func (r *ReconcilerService) branch(spec *domain.DesiredSpec, sections []domain.Section, target *domain.Section) ([]domain.Operation, error) {
	switch state := spec.EffectiveState(); {
	case state == domain.StatePresent && target != nil:
		ops := DiffOptions(spec.Config, target.ID, target.Options, spec.Options, spec.Replace, spec.SetFind, spec.Find)
		return appendReorder(ops, spec, sections, target), nil

	case state == domain.StatePresent:
		ops, err := Synthesize(spec)
		if err != nil {
			return nil, err
		}
		return appendReorder(ops, spec, sections, nil), nil

	case target != nil: // absent & found
		return []domain.Operation{{
			Kind:    domain.OpDeleteSection,
			Config:  spec.Config,
			Section: target.ID,
		}}, nil
	}
	// absent & not found: nothing to do.
	return nil, nil
}

// appendReorder adds a reorder for specs that pin a position. For a
// located section the reorder is skipped when it already sits at the
// desired ordinal, keeping converged runs operation-free.
func appendReorder(ops []domain.Operation, spec *domain.DesiredSpec, sections []domain.Section, target *domain.Section) []domain.Operation {
	if spec.Position == nil {
		return ops
	}
	// A position without find acts as the locate ordinal; a reorder is
	// only requested alongside an explicit name, find criteria, or a
	// fresh section.
	if spec.Section == "" && len(spec.Find) == 0 && target != nil {
		return ops
	}

	section := spec.Section
	if target != nil {
		if typeOrdinal(sections, target) == *spec.Position {
			return ops
		}
		section = target.ID
	} else if section == "" {
		section = domain.NewSection
	}
	return append(ops, domain.Operation{
		Kind:     domain.OpReorder,
		Config:   spec.Config,
		Section:  section,
		Position: *spec.Position,
	})
}

// typeOrdinal returns a section's ordinal among sections of its type.
func typeOrdinal(sections []domain.Section, target *domain.Section) int {
	ordinal := 0
	for i := range sections {
		if sections[i].Type != target.Type {
			continue
		}
		if sections[i].ID == target.ID {
			return ordinal
		}
		ordinal++
	}
	return ordinal
}

// finish records the run in the journal when one is configured. Journal
// failures are logged, never surfaced: audit must not fail a converged
// run.
func (r *ReconcilerService) finish(ctx context.Context, spec *domain.DesiredSpec, result *domain.Result, startedAt time.Time, runErr error) error {
	if r.history != nil {
		rec := &domain.RunRecord{
			ID:        result.RunID,
			StartedAt: startedAt,
			Config:    spec.Config,
			SpecName:  spec.Name,
			DryRun:    result.DryRun,
			Changed:   result.Changed,
			Commands:  result.Commands,
		}
		if runErr != nil {
			rec.Error = runErr.Error()
		}
		if err := r.history.Record(ctx, rec); err != nil {
			log.Printf("reconciler: failed to record run %s: %v", result.RunID, err)
		}
	}
	return runErr
}
