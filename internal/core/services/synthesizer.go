package services

import (
	"fmt"

	"github.com/ucikit/ucictl/internal/core/domain"
)

// Synthesize emits the operations that create the section a present
// spec describes when no existing section matched: a create, an
// optional seeding pass from the find criteria, and the options diffed
// on top. Explicit option values win over find-seeded values because
// the overlay diffs against the seeded baseline.
func Synthesize(spec *domain.DesiredSpec) ([]domain.Operation, error) {
	if spec.Type == "" {
		return nil, fmt.Errorf("%w: type is required to create a section", domain.ErrValidation)
	}

	// A named spec creates a named section addressable by its name;
	// otherwise the store assigns the identity and later operations
	// carry the placeholder until the sequencer resolves it.
	ref := spec.Section
	if ref == "" {
		ref = domain.NewSection
	}

	ops := []domain.Operation{{
		Kind:    domain.OpCreateSection,
		Config:  spec.Config,
		Section: spec.Section,
		Value:   spec.Type,
	}}

	baseline := map[string]domain.Value{}
	if spec.SetFind && len(spec.Find) != 0 {
		// Seeding diffs against an empty baseline, so every find entry
		// becomes a set/add and nothing is ever removed here.
		ops = append(ops, DiffOptions(spec.Config, ref, nil, spec.Find, false, false, nil)...)
		for name, v := range spec.Find {
			baseline[name] = v
		}
	}

	ops = append(ops, DiffOptions(spec.Config, ref, baseline, spec.Options, false, false, nil)...)

	return ops, nil
}
