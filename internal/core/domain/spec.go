package domain

import "fmt"

// State declares whether the target section should exist.
type State string

const (
	// StatePresent converges the section toward the desired options.
	StatePresent State = "present"
	// StateAbsent removes the section if it exists.
	StateAbsent State = "absent"
)

// IsValid reports whether the state is a known variant.
func (s State) IsValid() bool {
	switch s {
	case StatePresent, StateAbsent:
		return true
	}
	return false
}

// MatchPolicy controls what happens when find criteria match more than
// one section.
type MatchPolicy string

const (
	// MatchFirst selects the first match in store order.
	MatchFirst MatchPolicy = "first"
	// MatchError rejects the run with ErrAmbiguousMatch.
	MatchError MatchPolicy = "error"
)

// IsValid reports whether the policy is a known variant.
func (p MatchPolicy) IsValid() bool {
	switch p {
	case MatchFirst, MatchError:
		return true
	}
	return false
}

// DesiredSpec is a reconciliation request: the declared desired state
// of one section within one UCI config.
type DesiredSpec struct {
	// Name is an optional label used in playbook output and the run
	// journal. It has no effect on reconciliation.
	Name string

	// State is present or absent. Empty defaults to present.
	State State

	// Config names the UCI config (e.g. "network").
	Config string

	// Section is the explicit section name. Leave empty to locate by
	// Type+Position or by Find.
	Section string

	// Type is the section type. Required when a new section must be
	// created; used as an ordinal filter when locating by position.
	Type string

	// Options maps option names to desired values.
	Options map[string]Value

	// Position is the desired ordinal among sections of Type. When
	// locating without Find it selects the Position-th section of
	// Type; on a located or created section it requests a reorder.
	Position *int

	// Find holds match criteria: every pair must hold for a section
	// to match. List values compare in order.
	Find map[string]Value

	// Replace deletes every current option not named in Options (nor
	// in Find when SetFind is set).
	Replace bool

	// SetFind seeds a newly created section with the Find criteria.
	SetFind bool

	// Commit makes the pending changes durable after reconciliation.
	Commit bool

	// MatchPolicy resolves ambiguous Find matches. Empty defaults to
	// MatchFirst.
	MatchPolicy MatchPolicy
}

// EffectiveState returns State with the present default applied.
func (s *DesiredSpec) EffectiveState() State {
	if s.State == "" {
		return StatePresent
	}
	return s.State
}

// EffectiveMatchPolicy returns MatchPolicy with the first-match default
// applied.
func (s *DesiredSpec) EffectiveMatchPolicy() MatchPolicy {
	if s.MatchPolicy == "" {
		return MatchFirst
	}
	return s.MatchPolicy
}

// Validate checks the spec before any store interaction.
func (s *DesiredSpec) Validate() error {
	if s.Config == "" {
		return fmt.Errorf("%w: config is required", ErrValidation)
	}
	if !s.EffectiveState().IsValid() {
		return fmt.Errorf("%w: unknown state %q", ErrValidation, s.State)
	}
	if !s.EffectiveMatchPolicy().IsValid() {
		return fmt.Errorf("%w: unknown match_policy %q", ErrValidation, s.MatchPolicy)
	}
	if s.Section == "" && s.Type == "" && len(s.Find) == 0 {
		return fmt.Errorf("%w: one of section, type or find is required to locate a section", ErrValidation)
	}
	if s.Section != "" && len(s.Find) != 0 {
		return fmt.Errorf("%w: section and find are mutually exclusive", ErrValidation)
	}
	if s.Position != nil && *s.Position < 0 {
		return fmt.Errorf("%w: position must not be negative", ErrValidation)
	}
	return nil
}
