package services

import (
	"fmt"

	"github.com/ucikit/ucictl/internal/core/domain"
)

// Locate resolves a desired spec to zero or one concrete section among
// the observed sections. Returns nil and no error when nothing matches;
// "not found" is a normal branch, not a failure.
//
// Resolution order: explicit section name, then find criteria, then
// type+position. An out-of-range position yields not found.
func Locate(sections []domain.Section, spec *domain.DesiredSpec) (*domain.Section, error) {
	switch {
	case spec.Section != "":
		return locateByName(sections, spec.Section), nil
	case len(spec.Find) != 0:
		return locateByCriteria(sections, spec)
	case spec.Type != "":
		return locateByOrdinal(sections, spec.Type, positionOrZero(spec.Position)), nil
	}
	// Validate rejects specs with no criteria before we get here.
	return nil, fmt.Errorf("%w: no way to locate a section", domain.ErrValidation)
}

func locateByName(sections []domain.Section, name string) *domain.Section {
	for i := range sections {
		if sections[i].ID == name {
			return &sections[i]
		}
	}
	return nil
}

// locateByCriteria scans all sections, optionally filtered by type, and
// keeps those satisfying every find pair. Multi-match resolution follows
// the spec's match policy: first in store order, or a hard error.
func locateByCriteria(sections []domain.Section, spec *domain.DesiredSpec) (*domain.Section, error) {
	var matches []*domain.Section
	for i := range sections {
		s := &sections[i]
		if spec.Type != "" && s.Type != spec.Type {
			continue
		}
		if s.Matches(spec.Find) {
			matches = append(matches, s)
		}
	}

	switch {
	case len(matches) == 0:
		return nil, nil
	case len(matches) == 1:
		return matches[0], nil
	case spec.EffectiveMatchPolicy() == domain.MatchError:
		return nil, fmt.Errorf("%w: %d sections of %s match", domain.ErrAmbiguousMatch, len(matches), spec.Config)
	}
	return matches[0], nil
}

func locateByOrdinal(sections []domain.Section, sectionType string, position int) *domain.Section {
	ordinal := 0
	for i := range sections {
		if sections[i].Type != sectionType {
			continue
		}
		if ordinal == position {
			return &sections[i]
		}
		ordinal++
	}
	return nil
}

func positionOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
