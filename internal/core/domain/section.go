package domain

// Section is a live section as observed in the store.
type Section struct {
	// ID is the addressable identity: a stable name for named sections,
	// or the store-assigned selector (e.g. "@interface[0]") for
	// anonymous ones. Anonymous identities are ephemeral and must not
	// be assumed stable across mutations by other actors.
	ID string

	// Type is the section type (free-form, e.g. "interface").
	Type string

	// Anonymous reports whether the section has no stable name.
	Anonymous bool

	// Options maps option names to their current values.
	Options map[string]Value
}

// Matches reports whether every criteria pair holds for this section.
// List criteria require exact ordered equality, not membership.
func (s *Section) Matches(criteria map[string]Value) bool {
	for name, want := range criteria {
		got, ok := s.Options[name]
		if !ok || !got.Equal(want) {
			return false
		}
	}
	return true
}
