package services

import (
	"sort"

	"github.com/ucikit/ucictl/internal/core/domain"
)

// DiffOptions computes the minimal operation sequence that converges a
// section's current options to the desired map. The diff is purely
// value-based: a key whose current value already equals the desired
// value emits nothing, so re-running a converged spec is a no-op.
//
// Replace-mode deletions are emitted after additions and updates so the
// section is never transiently stripped of its identifying options.
func DiffOptions(config, section string, current, desired map[string]domain.Value, replace, setFind bool, find map[string]domain.Value) []domain.Operation {
	var ops []domain.Operation

	for _, name := range sortedKeys(desired) {
		want := desired[name]
		got, exists := current[name]
		if exists && got.Equal(want) {
			continue
		}
		if want.IsList() {
			ops = append(ops, rebuildList(config, section, name, got, want, exists)...)
			continue
		}
		ops = append(ops, domain.Operation{
			Kind:    domain.OpSetOption,
			Config:  config,
			Section: section,
			Option:  name,
			Value:   want.Scalar(),
		})
	}

	if replace {
		retain := make(map[string]struct{}, len(desired)+len(find))
		for name := range desired {
			retain[name] = struct{}{}
		}
		if setFind {
			for name := range find {
				retain[name] = struct{}{}
			}
		}
		for _, name := range sortedKeys(current) {
			if _, keep := retain[name]; keep {
				continue
			}
			ops = append(ops, domain.Operation{
				Kind:    domain.OpDeleteOption,
				Config:  config,
				Section: section,
				Option:  name,
			})
		}
	}

	return ops
}

// rebuildList emits the operations that leave a list option equal,
// order-for-order, to the desired list. A current list that differs in
// content or order is torn down entry by entry and rebuilt in desired
// order; a current scalar is deleted first since del_list cannot touch
// it.
func rebuildList(config, section, option string, got, want domain.Value, exists bool) []domain.Operation {
	var ops []domain.Operation

	switch {
	case exists && got.IsList():
		for _, entry := range got.Entries() {
			ops = append(ops, domain.Operation{
				Kind:    domain.OpRemoveListEntry,
				Config:  config,
				Section: section,
				Option:  option,
				Value:   entry,
			})
		}
	case exists:
		ops = append(ops, domain.Operation{
			Kind:    domain.OpDeleteOption,
			Config:  config,
			Section: section,
			Option:  option,
		})
	}

	for _, entry := range want.Entries() {
		ops = append(ops, domain.Operation{
			Kind:    domain.OpAddListEntry,
			Config:  config,
			Section: section,
			Option:  option,
			Value:   entry,
		})
	}

	return ops
}

// sortedKeys keeps operation emission deterministic across runs.
func sortedKeys(m map[string]domain.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
