package domain

import (
	"fmt"
	"strconv"
)

// NewSection is the placeholder identity carried by operations that
// address a section created earlier in the same run. The sequencer
// substitutes the store-assigned identity before execution.
const NewSection = "@new"

// OpKind tags a store mutation intent.
type OpKind string

const (
	// OpCreateSection creates a section of a given type.
	OpCreateSection OpKind = "create-section"
	// OpSetOption sets a scalar option.
	OpSetOption OpKind = "set-option"
	// OpAddListEntry appends an entry to a list option.
	OpAddListEntry OpKind = "add-list-entry"
	// OpRemoveListEntry removes an entry from a list option.
	OpRemoveListEntry OpKind = "remove-list-entry"
	// OpDeleteOption removes an option.
	OpDeleteOption OpKind = "delete-option"
	// OpDeleteSection removes a whole section.
	OpDeleteSection OpKind = "delete-section"
	// OpReorder moves a section to a new position.
	OpReorder OpKind = "reorder"
	// OpCommit makes pending changes durable.
	OpCommit OpKind = "commit"
)

// Operation is a single intended store mutation. Operations are
// transient, scoped to one reconciliation run.
type Operation struct {
	Kind    OpKind
	Config  string
	Section string
	Option  string
	// Value is the scalar value, list entry, or section type for
	// OpCreateSection.
	Value string
	// Position is the target ordinal for OpReorder.
	Position int
}

// Command renders the operation as the uci invocation it maps to.
// This is the human-readable form reported in Result.Commands.
func (o Operation) Command() string {
	switch o.Kind {
	case OpCreateSection:
		if o.Section != "" && o.Section != NewSection {
			return fmt.Sprintf("uci set %s.%s=%s", o.Config, o.Section, o.Value)
		}
		return fmt.Sprintf("uci add %s %s", o.Config, o.Value)
	case OpSetOption:
		return fmt.Sprintf("uci set %s.%s.%s=%s", o.Config, o.Section, o.Option, o.Value)
	case OpAddListEntry:
		return fmt.Sprintf("uci add_list %s.%s.%s=%s", o.Config, o.Section, o.Option, o.Value)
	case OpRemoveListEntry:
		return fmt.Sprintf("uci del_list %s.%s.%s=%s", o.Config, o.Section, o.Option, o.Value)
	case OpDeleteOption:
		return fmt.Sprintf("uci delete %s.%s.%s", o.Config, o.Section, o.Option)
	case OpDeleteSection:
		return fmt.Sprintf("uci delete %s.%s", o.Config, o.Section)
	case OpReorder:
		return fmt.Sprintf("uci reorder %s.%s=%s", o.Config, o.Section, strconv.Itoa(o.Position))
	case OpCommit:
		return fmt.Sprintf("uci commit %s", o.Config)
	}
	return fmt.Sprintf("uci <%s>", o.Kind)
}
