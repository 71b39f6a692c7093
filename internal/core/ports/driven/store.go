package driven

import (
	"context"

	"github.com/ucikit/ucictl/internal/core/domain"
)

// Store is the UCI configuration store as seen by the core. Each method
// maps to exactly one store invocation; implementations must not batch
// or reorder. A failed invocation is reported as *domain.InvocationError.
type Store interface {
	// Changes returns the pending (not yet committed) change lines for
	// a config, in ledger order.
	Changes(ctx context.Context, config string) ([]string, error)

	// Sections returns the parsed sections of a config in store order.
	Sections(ctx context.Context, config string) ([]domain.Section, error)

	// AddSection creates a section of the given type and returns its
	// addressable identity. With a name the section is named and the
	// identity is the name; without one the store assigns an anonymous
	// identity.
	AddSection(ctx context.Context, config, sectionType, name string) (string, error)

	// Set assigns a scalar option value.
	Set(ctx context.Context, config, section, option, value string) error

	// AddList appends an entry to a list option.
	AddList(ctx context.Context, config, section, option, entry string) error

	// DelList removes an entry from a list option.
	DelList(ctx context.Context, config, section, option, entry string) error

	// DeleteOption removes an option from a section.
	DeleteOption(ctx context.Context, config, section, option string) error

	// DeleteSection removes a whole section.
	DeleteSection(ctx context.Context, config, section string) error

	// Reorder moves a section to the given position.
	Reorder(ctx context.Context, config, section string, position int) error

	// Commit makes the pending changes for a config durable.
	Commit(ctx context.Context, config string) error
}
