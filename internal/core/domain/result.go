package domain

import "time"

// Result reports the outcome of one reconciliation run. All fields are
// populated fresh per run; nothing is shared across invocations.
type Result struct {
	// RunID uniquely identifies the run in logs and the journal.
	RunID string

	// Config is the reconciled UCI config.
	Config string

	// Changed reports whether any mutating operation was sequenced.
	// This is the operation-count signal; the ledgers below are
	// supplementary audit evidence.
	Changed bool

	// DryRun reports whether the run recorded invocations without
	// executing them.
	DryRun bool

	// ChangesBefore is the store's pending-change ledger captured
	// before reconciliation.
	ChangesBefore []string

	// ChangesAfter is the ledger captured after sequencing, before
	// any commit.
	ChangesAfter []string

	// Commands is the ordered, human-readable list of invocations
	// issued (or, in dry-run, that would have been issued).
	Commands []string
}

// RunRecord is one journal entry describing a completed (or failed)
// reconciliation run.
type RunRecord struct {
	ID        string
	StartedAt time.Time
	Config    string
	SpecName  string
	DryRun    bool
	Changed   bool
	Commands  []string
	Error     string
}
