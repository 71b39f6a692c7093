package driven

import (
	"context"

	"github.com/ucikit/ucictl/internal/core/domain"
)

// HistoryStore persists the run journal for audit.
type HistoryStore interface {
	// Record appends a run record to the journal.
	Record(ctx context.Context, rec *domain.RunRecord) error

	// Recent returns the most recent records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Prune removes old records, keeping the most recent 'keep'.
	Prune(ctx context.Context, keep int) error
}
