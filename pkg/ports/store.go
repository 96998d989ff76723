package ports

import (
	"context"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
)

// OperationStore persists operation audit records. Records are write-once;
// there is no update path.
type OperationStore interface {
	// Save persists a record under its ID.
	Save(ctx context.Context, rec *domain.OperationRecord) error

	// Get retrieves a record by ID.
	// Returns domain.ErrOperationNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.OperationRecord, error)

	// List returns all records, most recent first.
	List(ctx context.Context) ([]*domain.OperationRecord, error)
}
