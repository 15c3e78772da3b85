package ledger

import "context"

// Store is the persistence boundary for expense records. Implementations
// live in the memory and postgres subpackages; the ledger treats the store
// as a per-group document collection and nothing more.
type Store interface {
	// LoadExpenses returns every stored record for the group.
	LoadExpenses(ctx context.Context, groupID string) ([]ExpenseRecord, error)

	// SaveExpense upserts a single record.
	SaveExpense(ctx context.Context, groupID string, rec ExpenseRecord) error

	// DeleteExpense removes the record with the given id. Deleting an id
	// that is not stored is not an error.
	DeleteExpense(ctx context.Context, groupID, id string) error
}
