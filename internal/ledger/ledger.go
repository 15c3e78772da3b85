package ledger

import (
	"context"
	"sync"
)

// Listener receives change notifications from a ledger. The balance engine
// implements it to keep derived state current.
type Listener interface {
	// ExpenseAdded is called after a record passes validation and enters
	// the ledger.
	ExpenseAdded(rec ExpenseRecord)

	// LedgerReset is called with the full remaining record set whenever
	// incremental bookkeeping is unsafe (removal, reload).
	LedgerReset(records []ExpenseRecord)
}

// Ledger holds the authoritative set of expense records for one group.
// Records are validated on entry, immutable afterwards, and removable only
// as a whole. Persistence is optimistic: the in-memory state is updated
// first and a store failure flags the affected record as unsynced instead
// of rolling back.
type Ledger struct {
	groupID  string
	store    Store
	listener Listener

	mu       sync.RWMutex
	records  map[string]ExpenseRecord
	unsynced map[string]bool
}

// New creates an empty ledger for a group backed by the given store.
func New(groupID string, store Store) *Ledger {
	return &Ledger{
		groupID:  groupID,
		store:    store,
		records:  make(map[string]ExpenseRecord),
		unsynced: make(map[string]bool),
	}
}

// SetListener registers the change listener. Must be called before Load/Add.
func (l *Ledger) SetListener(listener Listener) {
	l.listener = listener
}

// GroupID returns the group this ledger belongs to.
func (l *Ledger) GroupID() string {
	return l.groupID
}

// Load replaces the in-memory record set with the store's contents and
// resets the listener. Called once per session; also the reconciliation
// point after earlier unsynced writes.
func (l *Ledger) Load(ctx context.Context) error {
	records, err := l.store.LoadExpenses(ctx, l.groupID)
	if err != nil {
		return &PersistenceError{Op: "load expenses", Err: err}
	}

	l.mu.Lock()
	l.records = make(map[string]ExpenseRecord, len(records))
	l.unsynced = make(map[string]bool)
	for _, rec := range records {
		l.records[rec.ID] = rec
	}
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	if l.listener != nil {
		l.listener.LedgerReset(snapshot)
	}
	return nil
}

// Add validates the record, appends it, notifies the listener, and persists
// it. A validation failure leaves the ledger untouched. A persistence
// failure keeps the record in memory, marks it unsynced, and is reported
// via the returned error.
func (l *Ledger) Add(ctx context.Context, rec ExpenseRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	if _, exists := l.records[rec.ID]; exists {
		l.mu.Unlock()
		return &ValidationError{Field: "id", Reason: "duplicate expense id " + rec.ID}
	}
	l.records[rec.ID] = rec
	l.mu.Unlock()

	if l.listener != nil {
		l.listener.ExpenseAdded(rec)
	}

	if err := l.store.SaveExpense(ctx, l.groupID, rec); err != nil {
		l.mu.Lock()
		l.unsynced[rec.ID] = true
		l.mu.Unlock()
		return &PersistenceError{Op: "save expense " + rec.ID, Err: err}
	}
	return nil
}

// Remove deletes the record with the given id and triggers a full reset of
// derived state. Removal is never applied incrementally. Returns
// ErrNotFound if the id is unknown.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	if _, exists := l.records[id]; !exists {
		l.mu.Unlock()
		return ErrNotFound
	}
	delete(l.records, id)
	delete(l.unsynced, id)
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	if l.listener != nil {
		l.listener.LedgerReset(snapshot)
	}

	if err := l.store.DeleteExpense(ctx, l.groupID, id); err != nil {
		return &PersistenceError{Op: "delete expense " + id, Err: err}
	}
	return nil
}

// All returns a snapshot copy of every record. Order carries no meaning;
// callers that need chronology must sort by Date.
func (l *Ledger) All() []ExpenseRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

// Get returns the record with the given id, or ErrNotFound.
func (l *Ledger) Get(id string) (ExpenseRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.records[id]
	if !ok {
		return ExpenseRecord{}, ErrNotFound
	}
	return rec, nil
}

// Unsynced reports whether the record with the given id failed to persist.
func (l *Ledger) Unsynced(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.unsynced[id]
}

func (l *Ledger) snapshotLocked() []ExpenseRecord {
	records := make([]ExpenseRecord, 0, len(l.records))
	for _, rec := range l.records {
		records = append(records, rec)
	}
	return records
}
