// Package postgres implements the ledger store on a Postgres document
// table: one jsonb document per expense, keyed by group and expense id.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/splitledger/splitledger/internal/ledger"
)

// Store persists expense documents in Postgres.
type Store struct {
	db *sql.DB
}

// NewStore creates a Postgres-backed ledger store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the expenses table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS expenses (
			group_id   TEXT NOT NULL,
			id         TEXT NOT NULL,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (group_id, id)
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create expenses table: %w", err)
	}
	return nil
}

// LoadExpenses returns every stored record for the group.
func (s *Store) LoadExpenses(ctx context.Context, groupID string) ([]ledger.ExpenseRecord, error) {
	query := `SELECT doc FROM expenses WHERE group_id = $1`

	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	defer rows.Close()

	var records []ledger.ExpenseRecord
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		var doc ledger.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode expense document: %w", err)
		}
		rec, err := doc.ToRecord()
		if err != nil {
			return nil, fmt.Errorf("stored expense %s is invalid: %w", doc.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	return records, nil
}

// SaveExpense upserts a single record.
func (s *Store) SaveExpense(ctx context.Context, groupID string, rec ledger.ExpenseRecord) error {
	raw, err := json.Marshal(rec.ToDocument())
	if err != nil {
		return fmt.Errorf("failed to encode expense document: %w", err)
	}

	query := `
		INSERT INTO expenses (group_id, id, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, id) DO UPDATE SET doc = EXCLUDED.doc
	`
	if _, err := s.db.ExecContext(ctx, query, groupID, rec.ID, raw); err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

// DeleteExpense removes the record with the given id; unknown ids are a no-op.
func (s *Store) DeleteExpense(ctx context.Context, groupID, id string) error {
	query := `DELETE FROM expenses WHERE group_id = $1 AND id = $2`
	if _, err := s.db.ExecContext(ctx, query, groupID, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
