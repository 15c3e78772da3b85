package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresRepository persists groups in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a Postgres-backed group repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the groups table if it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS groups (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			code       TEXT NOT NULL UNIQUE,
			members    TEXT[] NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create groups table: %w", err)
	}
	return nil
}

// Create inserts a new group.
func (r *PostgresRepository) Create(ctx context.Context, g *Group) error {
	query := `
		INSERT INTO groups (id, name, code, members, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query, g.ID, g.Name, g.Code, pq.Array(g.Members), g.CreatedAt); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// GetByID retrieves a group by its ID; returns (nil, nil) when absent.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Group, error) {
	query := `SELECT id, name, code, members, created_at FROM groups WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByCode retrieves a group by its join code; returns (nil, nil) when absent.
func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*Group, error) {
	query := `SELECT id, name, code, members, created_at FROM groups WHERE code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

// ListByMember retrieves every group the participant belongs to.
func (r *PostgresRepository) ListByMember(ctx context.Context, member string) ([]*Group, error) {
	query := `SELECT id, name, code, members, created_at FROM groups WHERE $1 = ANY(members) ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, member)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		g := &Group{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Code, pq.Array(&g.Members), &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// UpdateMembers replaces the group's member list.
func (r *PostgresRepository) UpdateMembers(ctx context.Context, id string, members []string) error {
	query := `UPDATE groups SET members = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, pq.Array(members)); err != nil {
		return fmt.Errorf("failed to update group members: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*Group, error) {
	g := &Group{}
	err := row.Scan(&g.ID, &g.Name, &g.Code, pq.Array(&g.Members), &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return g, nil
}
