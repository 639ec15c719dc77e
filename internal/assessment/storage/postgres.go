package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
)

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Postgres stores one row per key and upserts on Set.
type Postgres struct {
	db    *sql.DB
	table string

	getQuery    string
	setQuery    string
	removeQuery string
}

// NewPostgres binds the backend to table. The name is interpolated into SQL,
// so only lower-case identifiers are accepted.
func NewPostgres(db *sql.DB, table string) (*Postgres, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Postgres{
		db:          db,
		table:       table,
		getQuery:    fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, table),
		setQuery:    fmt.Sprintf(`INSERT INTO %s (key, value, updated_at) VALUES ($1, $2, NOW()) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`, table),
		removeQuery: fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, table),
	}, nil
}

// EnsureSchema creates the backing table when it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, p.table)
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", p.table, err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := p.db.QueryRowContext(ctx, p.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	if _, err := p.db.ExecContext(ctx, p.setQuery, key, string(value)); err != nil {
		return fmt.Errorf("postgres set %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) Remove(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, p.removeQuery, key); err != nil {
		return fmt.Errorf("postgres remove %s: %w", key, err)
	}
	return nil
}
