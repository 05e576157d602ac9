// Package store is the persistence layer over the per-layout item tables.
// It provides the readers and writers the migration consumes, plus access to
// the layout state and the oracle tables (packages, widgets).
package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pcranston/gridshift/internal/db"
)

// Querier is the subset of *sql.DB and *sql.Tx the store operates on, so the
// same code can run inside or outside a transaction.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store wraps the database connection.
type Store struct {
	db *db.DB
}

// New creates a new Store wrapping the given database connection.
func New(database *db.DB) *Store {
	return &Store{db: database}
}

// DB returns the underlying database connection (for read-only queries).
func (s *Store) DB() *db.DB {
	return s.db
}

// WithTx executes fn within a transaction. If fn returns nil, the transaction
// is committed; otherwise it is rolled back.
func (s *Store) WithTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// Item tables are created per layout since their names carry the grid
// dimensions. container is ContainerDesktop, ContainerHotseat, or the row id
// of the folder holding the item.
const itemTableSchema = `
	CREATE TABLE IF NOT EXISTS %s (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		uuid      TEXT NOT NULL UNIQUE,
		container INTEGER NOT NULL DEFAULT -100,
		item_type TEXT NOT NULL,
		title     TEXT NOT NULL DEFAULT '',
		intent    TEXT NOT NULL DEFAULT '',
		provider  TEXT NOT NULL DEFAULT '',
		screen    INTEGER NOT NULL DEFAULT -1,
		cellx     INTEGER NOT NULL DEFAULT -1,
		celly     INTEGER NOT NULL DEFAULT -1,
		spanx     INTEGER NOT NULL DEFAULT 1,
		spany     INTEGER NOT NULL DEFAULT 1
	)`

// EnsureItemTable creates the item table for a layout if it does not exist.
func EnsureItemTable(q Querier, name string) error {
	if _, err := q.Exec(fmt.Sprintf(itemTableSchema, name)); err != nil {
		return fmt.Errorf("failed to create item table %s: %w", name, err)
	}
	return nil
}

// DropItemTable removes a layout's item table.
func DropItemTable(q Querier, name string) error {
	if _, err := q.Exec("DROP TABLE IF EXISTS " + name); err != nil {
		return fmt.Errorf("failed to drop item table %s: %w", name, err)
	}
	return nil
}

// TableExists reports whether a table of the given name exists.
func TableExists(q Querier, name string) (bool, error) {
	var count int
	err := q.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name = ?
	`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check for table %s: %w", name, err)
	}
	return count > 0, nil
}

// deleteRows removes the given row ids from a table. A nil or empty id list
// is a no-op.
func deleteRows(q Querier, table string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	if _, err := q.Exec("DELETE FROM "+table+" WHERE id IN ("+placeholders+")", args...); err != nil {
		return fmt.Errorf("failed to delete %d rows from %s: %w", len(ids), table, err)
	}
	return nil
}
