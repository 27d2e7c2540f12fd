// Package postgres persists the record set in a PostgreSQL table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/vsinha/inventory/pkg/domain/entities"
	"github.com/vsinha/inventory/pkg/domain/repositories"
)

const DefaultTable = "inventory_records"

// Store mirrors the full record set into one table. Save replaces the table
// contents inside a single transaction and the position column preserves
// insertion order.
type Store struct {
	db    *sql.DB
	table string
}

func NewStore(db *sql.DB, table string) *Store {
	if table == "" {
		table = DefaultTable
	}
	return &Store{db: db, table: table}
}

// Verify interface compliance
var _ repositories.Persister = (*Store)(nil)

// ConnectPostgres opens and pings a connection pool
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// EnsureSchema creates the records table when it does not exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			position     INTEGER      NOT NULL,
			id           TEXT         PRIMARY KEY,
			name         TEXT         NOT NULL,
			category     TEXT         NOT NULL,
			item_kind    TEXT         NOT NULL,
			quantity     BIGINT       NOT NULL CHECK (quantity >= 0),
			threshold    BIGINT       NOT NULL CHECK (threshold >= 0),
			unit_price   NUMERIC      NOT NULL CHECK (unit_price >= 0),
			supplier     TEXT         NOT NULL,
			last_updated TIMESTAMPTZ  NOT NULL,
			notes        TEXT         NOT NULL DEFAULT ''
		)`, s.quotedTable()))
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) ([]entities.InventoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, category, item_kind, quantity, threshold, unit_price, supplier, last_updated, notes
		FROM %s
		ORDER BY position ASC`, s.quotedTable()))
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := []entities.InventoryRecord{}
	for rows.Next() {
		var r entities.InventoryRecord
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Category, &r.ItemKind, &r.Quantity, &r.Threshold,
			&r.UnitPrice, &r.Supplier, &r.LastUpdated, &r.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.LastUpdated = r.LastUpdated.UTC()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

func (s *Store) Save(ctx context.Context, records []entities.InventoryRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, s.quotedTable())); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (position, id, name, category, item_kind, quantity, threshold, unit_price, supplier, last_updated, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`, s.quotedTable()))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			i, string(r.ID), r.Name, r.Category, string(r.ItemKind), int64(r.Quantity), int64(r.Threshold),
			r.UnitPrice, r.Supplier, r.LastUpdated.UTC(), r.Notes,
		); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

func (s *Store) quotedTable() string {
	return pq.QuoteIdentifier(s.table)
}
