package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchemaVersion = 1

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS cells (
    address INTEGER PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at INTEGER NOT NULL -- UnixNano
);
`

// SQLite stores cells in a database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// checkSchemaVersion stamps a new database and rejects one written by a newer
// schema.
func checkSchemaVersion(db *sql.DB) error {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", sqliteSchemaVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case version > sqliteSchemaVersion:
		return fmt.Errorf("database schema version %d is newer than supported %d", version, sqliteSchemaVersion)
	}
	return nil
}

func (s *SQLite) Put(addr uint16, cell Cell) error {
	_, err := s.db.Exec(`
		INSERT INTO cells (address, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		int64(addr), cell[:], time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to write cell at %d: %w", addr, err)
	}
	return nil
}

func (s *SQLite) Get(addr uint16) (Cell, bool, error) {
	var c Cell
	var value []byte
	err := s.db.QueryRow("SELECT value FROM cells WHERE address = ?", int64(addr)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return c, false, nil
	}
	if err != nil {
		return c, false, fmt.Errorf("failed to read cell at %d: %w", addr, err)
	}
	if len(value) != CellSize {
		return c, false, fmt.Errorf("cell at %d has %d bytes, want %d", addr, len(value), CellSize)
	}
	copy(c[:], value)
	return c, true, nil
}

func (s *SQLite) List() ([]Entry, error) {
	rows, err := s.db.Query("SELECT address, value FROM cells ORDER BY address")
	if err != nil {
		return nil, fmt.Errorf("failed to list cells: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var addr int64
		var value []byte
		if err := rows.Scan(&addr, &value); err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		var e Entry
		e.Address = uint16(addr)
		copy(e.Cell[:], value)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cells: %w", err)
	}
	return out, nil
}

func (s *SQLite) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
