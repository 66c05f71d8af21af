package internal

import (
	"database/sql"
	"errors"
	"strings"
)

// KeyValueStore is a synchronous string-keyed store that survives restarts
type KeyValueStore interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// SQLiteStore is a KeyValueStore backed by the kv_store table
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore on an initialised database
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLiteStore opens the database at path and wraps it in a SQLiteStore
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &StorageError{Key: path, Op: "open", Err: err}
	}
	return NewSQLiteStore(db), nil
}

// Get implements KeyValueStore
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value sql.NullString
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Key: key, Op: "get", Err: err}
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

// Set implements KeyValueStore
func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv_store (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return &StorageError{Key: key, Op: "set", Err: err}
	}
	return nil
}

// Remove implements KeyValueStore
func (s *SQLiteStore) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return &StorageError{Key: key, Op: "remove", Err: err}
	}
	return nil
}

// Keys lists the stored pairs whose key starts with prefix
func (s *SQLiteStore) Keys(prefix string) ([]KeyValuePair, error) {
	escaped := strings.NewReplacer("%", `\%`, "_", `\_`).Replace(prefix)
	pairs, err := QueryKV(s.db, escaped+"%")
	if err != nil {
		return nil, &StorageError{Key: prefix, Op: "get", Err: err}
	}
	return pairs, nil
}

// SchemaVersion returns the schema version stored in the database
func (s *SQLiteStore) SchemaVersion() (int, error) {
	return SchemaVersion(s.db)
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
