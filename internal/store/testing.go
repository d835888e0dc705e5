package store

import (
	"database/sql"
)

// NewTestStore wraps an existing connection, typically an in-memory
// database, and runs migrations on it.
// This is only intended for use in tests.
func NewTestStore(sqlDB *sql.DB) (*Store, error) {
	sqlDB.SetMaxOpenConns(1)
	if err := prepare(sqlDB); err != nil {
		return nil, err
	}
	return newStore(sqlDB), nil
}
