package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/akarstad/netpulse/internal/constants"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

type Store struct {
	*sql.DB
}

// Open connects to the sample database in dir, creating it if needed.
func Open(dir string) (*Store, error) {
	dbFile := filepath.Join(dir, constants.DBFileName)
	database, err := sql.Open(driverName, dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := database.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	return &Store{database}, nil
}

func (s *Store) Migrate() error {
	return createSamplesTable(s)
}
