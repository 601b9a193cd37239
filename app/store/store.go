/* store.go
 * Contains the Store struct and NewStore function. The store is the device local
 * durable state of the voting session: a small SQLite database holding exactly two
 * keys, the persisted voter identity and a JSON blob of the current selections.
 * The methods were split into identity.go and votes.go
 * Authors: Zachary Bower
 */

package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

const (
	keyVoterID    = "voter_id"
	keySelections = "selections"
)

type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// NewStore opens (creating if needed) the local state database inside dataDir.
// Preconditions: Receives the directory that holds device local state
// Postconditions: Returns a pointer to the Store with the schema in place, or an
// error if the directory or database could not be prepared
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("dataDir is required but none was provided")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "costume-vote.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open local state database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS local_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create local_state table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// getValue reads one key from local_state. A missing key is not an error and
// returns ("", false, nil)
func (s *Store) getValue(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read local state key %s: %w", key, err)
	}
	return value, true, nil
}

// setValue writes one key to local_state, overwriting any previous value
func (s *Store) setValue(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO local_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write local state key %s: %w", key, err)
	}
	return nil
}
