// Package localstore is the durable local mirror behind the recipe cache,
// the offline queue, timers and the cooking log. It is a flat key/value
// table with JSON values, namespaced by stable string keys.
//
// Reads and writes never propagate storage errors to callers: a broken or
// unavailable store degrades to "no data" on read and "no-op" on write so
// the rest of the app keeps working on in-memory state. Failures are logged.
package localstore

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Store is a namespaced JSON key/value store backed by SQLite.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (and if needed creates) the store at path. Use ":memory:" for
// an ephemeral store in tests.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// The store is accessed from the tick loop and user goroutines; a single
	// connection sidesteps SQLITE_BUSY on concurrent writers.
	db.SetMaxOpenConns(1)
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, log: log.With().Str("component", "localstore").Logger()}, nil
}

// OpenDefault opens the store in the per-user data directory.
func OpenDefault(log zerolog.Logger) (*Store, error) {
	path, err := DBPath()
	if err != nil {
		return nil, err
	}
	return Open(path, log)
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS KV (
        Key TEXT PRIMARY KEY,
        Value TEXT NOT NULL,
        UpdatedAt TIMESTAMP NOT NULL
    );`)
	return err
}

// Get unmarshals the value stored under key into v. It returns false when
// the key is absent, the value is malformed, or the store is unavailable.
func (s *Store) Get(key string, v any) bool {
	var raw string
	err := s.db.QueryRow(`SELECT Value FROM KV WHERE Key = ?`, key).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			s.log.Debug().Err(err).Str("key", key).Msg("read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("malformed value")
		return false
	}
	return true
}

// Set stores v under key, replacing any previous value. Failures are
// swallowed after logging.
func (s *Store) Set(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("marshal failed")
		return
	}
	_, err = s.db.Exec(
		`INSERT INTO KV (Key, Value, UpdatedAt) VALUES (?, ?, ?)
         ON CONFLICT(Key) DO UPDATE SET Value = excluded.Value, UpdatedAt = excluded.UpdatedAt`,
		key, string(raw), time.Now().UTC(),
	)
	if err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("write failed")
	}
}

// Delete removes key. Missing keys and storage failures are no-ops.
func (s *Store) Delete(key string) {
	if _, err := s.db.Exec(`DELETE FROM KV WHERE Key = ?`, key); err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("delete failed")
	}
}

// Keys returns all stored keys with the given prefix, for diagnostics.
func (s *Store) Keys(prefix string) []string {
	rows, err := s.db.Query(`SELECT Key FROM KV WHERE Key LIKE ? ORDER BY Key`, prefix+"%")
	if err != nil {
		s.log.Debug().Err(err).Str("prefix", prefix).Msg("keys query failed")
		return nil
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return keys
		}
		keys = append(keys, k)
	}
	return keys
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
