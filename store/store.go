// Package store persists completed runs in DuckDB, keyed by their content
// digest. A stored run carries enough to reproduce it (program, input,
// ceilings) plus the full CBOR-encoded snapshot trace.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/chazu/turmite/vm"
	"github.com/chazu/turmite/vm/trace"
)

// ErrRunNotFound indicates no stored run has the requested digest.
var ErrRunNotFound = errors.New("run not found")

// Store is a digest-keyed archive of execution traces.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the trace database at path. An empty
// path opens an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		digest   TEXT PRIMARY KEY,
		source   TEXT NOT NULL,
		input    BLOB,
		state    TEXT NOT NULL,
		executed BIGINT NOT NULL,
		output   BLOB,
		trace    BLOB NOT NULL,
		created  TIMESTAMP NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: creating runs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RunInfo summarizes one stored run.
type RunInfo struct {
	Digest   string
	State    string
	Executed int
	Created  time.Time
}

// Save archives a completed run and returns its digest. Saving the same
// (program, input, limits) triple again replaces the stored trace.
func (s *Store) Save(source string, input []byte, limits vm.Limits, res *vm.ExecutionResult) (string, error) {
	blob, err := trace.MarshalResult(res)
	if err != nil {
		return "", fmt.Errorf("store: encoding trace: %w", err)
	}
	digest := trace.FormatDigest(trace.RunDigest(source, input, limits))

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO runs (digest, source, input, state, executed, output, trace, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		digest, source, input, res.State.String(), res.Executed, res.Output, blob, time.Now(),
	)
	if err != nil {
		return "", fmt.Errorf("store: saving run %s: %w", digest, err)
	}
	return digest, nil
}

// Load returns the full execution result stored under digest.
func (s *Store) Load(digest string) (*vm.ExecutionResult, error) {
	blob, err := s.LoadTrace(digest)
	if err != nil {
		return nil, err
	}
	res, err := trace.UnmarshalResult(blob)
	if err != nil {
		return nil, fmt.Errorf("store: decoding trace %s: %w", digest, err)
	}
	return res, nil
}

// LoadTrace returns the raw canonical CBOR trace stored under digest.
func (s *Store) LoadTrace(digest string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var blob []byte
	err := s.db.QueryRow(`SELECT trace FROM runs WHERE digest = ?`, digest).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: loading run %s: %w", digest, err)
	}
	return blob, nil
}

// List returns summaries of all stored runs, newest first.
func (s *Store) List() ([]RunInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT digest, state, executed, created FROM runs ORDER BY created DESC, digest`)
	if err != nil {
		return nil, fmt.Errorf("store: listing runs: %w", err)
	}
	defer rows.Close()

	var infos []RunInfo
	for rows.Next() {
		var info RunInfo
		if err := rows.Scan(&info.Digest, &info.State, &info.Executed, &info.Created); err != nil {
			return nil, fmt.Errorf("store: scanning run row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes the run stored under digest. Deleting an absent digest is
// not an error.
func (s *Store) Delete(digest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM runs WHERE digest = ?`, digest); err != nil {
		return fmt.Errorf("store: deleting run %s: %w", digest, err)
	}
	return nil
}
