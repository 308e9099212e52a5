package store

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store against a single SQLite database file.
//
// The store is accessed from the host process only; the display process
// reaches it over the bridge. A single pooled connection keeps the write
// path's BEGIN/COMMIT framing serialized by the engine itself.
type SQLiteStore struct {
	db         *sql.DB
	dbPath     string
	snapshot   string
	ftsEnabled bool
	mu         sync.Mutex
	initOnce   sync.Once
}

// NewSQLiteStore creates a store for the database at dbPath. If snapshot
// is non-empty and dbPath does not yet exist, Init copies the snapshot
// into place before opening. Nothing touches the filesystem until Init.
func NewSQLiteStore(dbPath, snapshot string) *SQLiteStore {
	return &SQLiteStore{
		dbPath:   dbPath,
		snapshot: snapshot,
	}
}

// Init creates directories, copies the pre-seeded snapshot when the
// destination file is absent, opens the database, and bootstraps the
// schema. Idempotent; any failure is fatal to this store instance and the
// caller is expected to fall back to the in-memory store.
func (s *SQLiteStore) Init() error {
	var initErr error
	s.initOnce.Do(func() {
		if err := os.MkdirAll(filepath.Dir(s.dbPath), 0o755); err != nil {
			initErr = fmt.Errorf("create db directory: %w", err)
			return
		}

		if err := s.copySnapshot(); err != nil {
			initErr = err
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("open database: %w", err)
			return
		}
		// One connection: the engine's own transaction isolation is the
		// only serialization the write path relies on.
		db.SetMaxOpenConns(1)

		if err := db.Ping(); err != nil {
			db.Close()
			initErr = fmt.Errorf("ping database: %w", err)
			return
		}

		for _, pragma := range []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA foreign_keys=ON",
		} {
			if _, err := db.Exec(pragma); err != nil {
				db.Close()
				initErr = fmt.Errorf("%s: %w", pragma, err)
				return
			}
		}

		s.db = db
		if err := s.bootstrapSchema(); err != nil {
			db.Close()
			s.db = nil
			initErr = err
			return
		}
	})
	return initErr
}

// copySnapshot copies the bundled pre-seeded database into place when the
// user database does not exist yet. A missing snapshot is not an error.
func (s *SQLiteStore) copySnapshot() error {
	if s.snapshot == "" {
		return nil
	}
	if _, err := os.Stat(s.dbPath); err == nil {
		return nil
	}
	src, err := os.Open(s.snapshot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(s.dbPath)
	if err != nil {
		return fmt.Errorf("create database from snapshot: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(s.dbPath)
		return fmt.Errorf("copy snapshot: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("flush snapshot copy: %w", err)
	}
	log.Printf("seeded database from snapshot %s", s.snapshot)
	return nil
}

// bootstrapSchema runs the fixed ordered statement set. The FTS5 portion
// is probed separately: a build without FTS5 keeps the relational store
// and downgrades search to a LIKE scan.
func (s *SQLiteStore) bootstrapSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("schema bootstrap: %w", err)
		}
	}

	s.ftsEnabled = true
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			log.Printf("Warning: full-text index unavailable, using scan search: %v", err)
			s.ftsEnabled = false
			break
		}
	}
	return nil
}

// FTSEnabled reports whether the full-text index was created.
func (s *SQLiteStore) FTSEnabled() bool {
	return s.ftsEnabled
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// transaction runs fn inside BEGIN/COMMIT, rolling the whole unit back on
// any error. All multi-statement writes go through here.
func (s *SQLiteStore) transaction(fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrNotInitialized
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("Warning: rollback failed: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// CommandCount returns the number of rows in the commands table.
func (s *SQLiteStore) CommandCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return 0, ErrNotInitialized
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM commands").Scan(&n); err != nil {
		return 0, fmt.Errorf("count commands: %w", err)
	}
	return n, nil
}
