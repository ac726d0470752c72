// Package sqlite implements the SQLite catalog backend for slate. Block
// schemas and the transaction journal are stored in a single database file
// under the configured data directory.
package sqlite

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/voxelsmith/slate/pkg/catalog"
)

//go:embed schema.sql
var schemaSQL string

// dbFileName is the catalog database file inside the data directory.
const dbFileName = "slate.db"

var _ catalog.Catalog = (*Backend)(nil)

// Backend implements the Catalog interface using SQLite. The mutex guards
// the attach/detach lifecycle; the *sql.DB handle is safe for concurrent
// use on its own.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   catalog.Config
	db       *sql.DB
}

// NewBackend creates a detached backend. Call Attach with a Config before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens the catalog database under config.DataDir, creating the
// directory and schema as needed. Existing schemas and journal entries are
// kept. Returns ErrAlreadyAttached if called while attached.
func (b *Backend) Attach(config catalog.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return catalog.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent; after Detach all operations
// return ErrCatalogDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// handle returns the open database handle, or ErrCatalogDetached.
func (b *Backend) handle() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, catalog.ErrCatalogDetached
	}
	return b.db, nil
}

// generateUUID generates a UUID v7 for journal record IDs, falling back to
// v4 if v7 generation fails.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
