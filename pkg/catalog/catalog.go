// Package catalog defines the backend-agnostic storage contract for block
// schemas and the transaction journal. A Catalog persists the Metadata
// registries consulted by state snapshots and records transaction Results
// for later inspection and undo.
package catalog

import (
	"errors"
	"time"

	"github.com/voxelsmith/slate/pkg/block"
	"github.com/voxelsmith/slate/pkg/data"
)

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Catalog lifecycle and lookup errors.
var (
	ErrCatalogDetached      = errors.New("catalog is detached")
	ErrAlreadyAttached      = errors.New("catalog is already attached")
	ErrTypeNotFound         = errors.New("block type not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrInvalidTransactionID = errors.New("invalid transaction ID")
)

// Config holds backend selection and parameters for Catalog.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// Catalog is the storage contract for schema registration and the
// transaction journal. Callers attach to a backend, work with it, and
// detach when done.
type Catalog interface {
	// Attach connects the catalog to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, operations return ErrCatalogDetached.
	Detach() error

	// SaveMetadata persists a schema registry, replacing any previously
	// stored registry for the same block type.
	SaveMetadata(md *block.Metadata) error

	// Metadata loads the stored registry for a block type.
	// Returns ErrTypeNotFound if the type is unregistered.
	Metadata(blockType block.Type) (*block.Metadata, error)

	// ListTypes returns all registered block types, ordered by name.
	ListTypes() ([]block.Type, error)

	// DeleteType removes a registered block type and its properties.
	// Returns ErrTypeNotFound if the type is unregistered.
	DeleteType(blockType block.Type) error

	// RecordResult appends a transaction result to the journal and
	// returns the stored record.
	RecordResult(blockType block.Type, result data.Result) (TransactionRecord, error)

	// Transactions returns journal records, newest first. A non-positive
	// limit returns all records.
	Transactions(limit int) ([]TransactionRecord, error)

	// Transaction returns the journal record with the given ID.
	// Returns ErrTransactionNotFound if no such record exists.
	Transaction(id string) (TransactionRecord, error)
}

// TransactionRecord is a journal entry: one transaction Result together with
// its identity, subject block type, and creation time. The value slices
// preserve the result's application order, which is what undo machinery
// replays in reverse.
type TransactionRecord struct {
	ID        string
	BlockType block.Type
	Kind      data.ResultKind
	Succeeded []data.Value
	Replaced  []data.Value
	Rejected  []data.Value
	CreatedAt time.Time
}

// Result rebuilds the immutable transaction Result held by this record.
func (r TransactionRecord) Result() (data.Result, error) {
	b := data.NewBuilder().Result(r.Kind)
	if r.Succeeded != nil {
		b.Success(r.Succeeded...)
	}
	if r.Replaced != nil {
		b.Replace(r.Replaced...)
	}
	if r.Rejected != nil {
		b.Reject(r.Rejected...)
	}
	return b.Build()
}
