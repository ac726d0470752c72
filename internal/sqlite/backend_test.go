package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/voxelsmith/slate/pkg/catalog"
)

// testConfig returns a sqlite config rooted in a fresh temp dir.
func testConfig(t *testing.T) catalog.Config {
	t.Helper()
	return catalog.Config{
		Backend: catalog.BackendSQLite,
		DataDir: t.TempDir(),
	}
}

// attachedBackend returns an attached backend that detaches on cleanup.
func attachedBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	if err := b.Attach(testConfig(t)); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackendAttach(t *testing.T) {
	config := testConfig(t)
	b := NewBackend()

	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	dbPath := filepath.Join(config.DataDir, dbFileName)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("%s not created", dbFileName)
	}

	if err := b.Attach(config); !errors.Is(err, catalog.ErrAlreadyAttached) {
		t.Errorf("double attach error = %v, want %v", err, catalog.ErrAlreadyAttached)
	}
}

func TestBackendAttachValidatesConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(catalog.Config{Backend: "postgres", DataDir: t.TempDir()})
	if !errors.Is(err, catalog.ErrBackendUnknown) {
		t.Errorf("Attach error = %v, want %v", err, catalog.ErrBackendUnknown)
	}
}

func TestBackendDetach(t *testing.T) {
	b := NewBackend()
	if err := b.Attach(testConfig(t)); err != nil {
		t.Fatal(err)
	}

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	// Idempotent.
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach failed: %v", err)
	}

	// Operations on a detached backend fail.
	if _, err := b.ListTypes(); !errors.Is(err, catalog.ErrCatalogDetached) {
		t.Errorf("ListTypes error = %v, want %v", err, catalog.ErrCatalogDetached)
	}
	if _, err := b.Metadata("slate:stone"); !errors.Is(err, catalog.ErrCatalogDetached) {
		t.Errorf("Metadata error = %v, want %v", err, catalog.ErrCatalogDetached)
	}
}

func TestBackendPersistsAcrossAttachCycles(t *testing.T) {
	config := testConfig(t)

	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatal(err)
	}
	md := furnaceMetadata(t)
	if err := b.SaveMetadata(md); err != nil {
		t.Fatal(err)
	}
	if err := b.Detach(); err != nil {
		t.Fatal(err)
	}

	// A new backend over the same data dir sees the schema.
	b2 := NewBackend()
	if err := b2.Attach(config); err != nil {
		t.Fatal(err)
	}
	defer b2.Detach()

	loaded, err := b2.Metadata(md.Type())
	if err != nil {
		t.Fatalf("Metadata after re-attach: %v", err)
	}
	if loaded.Len() != md.Len() {
		t.Errorf("loaded %d properties, want %d", loaded.Len(), md.Len())
	}
}
