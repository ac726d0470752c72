// Shared helpers for slate integration tests.
package integration

import (
	"testing"

	"github.com/voxelsmith/slate/internal/sqlite"
	"github.com/voxelsmith/slate/pkg/block"
	"github.com/voxelsmith/slate/pkg/catalog"
)

// newAttachedBackend creates a SQLite backend attached to a fresh temp
// directory. Callers must defer backend.Detach().
func newAttachedBackend(t *testing.T) (*sqlite.Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := sqlite.NewBackend()
	if err := b.Attach(catalog.Config{Backend: catalog.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	return b, dir
}

// furnaceSchema builds the furnace metadata used across the flow tests:
// an enum facing, a bool lit flag, and a four-step fuel level.
func furnaceSchema(t *testing.T) *block.Metadata {
	t.Helper()
	facing, err := block.NewEnumProperty("facing", "north", []string{"north", "south", "east", "west"})
	if err != nil {
		t.Fatalf("NewEnumProperty: %v", err)
	}
	lit, err := block.NewBoolProperty("lit", false)
	if err != nil {
		t.Fatalf("NewBoolProperty: %v", err)
	}
	fuel, err := block.NewIntProperty("fuel", 0, []int{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("NewIntProperty: %v", err)
	}
	md, err := block.NewMetadata("demo:furnace", []block.PropertyInfo{facing, lit, fuel})
	if err != nil {
		t.Fatalf("NewMetadata: %v", err)
	}
	return md
}
