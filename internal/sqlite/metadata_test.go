package sqlite

import (
	"errors"
	"testing"

	"github.com/voxelsmith/slate/pkg/block"
	"github.com/voxelsmith/slate/pkg/catalog"
)

// furnaceMetadata builds the registry used across the sqlite tests.
func furnaceMetadata(t *testing.T) *block.Metadata {
	t.Helper()
	facing, err := block.NewEnumProperty("facing", "north", []string{"north", "south", "east", "west"})
	if err != nil {
		t.Fatal(err)
	}
	lit, err := block.NewBoolProperty("lit", false)
	if err != nil {
		t.Fatal(err)
	}
	level, err := block.NewIntProperty("level", 0, []int{0, 1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	md, err := block.NewMetadata("slate:furnace", []block.PropertyInfo{facing, lit, level})
	if err != nil {
		t.Fatal(err)
	}
	return md
}

func TestSaveAndLoadMetadata(t *testing.T) {
	b := attachedBackend(t)
	md := furnaceMetadata(t)

	if err := b.SaveMetadata(md); err != nil {
		t.Fatalf("SaveMetadata failed: %v", err)
	}

	loaded, err := b.Metadata("slate:furnace")
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	if loaded.Type() != md.Type() {
		t.Errorf("Type() = %q, want %q", loaded.Type(), md.Type())
	}

	want := md.PropertyInfos()
	got := loaded.PropertyInfos()
	if len(got) != len(want) {
		t.Fatalf("loaded %d properties, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name() != want[i].Name() {
			t.Errorf("property[%d] name = %q, want %q", i, got[i].Name(), want[i].Name())
		}
		if got[i].Kind() != want[i].Kind() {
			t.Errorf("property[%d] kind = %q, want %q", i, got[i].Kind(), want[i].Kind())
		}
		if got[i].Default() != want[i].Default() {
			t.Errorf("property[%d] default = %v, want %v", i, got[i].Default(), want[i].Default())
		}
		gotVals, wantVals := got[i].AllowedValues(), want[i].AllowedValues()
		if len(gotVals) != len(wantVals) {
			t.Fatalf("property[%d] domain size = %d, want %d", i, len(gotVals), len(wantVals))
		}
		for j := range wantVals {
			if gotVals[j] != wantVals[j] {
				t.Errorf("property[%d] value[%d] = %v (%T), want %v (%T)",
					i, j, gotVals[j], gotVals[j], wantVals[j], wantVals[j])
			}
		}
	}
}

func TestLoadedMetadataPreservesOrdinals(t *testing.T) {
	b := attachedBackend(t)
	if err := b.SaveMetadata(furnaceMetadata(t)); err != nil {
		t.Fatal(err)
	}

	loaded, err := b.Metadata("slate:furnace")
	if err != nil {
		t.Fatal(err)
	}

	// Ordinal positions survive the round trip.
	for i, label := range []string{"north", "south", "east", "west"} {
		got, err := loaded.OrdinalOf("facing", label)
		if err != nil {
			t.Fatal(err)
		}
		if got != i {
			t.Errorf("OrdinalOf(facing, %q) = %d, want %d", label, got, i)
		}
	}

	// A state built over the loaded registry behaves like one built over
	// the original.
	s, err := block.NewState(loaded)
	if err != nil {
		t.Fatal(err)
	}
	next, err := s.WithOrdinal("facing", 2)
	if err != nil {
		t.Fatal(err)
	}
	got, err := next.Value("facing")
	if err != nil {
		t.Fatal(err)
	}
	if got != "east" {
		t.Errorf("facing = %v, want east", got)
	}
}

func TestSaveMetadataReplacesExistingSchema(t *testing.T) {
	b := attachedBackend(t)
	if err := b.SaveMetadata(furnaceMetadata(t)); err != nil {
		t.Fatal(err)
	}

	lit, err := block.NewBoolProperty("lit", true)
	if err != nil {
		t.Fatal(err)
	}
	replacement, err := block.NewMetadata("slate:furnace", []block.PropertyInfo{lit})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SaveMetadata(replacement); err != nil {
		t.Fatal(err)
	}

	loaded, err := b.Metadata("slate:furnace")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 1 {
		t.Errorf("Len() = %d, want 1", loaded.Len())
	}
	p, err := loaded.Property("lit")
	if err != nil {
		t.Fatal(err)
	}
	if p.Default() != true {
		t.Errorf("lit default = %v, want true", p.Default())
	}
}

func TestMetadataNotFound(t *testing.T) {
	b := attachedBackend(t)
	if _, err := b.Metadata("slate:unknown"); !errors.Is(err, catalog.ErrTypeNotFound) {
		t.Errorf("error = %v, want %v", err, catalog.ErrTypeNotFound)
	}
}

func TestListTypes(t *testing.T) {
	b := attachedBackend(t)

	types, err := b.ListTypes()
	if err != nil {
		t.Fatal(err)
	}
	if len(types) != 0 {
		t.Fatalf("fresh catalog has %d types, want 0", len(types))
	}

	if err := b.SaveMetadata(furnaceMetadata(t)); err != nil {
		t.Fatal(err)
	}
	stone, err := block.NewMetadata("slate:stone", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SaveMetadata(stone); err != nil {
		t.Fatal(err)
	}

	types, err = b.ListTypes()
	if err != nil {
		t.Fatal(err)
	}
	want := []block.Type{"slate:furnace", "slate:stone"}
	if len(types) != len(want) {
		t.Fatalf("ListTypes() = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("ListTypes()[%d] = %q, want %q", i, types[i], want[i])
		}
	}
}

func TestDeleteType(t *testing.T) {
	b := attachedBackend(t)
	if err := b.SaveMetadata(furnaceMetadata(t)); err != nil {
		t.Fatal(err)
	}

	if err := b.DeleteType("slate:furnace"); err != nil {
		t.Fatalf("DeleteType failed: %v", err)
	}
	if _, err := b.Metadata("slate:furnace"); !errors.Is(err, catalog.ErrTypeNotFound) {
		t.Errorf("error after delete = %v, want %v", err, catalog.ErrTypeNotFound)
	}
	if err := b.DeleteType("slate:furnace"); !errors.Is(err, catalog.ErrTypeNotFound) {
		t.Errorf("second delete error = %v, want %v", err, catalog.ErrTypeNotFound)
	}
}
