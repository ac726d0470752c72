package sqlite

import (
	"testing"

	"github.com/voxelsmith/slate/pkg/block"
)

func TestSeedRegistersBuiltIns(t *testing.T) {
	b := attachedBackend(t)
	if err := Seed(b); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	types, err := b.ListTypes()
	if err != nil {
		t.Fatal(err)
	}
	want := []block.Type{"slate:air", "slate:furnace", "slate:lamp", "slate:stone"}
	if len(types) != len(want) {
		t.Fatalf("got %d types %v, want %d", len(types), types, len(want))
	}
	for i, typ := range want {
		if types[i] != typ {
			t.Errorf("types[%d] = %q, want %q", i, types[i], typ)
		}
	}

	md, err := b.Metadata("slate:furnace")
	if err != nil {
		t.Fatal(err)
	}
	if !md.HasProperty("facing") || !md.HasProperty("lit") {
		t.Errorf("furnace properties = %v", md.PropertyInfos())
	}
	if ord, err := md.OrdinalOf("facing", "east"); err != nil || ord != 2 {
		t.Errorf("OrdinalOf(facing, east) = %d, %v, want 2, nil", ord, err)
	}
}

func TestSeedKeepsExistingSchemas(t *testing.T) {
	b := attachedBackend(t)

	// A user-modified furnace schema must survive a re-seed.
	facing, err := block.NewEnumProperty("facing", "up", []string{"up", "down"})
	if err != nil {
		t.Fatal(err)
	}
	md, err := block.NewMetadata("slate:furnace", []block.PropertyInfo{facing})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SaveMetadata(md); err != nil {
		t.Fatal(err)
	}

	if err := Seed(b); err != nil {
		t.Fatal(err)
	}
	loaded, err := b.Metadata("slate:furnace")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 1 || loaded.HasProperty("lit") {
		t.Errorf("re-seed clobbered modified schema: %v", loaded.PropertyInfos())
	}
}
