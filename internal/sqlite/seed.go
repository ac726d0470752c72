// This file seeds the built-in block schemas registered by `slate init`.
package sqlite

import (
	"fmt"

	"github.com/voxelsmith/slate/pkg/block"
	"github.com/voxelsmith/slate/pkg/catalog"
)

// builtInSchema describes one block type seeded on init.
type builtInSchema struct {
	blockType block.Type
	build     func() ([]block.PropertyInfo, error)
}

// builtInSchemas defines the block types every fresh catalog starts with.
var builtInSchemas = []builtInSchema{
	{
		blockType: "slate:air",
		build: func() ([]block.PropertyInfo, error) {
			return nil, nil
		},
	},
	{
		blockType: "slate:stone",
		build: func() ([]block.PropertyInfo, error) {
			variant, err := block.NewEnumProperty("variant", "smooth", []string{"smooth", "cobbled", "mossy"})
			if err != nil {
				return nil, err
			}
			return []block.PropertyInfo{variant}, nil
		},
	},
	{
		blockType: "slate:furnace",
		build: func() ([]block.PropertyInfo, error) {
			facing, err := block.NewEnumProperty("facing", "north", []string{"north", "south", "east", "west"})
			if err != nil {
				return nil, err
			}
			lit, err := block.NewBoolProperty("lit", false)
			if err != nil {
				return nil, err
			}
			return []block.PropertyInfo{facing, lit}, nil
		},
	},
	{
		blockType: "slate:lamp",
		build: func() ([]block.PropertyInfo, error) {
			level, err := block.NewIntProperty("level", 0, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15})
			if err != nil {
				return nil, err
			}
			powered, err := block.NewBoolProperty("powered", false)
			if err != nil {
				return nil, err
			}
			return []block.PropertyInfo{level, powered}, nil
		},
	},
}

// Seed registers the built-in block schemas, skipping types that already
// exist so re-running init never clobbers a modified schema.
func Seed(c catalog.Catalog) error {
	for _, s := range builtInSchemas {
		if _, err := c.Metadata(s.blockType); err == nil {
			continue
		}
		props, err := s.build()
		if err != nil {
			return fmt.Errorf("building schema for %s: %w", s.blockType, err)
		}
		md, err := block.NewMetadata(s.blockType, props)
		if err != nil {
			return fmt.Errorf("registering %s: %w", s.blockType, err)
		}
		if err := c.SaveMetadata(md); err != nil {
			return fmt.Errorf("saving %s: %w", s.blockType, err)
		}
	}
	return nil
}
