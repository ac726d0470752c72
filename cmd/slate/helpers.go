// Shared helpers for slate CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/voxelsmith/slate/internal/sqlite"
	"github.com/voxelsmith/slate/pkg/block"
	"github.com/voxelsmith/slate/pkg/catalog"
)

// attachCatalog resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachCatalog() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, sysErr(fmt.Errorf("resolve data dir: %w", err))
	}

	cfg := catalog.Config{
		Backend: catalog.BackendSQLite,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, sysErr(fmt.Errorf("attach catalog: %w", err))
	}

	return backend, nil
}

// parsePropertySpec builds a PropertyInfo from a CLI property spec of the form
//
//	name:bool[:default]
//	name:int:v1,v2,...:default
//	name:enum:v1,v2,...:default
func parsePropertySpec(spec string) (block.PropertyInfo, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return block.PropertyInfo{}, fmt.Errorf("invalid property spec %q (expected name:kind[:values:default])", spec)
	}
	name, kind := parts[0], block.PropertyKind(parts[1])

	switch kind {
	case block.KindBool:
		def := false
		if len(parts) > 2 && parts[2] != "" {
			v, err := strconv.ParseBool(parts[2])
			if err != nil {
				return block.PropertyInfo{}, fmt.Errorf("invalid bool default in %q: %w", spec, err)
			}
			def = v
		}
		return block.NewBoolProperty(name, def)

	case block.KindInt:
		if len(parts) != 4 {
			return block.PropertyInfo{}, fmt.Errorf("invalid int property spec %q (expected name:int:v1,v2,...:default)", spec)
		}
		var allowed []int
		for _, raw := range strings.Split(parts[2], ",") {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return block.PropertyInfo{}, fmt.Errorf("invalid int value %q in %q: %w", raw, spec, err)
			}
			allowed = append(allowed, v)
		}
		def, err := strconv.Atoi(parts[3])
		if err != nil {
			return block.PropertyInfo{}, fmt.Errorf("invalid int default in %q: %w", spec, err)
		}
		return block.NewIntProperty(name, def, allowed)

	case block.KindEnum:
		if len(parts) != 4 {
			return block.PropertyInfo{}, fmt.Errorf("invalid enum property spec %q (expected name:enum:v1,v2,...:default)", spec)
		}
		return block.NewEnumProperty(name, parts[3], strings.Split(parts[2], ","))

	default:
		return block.PropertyInfo{}, fmt.Errorf("unknown property kind %q in %q (valid: bool, int, enum)", parts[1], spec)
	}
}

// parseValue converts a raw CLI string into the dynamic type the property
// expects.
func parseValue(prop block.PropertyInfo, raw string) (any, error) {
	switch prop.Kind() {
	case block.KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("property %q expects a bool, got %q", prop.Name(), raw)
		}
		return v, nil
	case block.KindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("property %q expects an int, got %q", prop.Name(), raw)
		}
		return v, nil
	default:
		return raw, nil
	}
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
