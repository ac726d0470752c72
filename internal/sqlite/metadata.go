// This file implements schema registry persistence: saving and loading the
// Metadata registries that states are validated against.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/voxelsmith/slate/pkg/block"
	"github.com/voxelsmith/slate/pkg/catalog"
)

// SaveMetadata persists a registry, replacing any stored schema for the same
// block type. Property order and allowed-value order are preserved: the
// stored positions are the ordinals legacy callers index with.
func (b *Backend) SaveMetadata(md *block.Metadata) error {
	db, err := b.handle()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	bt := string(md.Type())
	if _, err := tx.Exec("DELETE FROM block_types WHERE block_type = ?", bt); err != nil {
		return fmt.Errorf("clearing block type %s: %w", bt, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		"INSERT INTO block_types (block_type, created_at) VALUES (?, ?)", bt, now,
	); err != nil {
		return fmt.Errorf("inserting block type %s: %w", bt, err)
	}

	for pos, p := range md.PropertyInfos() {
		def, err := json.Marshal(p.Default())
		if err != nil {
			return fmt.Errorf("encoding default of %s: %w", p.Name(), err)
		}
		if _, err := tx.Exec(
			"INSERT INTO properties (block_type, name, kind, default_value, position) VALUES (?, ?, ?, ?, ?)",
			bt, p.Name(), string(p.Kind()), string(def), pos,
		); err != nil {
			return fmt.Errorf("inserting property %s: %w", p.Name(), err)
		}
		for ordinal, v := range p.AllowedValues() {
			enc, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encoding allowed value of %s: %w", p.Name(), err)
			}
			if _, err := tx.Exec(
				"INSERT INTO allowed_values (block_type, property_name, position, value) VALUES (?, ?, ?, ?)",
				bt, p.Name(), ordinal, string(enc),
			); err != nil {
				return fmt.Errorf("inserting allowed value of %s: %w", p.Name(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema for %s: %w", bt, err)
	}
	return nil
}

// Metadata loads the stored registry for a block type and rebuilds it
// through the block constructors, so every loaded schema satisfies the same
// invariants as a freshly registered one.
func (b *Backend) Metadata(blockType block.Type) (*block.Metadata, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	bt := string(blockType)
	var exists int
	err = db.QueryRow("SELECT 1 FROM block_types WHERE block_type = ?", bt).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, catalog.ErrTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up block type %s: %w", bt, err)
	}

	rows, err := db.Query(
		"SELECT name, kind, default_value FROM properties WHERE block_type = ? ORDER BY position",
		bt,
	)
	if err != nil {
		return nil, fmt.Errorf("querying properties of %s: %w", bt, err)
	}
	defer rows.Close()

	var props []block.PropertyInfo
	for rows.Next() {
		var name, kind, defRaw string
		if err := rows.Scan(&name, &kind, &defRaw); err != nil {
			return nil, fmt.Errorf("scanning property of %s: %w", bt, err)
		}
		p, err := hydrateProperty(db, bt, name, block.PropertyKind(kind), defRaw)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties of %s: %w", bt, err)
	}

	return block.NewMetadata(blockType, props)
}

// hydrateProperty rebuilds one PropertyInfo from its stored rows.
func hydrateProperty(db *sql.DB, bt, name string, kind block.PropertyKind, defRaw string) (block.PropertyInfo, error) {
	rows, err := db.Query(
		"SELECT value FROM allowed_values WHERE block_type = ? AND property_name = ? ORDER BY position",
		bt, name,
	)
	if err != nil {
		return block.PropertyInfo{}, fmt.Errorf("querying allowed values of %s: %w", name, err)
	}
	defer rows.Close()

	var raws []string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return block.PropertyInfo{}, fmt.Errorf("scanning allowed value of %s: %w", name, err)
		}
		raws = append(raws, raw)
	}
	if err := rows.Err(); err != nil {
		return block.PropertyInfo{}, fmt.Errorf("iterating allowed values of %s: %w", name, err)
	}

	switch kind {
	case block.KindBool:
		var def bool
		if err := json.Unmarshal([]byte(defRaw), &def); err != nil {
			return block.PropertyInfo{}, fmt.Errorf("decoding bool default of %s: %w", name, err)
		}
		return block.NewBoolProperty(name, def)
	case block.KindInt:
		var def int
		if err := json.Unmarshal([]byte(defRaw), &def); err != nil {
			return block.PropertyInfo{}, fmt.Errorf("decoding int default of %s: %w", name, err)
		}
		allowed := make([]int, 0, len(raws))
		for _, raw := range raws {
			var v int
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return block.PropertyInfo{}, fmt.Errorf("decoding int value of %s: %w", name, err)
			}
			allowed = append(allowed, v)
		}
		return block.NewIntProperty(name, def, allowed)
	case block.KindEnum:
		var def string
		if err := json.Unmarshal([]byte(defRaw), &def); err != nil {
			return block.PropertyInfo{}, fmt.Errorf("decoding enum default of %s: %w", name, err)
		}
		allowed := make([]string, 0, len(raws))
		for _, raw := range raws {
			var v string
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return block.PropertyInfo{}, fmt.Errorf("decoding enum label of %s: %w", name, err)
			}
			allowed = append(allowed, v)
		}
		return block.NewEnumProperty(name, def, allowed)
	default:
		return block.PropertyInfo{}, fmt.Errorf("stored property %s has unknown kind %q", name, kind)
	}
}

// ListTypes returns all registered block types, ordered by name.
func (b *Backend) ListTypes() ([]block.Type, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT block_type FROM block_types ORDER BY block_type")
	if err != nil {
		return nil, fmt.Errorf("listing block types: %w", err)
	}
	defer rows.Close()

	var types []block.Type
	for rows.Next() {
		var bt string
		if err := rows.Scan(&bt); err != nil {
			return nil, fmt.Errorf("scanning block type: %w", err)
		}
		types = append(types, block.Type(bt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating block types: %w", err)
	}
	return types, nil
}

// DeleteType removes a block type and, via cascade, its properties and
// allowed values. Journal entries are kept: they are history.
func (b *Backend) DeleteType(blockType block.Type) error {
	db, err := b.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM block_types WHERE block_type = ?", string(blockType))
	if err != nil {
		return fmt.Errorf("deleting block type %s: %w", blockType, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting block type %s: %w", blockType, err)
	}
	if n == 0 {
		return catalog.ErrTypeNotFound
	}
	return nil
}
