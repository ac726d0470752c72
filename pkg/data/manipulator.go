package data

import "errors"

// Manipulator identifiers for the built-in manipulators.
const (
	ManipulatorHealth    = "slate:health"
	ManipulatorPlaceable = "slate:placeable"
)

// Manipulator errors.
var (
	ErrInvalidHealth = errors.New("invalid health values")
)

// Manipulator is an opaque typed payload attached to a state holder. A holder
// stores manipulators by ID and hands out copies only, so a retrieved
// manipulator can never mutate the holder it came from.
type Manipulator interface {
	// ID returns the stable identifier of the manipulator type.
	ID() string

	// Clone returns an independent copy.
	Clone() Manipulator
}

// HealthData carries the health information of a living state holder.
// It is immutable; Damage returns a new HealthData.
type HealthData struct {
	health    float64
	maxHealth float64
}

// NewHealthData constructs a HealthData. Returns ErrInvalidHealth unless
// 0 <= health <= maxHealth and maxHealth > 0.
func NewHealthData(health, maxHealth float64) (HealthData, error) {
	if maxHealth <= 0 || health < 0 || health > maxHealth {
		return HealthData{}, ErrInvalidHealth
	}
	return HealthData{health: health, maxHealth: maxHealth}, nil
}

// Health returns the current health amount.
func (h HealthData) Health() float64 {
	return h.health
}

// MaxHealth returns the maximum health amount.
func (h HealthData) MaxHealth() float64 {
	return h.maxHealth
}

// Damage returns a copy with the given amount subtracted from health,
// floored at zero.
func (h HealthData) Damage(amount float64) HealthData {
	next := h.health - amount
	if next < 0 {
		next = 0
	}
	return HealthData{health: next, maxHealth: h.maxHealth}
}

// ID implements Manipulator.
func (h HealthData) ID() string {
	return ManipulatorHealth
}

// Clone implements Manipulator.
func (h HealthData) Clone() Manipulator {
	return h
}

// PlaceableData restricts where an item holder may be placed: the holder can
// only be placed against the block types listed here.
type PlaceableData struct {
	placeable []string
}

// NewPlaceableData constructs a PlaceableData from block type ids. Duplicates
// are dropped; first occurrence order is kept.
func NewPlaceableData(blockTypes ...string) PlaceableData {
	seen := make(map[string]bool, len(blockTypes))
	kept := make([]string, 0, len(blockTypes))
	for _, bt := range blockTypes {
		if bt == "" || seen[bt] {
			continue
		}
		seen[bt] = true
		kept = append(kept, bt)
	}
	return PlaceableData{placeable: kept}
}

// Placeable returns a copy of the allowed block type ids.
func (p PlaceableData) Placeable() []string {
	cloned := make([]string, len(p.placeable))
	copy(cloned, p.placeable)
	return cloned
}

// Contains reports whether the given block type id is allowed.
func (p PlaceableData) Contains(blockType string) bool {
	for _, bt := range p.placeable {
		if bt == blockType {
			return true
		}
	}
	return false
}

// ID implements Manipulator.
func (p PlaceableData) ID() string {
	return ManipulatorPlaceable
}

// Clone implements Manipulator.
func (p PlaceableData) Clone() Manipulator {
	return PlaceableData{placeable: p.Placeable()}
}
