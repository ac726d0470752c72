package block

import (
	"errors"
	"fmt"
	"sort"

	"github.com/voxelsmith/slate/pkg/data"
)

// State errors.
var (
	ErrNilMetadata    = errors.New("metadata must not be nil")
	ErrInvalidOrdinal = errors.New("ordinal out of range")
	ErrTypeMismatch   = errors.New("value type does not match property kind")
)

// State is an immutable snapshot of a block: its type, one value per
// registered property, and any attached data manipulators. All
// mutation-shaped operations return a new State; the receiver is never
// altered and remains valid and shareable. The Metadata reachable from a
// State is identical by pointer across every snapshot derived from it, since
// the schema never changes along a mutation chain.
type State struct {
	md     *Metadata
	values map[string]any
	manips map[string]data.Manipulator
}

// NewState returns a snapshot with every registered property at its default
// value and no manipulators attached.
func NewState(md *Metadata) (State, error) {
	if md == nil {
		return State{}, ErrNilMetadata
	}
	values := make(map[string]any, md.Len())
	for _, p := range md.props {
		values[p.Name()] = p.Default()
	}
	return State{md: md, values: values}, nil
}

// Type returns the block type of this state.
func (s State) Type() Type {
	return s.md.Type()
}

// Metadata returns the schema registry this state was built against. The
// pointer is shared, not copied: the registry itself is immutable.
func (s State) Metadata() *Metadata {
	return s.md
}

// Value returns the current value of the named property.
// Returns ErrPropertyNotFound if the name is unregistered.
func (s State) Value(name string) (any, error) {
	v, ok := s.values[name]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	return v, nil
}

// Values returns a copy of all current property values keyed by name.
func (s State) Values() map[string]any {
	cloned := make(map[string]any, len(s.values))
	for k, v := range s.values {
		cloned[k] = v
	}
	return cloned
}

// With returns a new State with the named property set to value.
// Returns ErrPropertyNotFound for an unregistered name, ErrTypeMismatch when
// the dynamic type does not match the property kind, and ErrValueNotAllowed
// when the value is outside the property's domain.
func (s State) With(name string, value any) (State, error) {
	p, err := s.md.Property(name)
	if err != nil {
		return State{}, err
	}
	if !p.checkType(value) {
		return State{}, ErrTypeMismatch
	}
	if !p.Contains(value) {
		return State{}, ErrValueNotAllowed
	}
	next := s.clone()
	next.values[name] = value
	return next, nil
}

// WithOrdinal returns a new State with the named enum property set to the
// domain label at the given ordinal. The ordinal is never clamped: an
// out-of-range ordinal yields ErrInvalidOrdinal. Exists for legacy
// index-based access; prefer With.
func (s State) WithOrdinal(name string, ordinal int) (State, error) {
	p, err := s.md.Property(name)
	if err != nil {
		return State{}, err
	}
	if p.Kind() != KindEnum {
		return State{}, ErrNotEnum
	}
	if ordinal < 0 || ordinal >= p.Len() {
		return State{}, ErrInvalidOrdinal
	}
	next := s.clone()
	next.values[name] = p.valueAt(ordinal)
	return next, nil
}

// IsEnumOrdinalValid reports whether the named property is enum-typed and
// ordinal addresses one of its labels. False for unregistered names: legacy
// callers probe optimistically.
func (s State) IsEnumOrdinalValid(name string, ordinal int) bool {
	p, err := s.md.Property(name)
	if err != nil || p.Kind() != KindEnum {
		return false
	}
	return s.md.IsOrdinalValid(name, ordinal)
}

// HasEnumProperty reports whether the block carries a property with the
// given name and that property is enum-typed. Never errors.
func (s State) HasEnumProperty(name string) bool {
	p, err := s.md.Property(name)
	return err == nil && p.Kind() == KindEnum
}

// EnumOrdinal returns the ordinal of the named enum property's current
// value. Callers are expected to have probed with HasEnumProperty first;
// unregistered names yield ErrPropertyNotFound and non-enum properties
// ErrNotEnum. Exists for legacy index-based access.
func (s State) EnumOrdinal(name string) (int, error) {
	v, err := s.Value(name)
	if err != nil {
		return 0, err
	}
	label, ok := v.(string)
	if !ok {
		return 0, ErrNotEnum
	}
	return s.md.OrdinalOf(name, label)
}

// WithManipulator returns a new State carrying a copy of the given
// manipulator, replacing any manipulator with the same ID.
func (s State) WithManipulator(m data.Manipulator) State {
	next := s.clone()
	next.manips[m.ID()] = m.Clone()
	return next
}

// Manipulator returns a copy of the manipulator with the given ID, if any.
func (s State) Manipulator(id string) (data.Manipulator, bool) {
	m, ok := s.manips[id]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// ManipulatorIDs returns the IDs of all attached manipulators, sorted.
func (s State) ManipulatorIDs() []string {
	ids := make([]string, 0, len(s.manips))
	for id := range s.manips {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Offer applies a batch of keyed values and records the outcome as a
// transaction Result. Per value: an unregistered key or a type mismatch is
// rejected and escalates the result kind to error; a value outside the
// property's domain is rejected as an ordinary failure; an applied value is
// recorded as successful alongside the prior value it replaced, in
// application order. Values after a rejection are still attempted. The
// returned State reflects only the successful applications; an error is
// returned solely for builder protocol misuse such as a zero Value.
func (s State) Offer(values ...data.Value) (State, data.Result, error) {
	next := s
	b := data.NewBuilder()
	kind := data.KindSuccess
	for _, v := range values {
		if v.IsZero() {
			return s, data.Result{}, data.ErrZeroValue
		}
		p, err := s.md.Property(v.Key())
		if err != nil {
			b.Reject(v)
			kind = data.KindError
			continue
		}
		if !p.checkType(v.Get()) {
			b.Reject(v)
			kind = data.KindError
			continue
		}
		if !p.Contains(v.Get()) {
			b.Reject(v)
			if kind != data.KindError {
				kind = data.KindFailure
			}
			continue
		}
		old := next.values[v.Key()]
		applied, err := next.With(v.Key(), v.Get())
		if err != nil {
			return s, data.Result{}, err
		}
		b.Success(v).Replace(data.NewValue(v.Key(), old))
		next = applied
	}
	res, err := b.Result(kind).Build()
	if err != nil {
		return s, data.Result{}, err
	}
	return next, res, nil
}

// Undo restores the pre-transaction values recorded in a Result by
// re-applying its replaced values in reverse application order. Every
// registered property always has a value, so restoring the replaced values
// also retracts the transaction's successful ones. A Result with no replaced
// data leaves the state unchanged.
func (s State) Undo(result data.Result) (State, error) {
	replaced := result.ReplacedData()
	if !replaced.Defined() {
		return s, nil
	}
	next := s
	vals := replaced.Values()
	for i := len(vals) - 1; i >= 0; i-- {
		applied, err := next.With(vals[i].Key(), vals[i].Get())
		if err != nil {
			return s, fmt.Errorf("undoing %s: %w", vals[i].Key(), err)
		}
		next = applied
	}
	return next, nil
}

// Equal reports whether two states have the same block type and the same
// value for every property. Manipulators do not participate in equality.
func (s State) Equal(other State) bool {
	if s.md == nil || other.md == nil {
		return s.md == other.md
	}
	if s.md.Type() != other.md.Type() || len(s.values) != len(other.values) {
		return false
	}
	for k, v := range s.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// clone copies the mutable maps; the metadata pointer is shared.
func (s State) clone() State {
	values := make(map[string]any, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	manips := make(map[string]data.Manipulator, len(s.manips))
	for k, m := range s.manips {
		manips[k] = m
	}
	return State{md: s.md, values: values, manips: manips}
}
