package block

import "errors"

// Type identifies a block type, e.g. "slate:furnace". It is an opaque
// schema-lookup key to this package.
type Type string

// Registry errors. ErrPropertyNotFound means the name is not registered for
// the block type at all, which callers must be able to tell apart from
// "registered but the value is invalid" (ErrValueNotAllowed).
var (
	ErrInvalidType       = errors.New("block type must not be empty")
	ErrDuplicateProperty = errors.New("duplicate property name")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrNotEnum           = errors.New("property is not enum-typed")
	ErrValueNotAllowed   = errors.New("value not in allowed values")
)

// Metadata binds a block type to the ordered collection of properties it
// legally carries. It is the schema against which state mutations and legacy
// ordinal lookups are validated. A Metadata is constructed once at schema
// registration time, never mutated, and shared by reference across every
// State of its type.
type Metadata struct {
	blockType Type
	props     []PropertyInfo
	index     map[string]int
}

// NewMetadata constructs a registry for the given block type. Property names
// must be unique within the type.
func NewMetadata(blockType Type, props []PropertyInfo) (*Metadata, error) {
	if blockType == "" {
		return nil, ErrInvalidType
	}
	cloned := make([]PropertyInfo, len(props))
	copy(cloned, props)
	index := make(map[string]int, len(cloned))
	for i, p := range cloned {
		if _, dup := index[p.Name()]; dup {
			return nil, ErrDuplicateProperty
		}
		index[p.Name()] = i
	}
	return &Metadata{blockType: blockType, props: cloned, index: index}, nil
}

// Type returns the block type this registry describes.
func (m *Metadata) Type() Type {
	return m.blockType
}

// PropertyInfos returns all properties for the block type, in registration
// order. The returned slice is a copy.
func (m *Metadata) PropertyInfos() []PropertyInfo {
	cloned := make([]PropertyInfo, len(m.props))
	copy(cloned, m.props)
	return cloned
}

// Len returns the number of registered properties.
func (m *Metadata) Len() int {
	return len(m.props)
}

// HasProperty reports whether a property with the given name is registered.
func (m *Metadata) HasProperty(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Property returns the registered property with the given name.
// Returns ErrPropertyNotFound if the name is unregistered for this type.
func (m *Metadata) Property(name string) (PropertyInfo, error) {
	i, ok := m.index[name]
	if !ok {
		return PropertyInfo{}, ErrPropertyNotFound
	}
	return m.props[i], nil
}

// IsOrdinalValid reports whether ordinal addresses a member of the named
// property's value domain. An unregistered name yields false rather than an
// error: legacy callers probe optimistically.
func (m *Metadata) IsOrdinalValid(name string, ordinal int) bool {
	i, ok := m.index[name]
	if !ok {
		return false
	}
	return ordinal >= 0 && ordinal < m.props[i].Len()
}

// OrdinalOf returns the position of value within the named enum property's
// label sequence; that position is the value's ordinal. Only enum properties
// participate in ordinal mapping: bool and int properties yield ErrNotEnum.
// Returns ErrPropertyNotFound for an unregistered name and ErrValueNotAllowed
// when the value is not one of the labels.
func (m *Metadata) OrdinalOf(name, value string) (int, error) {
	p, err := m.Property(name)
	if err != nil {
		return 0, err
	}
	if p.Kind() != KindEnum {
		return 0, ErrNotEnum
	}
	ordinal := p.indexOf(value)
	if ordinal < 0 {
		return 0, ErrValueNotAllowed
	}
	return ordinal, nil
}
