package block

import "errors"

// Property kinds determine what values a property accepts.
const (
	KindBool PropertyKind = "bool"
	KindInt  PropertyKind = "int"
	KindEnum PropertyKind = "enum"
)

// PropertyKind is the value type of a property.
type PropertyKind string

// validPropertyKinds is the set of recognized property kinds.
var validPropertyKinds = map[PropertyKind]bool{
	KindBool: true,
	KindInt:  true,
	KindEnum: true,
}

// IsValid reports whether the kind is one of the recognized property kinds.
func (k PropertyKind) IsValid() bool {
	return validPropertyKinds[k]
}

// Property construction errors.
var (
	ErrInvalidName       = errors.New("property name must not be empty")
	ErrEmptyDomain       = errors.New("allowed values must not be empty")
	ErrDuplicateValue    = errors.New("duplicate allowed value")
	ErrDefaultNotAllowed = errors.New("default value not in allowed values")
)

// PropertyInfo describes one named, typed property: its default value and the
// ordered, closed set of values it accepts. The position of a value in the
// allowed sequence is its ordinal, which enum properties expose for legacy
// index-based access. A PropertyInfo is immutable after construction; input
// slices are copied and accessors return copies.
type PropertyInfo struct {
	name    string
	kind    PropertyKind
	def     any
	allowed []any
}

// NewBoolProperty constructs a boolean property. The value domain is fixed
// to {true, false}.
func NewBoolProperty(name string, defaultValue bool) (PropertyInfo, error) {
	if name == "" {
		return PropertyInfo{}, ErrInvalidName
	}
	return PropertyInfo{
		name:    name,
		kind:    KindBool,
		def:     defaultValue,
		allowed: []any{true, false},
	}, nil
}

// NewIntProperty constructs an integer property over an explicit enumerated
// set of values, not a range. The default must be a member of the set.
func NewIntProperty(name string, defaultValue int, allowed []int) (PropertyInfo, error) {
	if name == "" {
		return PropertyInfo{}, ErrInvalidName
	}
	if len(allowed) == 0 {
		return PropertyInfo{}, ErrEmptyDomain
	}
	domain := make([]any, 0, len(allowed))
	seen := make(map[int]bool, len(allowed))
	for _, v := range allowed {
		if seen[v] {
			return PropertyInfo{}, ErrDuplicateValue
		}
		seen[v] = true
		domain = append(domain, v)
	}
	if !seen[defaultValue] {
		return PropertyInfo{}, ErrDefaultNotAllowed
	}
	return PropertyInfo{name: name, kind: KindInt, def: defaultValue, allowed: domain}, nil
}

// NewEnumProperty constructs an enumerated-string property. The order of the
// allowed labels is semantically meaningful: a label's position is its
// ordinal. The default must be one of the labels.
func NewEnumProperty(name string, defaultValue string, allowed []string) (PropertyInfo, error) {
	if name == "" {
		return PropertyInfo{}, ErrInvalidName
	}
	if len(allowed) == 0 {
		return PropertyInfo{}, ErrEmptyDomain
	}
	domain := make([]any, 0, len(allowed))
	seen := make(map[string]bool, len(allowed))
	for _, v := range allowed {
		if seen[v] {
			return PropertyInfo{}, ErrDuplicateValue
		}
		seen[v] = true
		domain = append(domain, v)
	}
	if !seen[defaultValue] {
		return PropertyInfo{}, ErrDefaultNotAllowed
	}
	return PropertyInfo{name: name, kind: KindEnum, def: defaultValue, allowed: domain}, nil
}

// Name returns the property name.
func (p PropertyInfo) Name() string {
	return p.name
}

// Kind returns the property's value kind.
func (p PropertyInfo) Kind() PropertyKind {
	return p.kind
}

// Default returns the default value. The dynamic type is bool, int, or
// string according to Kind.
func (p PropertyInfo) Default() any {
	return p.def
}

// AllowedValues returns a copy of the authoritative, ordered value domain.
func (p PropertyInfo) AllowedValues() []any {
	cloned := make([]any, len(p.allowed))
	copy(cloned, p.allowed)
	return cloned
}

// Len returns the size of the value domain.
func (p PropertyInfo) Len() int {
	return len(p.allowed)
}

// Contains reports whether the value is a member of the domain. Values of
// the wrong dynamic type are never members.
func (p PropertyInfo) Contains(value any) bool {
	return p.indexOf(value) >= 0
}

// checkType reports whether the dynamic type of value matches the kind.
func (p PropertyInfo) checkType(value any) bool {
	switch p.kind {
	case KindBool:
		_, ok := value.(bool)
		return ok
	case KindInt:
		_, ok := value.(int)
		return ok
	case KindEnum:
		_, ok := value.(string)
		return ok
	}
	return false
}

// indexOf returns the ordinal of value within the domain, -1 when absent.
func (p PropertyInfo) indexOf(value any) int {
	for i, v := range p.allowed {
		if v == value {
			return i
		}
	}
	return -1
}

// valueAt returns the domain member at the given ordinal. The caller must
// have validated the ordinal.
func (p PropertyInfo) valueAt(ordinal int) any {
	return p.allowed[ordinal]
}
