package data

// Transaction result kinds. Every Result carries exactly one.
// KindError is reserved for type or schema incompatibility; an ordinary
// out-of-domain rejection is KindFailure.
const (
	KindSuccess ResultKind = "success"
	KindFailure ResultKind = "failure"
	KindError   ResultKind = "error"
)

// ResultKind is the outcome classification of a transaction.
type ResultKind string

// validResultKinds is the set of recognized result kinds.
var validResultKinds = map[ResultKind]bool{
	KindSuccess: true,
	KindFailure: true,
	KindError:   true,
}

// IsValid reports whether the kind is one of the recognized result kinds.
func (k ResultKind) IsValid() bool {
	return validResultKinds[k]
}

// ValueList is an ordered list of Values that distinguishes "absent" from
// "present". A transaction that never touched a category reports an absent
// list, not an empty one. Present lists are non-empty, preserve insertion
// order, and are never deduplicated; the order is the replay order for undo.
// The zero ValueList is absent.
type ValueList struct {
	defined bool
	values  []Value
}

// newValueList wraps a copy of values. A nil slice yields an absent list.
func newValueList(values []Value) ValueList {
	if values == nil {
		return ValueList{}
	}
	cloned := make([]Value, len(values))
	copy(cloned, values)
	return ValueList{defined: true, values: cloned}
}

// Defined reports whether the category was touched at all.
func (l ValueList) Defined() bool {
	return l.defined
}

// Len returns the number of values. Zero for an absent list.
func (l ValueList) Len() int {
	return len(l.values)
}

// Values returns a copy of the underlying list, nil when absent.
func (l ValueList) Values() []Value {
	if !l.defined {
		return nil
	}
	cloned := make([]Value, len(l.values))
	copy(cloned, l.values)
	return cloned
}

// Result is the immutable record of one transaction: an outcome kind plus the
// values that were successfully applied, the prior values they replaced, and
// the values that were rejected. A Result shares no storage with the Builder
// that produced it and may be read concurrently without synchronization.
type Result struct {
	kind       ResultKind
	successful ValueList
	replaced   ValueList
	rejected   ValueList
}

// Kind returns the outcome classification.
func (r Result) Kind() ResultKind {
	return r.kind
}

// SuccessfulData returns the values that were successfully applied.
func (r Result) SuccessfulData() ValueList {
	return r.successful
}

// ReplacedData returns the prior values displaced by the successful ones,
// in application order. Replaying them in reverse restores the holder's
// pre-transaction state.
func (r Result) ReplacedData() ValueList {
	return r.replaced
}

// RejectedData returns the values the holder refused to apply.
func (r Result) RejectedData() ValueList {
	return r.rejected
}
