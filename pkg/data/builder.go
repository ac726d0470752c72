package data

import "errors"

// Builder protocol errors. All three indicate caller misuse, not a domain
// outcome, and are surfaced by Build so that misuse fails loudly.
var (
	ErrNoResultKind = errors.New("result kind not set before build")
	ErrInvalidKind  = errors.New("invalid result kind")
	ErrZeroValue    = errors.New("zero value accumulated")
)

// Builder accumulates the outcome of one transaction and finalizes it into a
// Result. A Builder is single-use and single-writer: it must not be shared by
// concurrent callers, and each logical transaction gets its own Builder.
// Accumulation methods return the Builder for chaining; protocol violations
// stick and are reported by Build.
type Builder struct {
	kind       ResultKind
	kindSet    bool
	successful []Value
	replaced   []Value
	rejected   []Value
	err        error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Result sets the mandatory outcome kind. Calling it again overwrites the
// previous kind; an unrecognized kind is a protocol violation.
func (b *Builder) Result(kind ResultKind) *Builder {
	if !kind.IsValid() {
		b.fail(ErrInvalidKind)
		return b
	}
	b.kind = kind
	b.kindSet = true
	return b
}

// Success appends values to the "successful" category in order.
func (b *Builder) Success(values ...Value) *Builder {
	for _, v := range values {
		if v.IsZero() {
			b.fail(ErrZeroValue)
			return b
		}
		b.successful = append(b.successful, v)
	}
	return b
}

// Replace appends values to the "replaced" category in order. Replaced values
// are the pre-transaction values a holder needs to undo the change.
func (b *Builder) Replace(values ...Value) *Builder {
	for _, v := range values {
		if v.IsZero() {
			b.fail(ErrZeroValue)
			return b
		}
		b.replaced = append(b.replaced, v)
	}
	return b
}

// Reject appends values to the "rejected" category in order.
func (b *Builder) Reject(values ...Value) *Builder {
	for _, v := range values {
		if v.IsZero() {
			b.fail(ErrZeroValue)
			return b
		}
		b.rejected = append(b.rejected, v)
	}
	return b
}

// Build finalizes the accumulated state into an immutable Result. It returns
// ErrNoResultKind if no kind was ever set, or the first protocol violation
// recorded during accumulation. The Result copies the working lists, so
// further accumulation into this Builder cannot corrupt an already-returned
// Result; categories never touched stay absent.
func (b *Builder) Build() (Result, error) {
	if b.err != nil {
		return Result{}, b.err
	}
	if !b.kindSet {
		return Result{}, ErrNoResultKind
	}
	return Result{
		kind:       b.kind,
		successful: newValueList(b.successful),
		replaced:   newValueList(b.replaced),
		rejected:   newValueList(b.rejected),
	}, nil
}

// fail records the first protocol violation.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// SuccessNoData returns a success Result with all three categories absent.
func SuccessNoData() Result {
	r, _ := NewBuilder().Result(KindSuccess).Build()
	return r
}

// SuccessResult returns a success Result whose successful list is exactly
// the given value.
func SuccessResult(v Value) (Result, error) {
	return NewBuilder().Result(KindSuccess).Success(v).Build()
}

// SuccessReplaceResult returns a success Result recording one applied value
// and the prior value it replaced.
func SuccessReplaceResult(v, old Value) (Result, error) {
	return NewBuilder().Result(KindSuccess).Success(v).Replace(old).Build()
}

// SuccessReplaceAll returns a success Result recording a batch of applied
// values and the prior values they replaced.
func SuccessReplaceAll(successful, replaced []Value) (Result, error) {
	return NewBuilder().Result(KindSuccess).Success(successful...).Replace(replaced...).Build()
}

// FailResult returns a failure Result with the given values rejected.
func FailResult(values ...Value) (Result, error) {
	return NewBuilder().Result(KindFailure).Reject(values...).Build()
}

// ErrorResult returns an error Result with the given value rejected. Use it
// for type or schema incompatibility, not for an expectable rejection.
func ErrorResult(v Value) (Result, error) {
	return NewBuilder().Result(KindError).Reject(v).Build()
}
