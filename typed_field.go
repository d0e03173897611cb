// typed_field.go - typed lookups of context along a chain.
//
// Context values are found again by type: ContextOf[C] returns the outermost
// Context[C] value, and a TypedField reads a Note field by key with a type
// assertion. Lookups walk the chain from the head, so the newest context
// wins.
package xgxfault

// ContextOf returns the value of the outermost Context[C] in err's chain.
func ContextOf[C any](err error) (C, bool) {
	for e := range ChainOf(err).All() {
		if c, ok := e.(*Context[C]); ok {
			return c.ctx, true
		}
	}
	var zero C
	return zero, false
}

// ContextsOf returns the values of every Context[C] in err's chain,
// outermost first.
func ContextsOf[C any](err error) []C {
	var out []C
	for e := range ChainOf(err).All() {
		if c, ok := e.(*Context[C]); ok {
			out = append(out, c.ctx)
		}
	}
	return out
}

// TypedField reads and writes a Note field of type T.
//
//	var FRequestID = xgxfault.FieldOf[string]("request_id")
//
//	err = FRequestID.Set(err, "r-42")
//	id, ok := FRequestID.Get(err)
type TypedField[T any] struct {
	key string
}

// FieldOf constructs a TypedField[T] for key.
func FieldOf[T any](key string) TypedField[T] {
	return TypedField[T]{key: key}
}

// Key returns the field's key.
func (f TypedField[T]) Key() string { return f.key }

// Set wraps err with a text-less Note holding (key, val).
func (f TypedField[T]) Set(err error, val T) *Context[Note] {
	return wrapSkip(Diagnostics{}, err, NewNote("", f.key, any(val)), 1)
}

// Get returns the newest value stored under the key along err's chain.
// It reports false when absent or when the stored dynamic type is not
// exactly T.
func (f TypedField[T]) Get(err error) (T, bool) {
	var zero T
	for e := range ChainOf(err).All() {
		c, ok := e.(*Context[Note])
		if !ok {
			continue
		}
		v, ok := c.ctx.lookup(f.key)
		if !ok {
			continue
		}
		tv, ok := v.(T)
		if !ok {
			return zero, false
		}
		return tv, true
	}
	return zero, false
}

// MustGet is Get for tests and code where absence is a programming defect.
func (f TypedField[T]) MustGet(err error) T {
	v, ok := f.Get(err)
	if !ok {
		var zero T
		panic(defectf("field %q of type %T missing", f.key, zero))
	}
	return v
}
