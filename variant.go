// variant.go - coalesced sum-type failures.
//
// A layer's public error surface is a small, named set of variants, one per
// semantic category its callers care about. Go has no closed sums, so the
// encoding is tag + payload:
//
//	type ConfigError int
//	const (
//		ConfigRead ConfigError = iota + 1
//		ConfigParse
//	)
//	var ConfigErrors = xgxfault.Variants(ConfigRead, ConfigParse)
//
// Conversions are explicit by default: the call site names the variant with
// Coalesce or Into. A Coalescer may hold implicit conversions, one per
// underlying type; registering a second one for the same type panics, so a
// layer that gains a second call site for that type has to move to explicit
// conversions instead of silently picking one call site's meaning.
//
// Exhaustiveness is emulated: Matcher requires an Otherwise branch, and
// Matcher.Missing lets a test assert that every declared variant has a case.
package xgxfault

import (
	"errors"
	"reflect"
	"slices"
)

// Variant is a named tag of a sum-type failure.
type Variant interface {
	comparable
	String() string
}

// Sum is a failure classified as one variant of a sum type. It renders as
// its payload: the variant classifies, it adds no text.
type Sum[V Variant] struct {
	variant V
	payload error
	stk     Stack
}

// Coalesce classifies payload as variant v. A nil payload is a programming
// defect and panics.
func Coalesce[V Variant](payload error, v V) *Sum[V] {
	return coalesceSkip(Diagnostics{}, payload, v, 1)
}

// CoalesceWith is Coalesce under d: the variant captures a backtrace only
// when d is rich and no link of payload already owns one.
func CoalesceWith[V Variant](d Diagnostics, payload error, v V) *Sum[V] {
	return coalesceSkip(d, payload, v, 1)
}

func coalesceSkip[V Variant](d Diagnostics, payload error, v V, skip int) *Sum[V] {
	if payload == nil {
		panic(defectf("coalesce of nil error into %s", v))
	}
	return &Sum[V]{variant: v, payload: payload, stk: d.captureFor(payload, skip+1)}
}

// Into returns an explicit, call-site conversion into variant v. A nil error
// converts to nil.
//
//	if err != nil {
//		return cfg, xgxfault.Into(ConfigRead)(xgxfault.Wrap(err, "loading configuration"))
//	}
func Into[V Variant](v V) func(error) error {
	return func(err error) error {
		if err == nil {
			return nil
		}
		return coalesceSkip(Diagnostics{}, err, v, 1)
	}
}

// Variant returns the tag.
func (s *Sum[V]) Variant() V { return s.variant }

// Payload returns the classified failure.
func (s *Sum[V]) Payload() error { return s.payload }

func (s *Sum[V]) Tag() string      { return s.variant.String() }
func (s *Sum[V]) Message() string  { return MessageOf(s.payload) }
func (s *Sum[V]) Error() string    { return s.payload.Error() }
func (s *Sum[V]) Unwrap() error    { return s.payload }
func (s *Sum[V]) Backtrace() Stack { return s.stk }

// VariantOf returns the variant of the outermost Sum[V] in err's chain.
func VariantOf[V Variant](err error) (V, bool) {
	var s *Sum[V]
	if errors.As(err, &s) {
		return s.variant, true
	}
	var zero V
	return zero, false
}

// IsVariant reports whether err's outermost Sum[V] carries v.
func IsVariant[V Variant](err error, v V) bool {
	got, ok := VariantOf[V](err)
	return ok && got == v
}

// -----------------------------------------------------------------------------
// VariantSet: the declared variants of a sum type
// -----------------------------------------------------------------------------

// VariantSet is the ordered, duplicate-free declaration of a sum type's
// variants.
type VariantSet[V Variant] struct {
	list []V
}

// Variants declares a sum type's variants. Duplicates are a programming
// defect and panic.
func Variants[V Variant](vs ...V) VariantSet[V] {
	seen := make(map[V]struct{}, len(vs))
	for _, v := range vs {
		if _, dup := seen[v]; dup {
			panic(defectf("duplicate variant %s", v))
		}
		seen[v] = struct{}{}
	}
	return VariantSet[V]{list: slices.Clone(vs)}
}

// All returns a copy of the declared variants in declaration order.
func (s VariantSet[V]) All() []V { return slices.Clone(s.list) }

// Len returns the number of declared variants.
func (s VariantSet[V]) Len() int { return len(s.list) }

// Contains reports whether v is declared.
func (s VariantSet[V]) Contains(v V) bool { return slices.Contains(s.list, v) }

// -----------------------------------------------------------------------------
// Matcher: dispatch with a required default
// -----------------------------------------------------------------------------

// Matcher dispatches on the outermost Sum[V] of an error.
type Matcher[V Variant, R any] struct {
	cases     map[V]func(payload error) R
	otherwise func(err error) R
}

// NewMatcher returns a Matcher whose default branch is otherwise. The default
// receives the whole error when it carries no Sum[V] or an unhandled variant.
func NewMatcher[V Variant, R any](otherwise func(err error) R) *Matcher[V, R] {
	if otherwise == nil {
		panic(defectMessage("matcher without otherwise branch"))
	}
	return &Matcher[V, R]{cases: make(map[V]func(error) R), otherwise: otherwise}
}

// On registers the case for v. Registering v twice panics.
func (m *Matcher[V, R]) On(v V, fn func(payload error) R) *Matcher[V, R] {
	if _, dup := m.cases[v]; dup {
		panic(defectf("duplicate case for variant %s", v))
	}
	m.cases[v] = fn
	return m
}

// Match runs the case for err's variant, or the default branch.
func (m *Matcher[V, R]) Match(err error) R {
	var s *Sum[V]
	if errors.As(err, &s) {
		if fn, ok := m.cases[s.variant]; ok {
			return fn(s.payload)
		}
	}
	return m.otherwise(err)
}

// Missing returns the declared variants that have no case, in declaration
// order. An exhaustive matcher returns nil.
func (m *Matcher[V, R]) Missing(set VariantSet[V]) []V {
	var out []V
	for _, v := range set.list {
		if _, ok := m.cases[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// -----------------------------------------------------------------------------
// Coalescer: implicit conversions, at most one per underlying type
// -----------------------------------------------------------------------------

type rule[V Variant] struct {
	typ     reflect.Type
	variant V
	match   func(error) bool
}

// Coalescer holds a layer's implicit conversions. Build it once, at package
// initialization, and only read it afterwards.
type Coalescer[V Variant] struct {
	d     Diagnostics
	rules []rule[V]
}

// NewCoalescer returns an empty Coalescer whose conversions are built
// under d.
func NewCoalescer[V Variant](d Diagnostics) *Coalescer[V] {
	return &Coalescer[V]{d: d}
}

// Implicit registers the implicit conversion of failures of type E into v.
// It is only legal while a single call site of the layer produces E; a
// second registration for E panics.
func Implicit[E error, V Variant](c *Coalescer[V], v V) *Coalescer[V] {
	typ := reflect.TypeFor[E]()
	for _, r := range c.rules {
		if r.typ == typ {
			panic(defectf("ambiguous implicit conversion for %s (%s and %s)", typ, r.variant, v))
		}
	}
	c.rules = append(c.rules, rule[V]{
		typ:     typ,
		variant: v,
		match: func(err error) bool {
			_, ok := err.(E)
			return ok
		},
	})
	return c
}

// From converts err through the first rule matching a link of its chain,
// checked from the head inward. It reports false when no rule applies, in
// which case the caller must convert explicitly.
func (c *Coalescer[V]) From(err error) (*Sum[V], bool) {
	if err == nil {
		return nil, false
	}
	for link := range ChainOf(err).All() {
		for _, r := range c.rules {
			if r.match(link) {
				return coalesceSkip(c.d, err, r.variant, 1), true
			}
		}
	}
	return nil, false
}

// Types lists the registered underlying types and their variants, for
// documentation and tests.
func (c *Coalescer[V]) Types() map[string]V {
	out := make(map[string]V, len(c.rules))
	for _, r := range c.rules {
		out[r.typ.String()] = r.variant
	}
	return out
}
