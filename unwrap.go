// unwrap.go - identity guard and per-level helpers for chain traversal.
//
// Library-built chains cannot cycle, but a foreign error may implement
// Unwrap() error however it likes. Traversal therefore keeps a seen-set of
// link identities plus a hard depth cap. Links are keyed by interface value
// when the value is comparable at run time; anything else (a slice error, or
// a struct error holding a map behind an interface field) is treated as
// acyclic and bounded by the cap.
//
// Maps are allocated lazily, so a chain of a single link walks without them.
package xgxfault

import (
	"reflect"
	"strings"
)

type singleUnwrapper interface{ Unwrap() error }

// maxChainDepth is a generous cap against runaway foreign chains.
const maxChainDepth = 1 << 12

type seenGuard struct {
	errs map[error]struct{}
}

// mark returns true if err was newly marked; false if already seen.
func (g *seenGuard) mark(err error) bool {
	// Value.Comparable inspects interface fields too: a struct error whose
	// static type is comparable can still hold a slice and panic on hashing.
	if !reflect.ValueOf(err).Comparable() {
		return true
	}
	if _, ok := g.errs[err]; ok {
		return false
	}
	if g.errs == nil {
		g.errs = make(map[error]struct{}, 8)
	}
	g.errs[err] = struct{}{}
	return true
}

// MessageOf returns the text contributed by err's own level.
//
// Failures (and any error with a Message() string method) report it
// directly. For other errors the Go convention "msg: cause" is undone: a
// trailing ": "+cause.Error() is stripped, and an error whose text equals
// its cause's text contributes nothing.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	if m, ok := err.(interface{ Message() string }); ok {
		return m.Message()
	}
	s := err.Error()
	u, ok := err.(singleUnwrapper)
	if !ok {
		return s
	}
	cause := u.Unwrap()
	if cause == nil {
		return s
	}
	cs := cause.Error()
	if s == cs {
		return ""
	}
	return strings.TrimSuffix(s, ": "+cs)
}

// BacktraceOf returns the backtrace owned by the first link of err's chain
// that has one, or nil. Under first-capture-wins at most one link owns a
// snapshot.
func BacktraceOf(err error) Stack {
	for e := range ChainOf(err).All() {
		if f, ok := e.(Failure); ok {
			if stk := f.Backtrace(); stk != nil {
				return stk
			}
		}
	}
	return nil
}
