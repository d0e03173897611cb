// wrap.go - package-level wrapping helpers for arbitrary errors.
//
// Every helper here consumes its input: the result owns the wrapped error
// and the input must not be re-wrapped elsewhere. None of them capture a
// backtrace; use the matching Diagnostics methods for that.
package xgxfault

import "fmt"

// WrapKV wraps inner with a Note built from msg and key/value pairs.
//
// Example:
//
//	err = xgxfault.WrapKV(err, "query failed", "table", "users")
func WrapKV(inner error, msg string, kv ...any) *Context[Note] {
	return wrapSkip(Diagnostics{}, inner, NewNote(msg, kv...), 1)
}

// Wrapf wraps inner with a formatted Note.
func Wrapf(inner error, format string, args ...any) *Context[Note] {
	return wrapSkip(Diagnostics{}, inner, NewNote(fmt.Sprintf(format, args...)), 1)
}

// With wraps inner with a text-less Note holding a single field. The link
// renders as "key=val".
func With(inner error, key string, val any) *Context[Note] {
	return wrapSkip(Diagnostics{}, inner, NewNote("", key, val), 1)
}
