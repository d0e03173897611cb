// context.go - the context wrapper.
//
// A Context[C] pairs a context value with the failure it wraps. The call
// site that wraps decides what C is: an operation name, a line number, a
// resource identifier, or a Note carrying text plus structured fields. The
// outward-facing error types stay small; distinguishing detail lives here and
// is found again through the chain (see ContextOf).
package xgxfault

import (
	"fmt"
	"strings"
)

// Context is a failure that attaches a context value to an inner error.
type Context[C any] struct {
	ctx   C
	inner error
	stk   Stack
}

// Wrap attaches c to inner. It never captures a backtrace; use WrapWith to
// honor a Diagnostics value. A nil inner is a programming defect and panics.
func Wrap[C any](inner error, c C) *Context[C] {
	return wrapSkip(Diagnostics{}, inner, c, 1)
}

// WrapWith attaches c to inner under d. The wrapper captures a backtrace only
// when d is rich and no link of inner already owns one.
func WrapWith[C any](d Diagnostics, inner error, c C) *Context[C] {
	return wrapSkip(d, inner, c, 1)
}

func wrapSkip[C any](d Diagnostics, inner error, c C, skip int) *Context[C] {
	if inner == nil {
		panic(defectMessage("wrap of nil error"))
	}
	return &Context[C]{ctx: c, inner: inner, stk: d.captureFor(inner, skip+1)}
}

// Value returns the attached context value.
func (e *Context[C]) Value() C { return e.ctx }

// Message renders the context value.
func (e *Context[C]) Message() string { return describe(e.ctx) }

func (e *Context[C]) Error() string    { return joinMessage(e.Message(), e.inner) }
func (e *Context[C]) Unwrap() error    { return e.inner }
func (e *Context[C]) Backtrace() Stack { return e.stk }

// describe renders a context value: Describer, then fmt.Stringer, then
// string, then error, then fmt's default formatting.
func describe(c any) string {
	switch v := c.(type) {
	case Describer:
		return v.Describe()
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}

// joinMessage follows the Go convention "msg: cause".
func joinMessage(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	if msg == "" {
		return cause.Error()
	}
	return msg + ": " + cause.Error()
}

// -----------------------------------------------------------------------------
// Note: text plus ordered key/value fields
// -----------------------------------------------------------------------------

// Field is a single key/value pair attached to a Note.
type Field struct {
	Key string
	Val any
}

// fields is append-only; elements are never modified once published.
type fields []Field

// Note is a structured context value with a text fallback.
type Note struct {
	msg    string
	fields fields
}

// NewNote builds a Note from msg and key/value pairs.
//
// Pairs are read left to right. A non-string key drops the whole pair so the
// following pairs stay aligned; a trailing key with no value becomes
// (key, nil).
func NewNote(msg string, kv ...any) Note {
	return Note{msg: msg, fields: ctxFromKV(kv...)}
}

// Msg returns the note's text.
func (n Note) Msg() string { return n.msg }

// Fields returns a copy of the note's fields in insertion order.
func (n Note) Fields() []Field {
	if len(n.fields) == 0 {
		return nil
	}
	out := make([]Field, len(n.fields))
	copy(out, n.fields)
	return out
}

// Map returns the fields as a new map; later duplicate keys win.
func (n Note) Map() map[string]any { return ctxToMap(n.fields) }

// Describe returns the text, or "k=v" pairs when the note has no text.
func (n Note) Describe() string {
	if n.msg != "" || len(n.fields) == 0 {
		return n.msg
	}
	parts := make([]string, 0, len(n.fields))
	for _, f := range n.fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Val))
	}
	return strings.Join(parts, " ")
}

// lookup returns the newest value stored under key.
func (n Note) lookup(key string) (any, bool) {
	for i := len(n.fields) - 1; i >= 0; i-- {
		if n.fields[i].Key == key {
			return n.fields[i].Val, true
		}
	}
	return nil, false
}

func ctxFromKV(kv ...any) fields {
	if len(kv) == 0 {
		return nil
	}
	out := make(fields, 0, len(kv)/2+1)
	for i := 0; i < len(kv); {
		k, ok := kv[i].(string)
		if !ok {
			i += 2
			continue
		}
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		i += 2
		out = append(out, Field{Key: k, Val: v})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func ctxToMap(fs fields) map[string]any {
	if len(fs) == 0 {
		return nil
	}
	m := make(map[string]any, len(fs))
	for _, f := range fs {
		m[f.Key] = f.Val
	}
	return m
}
