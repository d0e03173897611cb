// diagnostics.go - the rich-diagnostics toggle.
//
// Diagnostics is an explicit configuration value, set once at startup and
// passed by value to whatever constructs failures. There is no package-level
// toggle: the package-level constructors behave like the zero Diagnostics,
// which never captures.
package xgxfault

import "fmt"

// Diagnostics configures backtrace capture.
type Diagnostics struct {
	// Rich enables backtrace capture. When false no failure built through
	// this value ever walks the stack.
	Rich bool

	// MaxDepth bounds the number of captured frames; <= 0 means 64.
	MaxDepth int
}

// Enabled reports whether this configuration will capture backtraces in
// the current build.
func (d Diagnostics) Enabled() bool {
	return captureEnabled && d.Rich
}

// captureFor captures a backtrace for a value about to wrap inner, unless
// capture is disabled or some link of inner already owns one
// (first-capture-wins). skip=0 places the first frame at the caller of
// captureFor.
func (d Diagnostics) captureFor(inner error, skip int) Stack {
	if !d.Enabled() {
		return nil
	}
	if inner != nil && BacktraceOf(inner) != nil {
		return nil
	}
	return captureStack(skip+1, d.MaxDepth)
}

// New creates a leaf failure with msg.
func (d Diagnostics) New(msg string) Failure {
	return &leaf{msg: msg, stk: d.captureFor(nil, 1)}
}

// Newf creates a leaf failure with a formatted message.
func (d Diagnostics) Newf(format string, args ...any) Failure {
	return &leaf{msg: fmt.Sprintf(format, args...), stk: d.captureFor(nil, 1)}
}

// Fail creates a leaf failure classified by code.
func (d Diagnostics) Fail(code Code, msg string) Failure {
	return &leaf{msg: msg, code: code, stk: d.captureFor(nil, 1)}
}

// WrapKV wraps inner with a Note built from msg and key/value pairs.
func (d Diagnostics) WrapKV(inner error, msg string, kv ...any) *Context[Note] {
	return wrapSkip(d, inner, NewNote(msg, kv...), 1)
}

// Wrapf wraps inner with a formatted Note.
func (d Diagnostics) Wrapf(inner error, format string, args ...any) *Context[Note] {
	return wrapSkip(d, inner, NewNote(fmt.Sprintf(format, args...)), 1)
}
