// Package xgxfault defines the minimal failure model used across xgx
// projects: immutable failure values linked into a singly-linked cause chain,
// contextual wrappers, coalesced sum-type variants and an optional, bounded
// backtrace per chain.
//
// Design tenets:
//   - Interop-first: every failure is an error; errors.Is/As observe the chain.
//   - Immutable: values are never changed after construction, so they may be
//     read from any goroutine without locking.
//   - Explicit diagnostics: backtraces are captured only under a Diagnostics
//     value with Rich set, and at most once per chain.
package xgxfault

// Code classifies leaf failures into machine-readable categories.
//
// Codes are stringly-typed for stability across serialization boundaries.
// Projects may define their own codes; the core attaches no policy to them
// beyond IsRetryable.
type Code string

// Failure is the capability contract every failure value satisfies.
//
// The cause relationship is a finite, acyclic, singly-linked chain. A wrapper
// can only be built around a value that already exists and nothing can
// replace a cause afterwards, so no value can become its own ancestor.
type Failure interface {
	error

	// Message returns the text of this level only, never the cause's text.
	Message() string

	// Unwrap returns the cause, or nil for a leaf. The returned value is the
	// one the wrapper was built with; it stays valid as long as the wrapper
	// is reachable.
	Unwrap() error

	// Backtrace returns the snapshot captured by this value, or nil if this
	// value did not capture one. Use BacktraceOf to find the chain's snapshot.
	Backtrace() Stack
}

// Tagged is implemented by coalesced variants. A tagged link classifies its
// payload and contributes no text of its own, so renderers skip it.
type Tagged interface {
	Failure
	Tag() string
}

// Describer lets a context value choose its own rendering.
type Describer interface {
	Describe() string
}
