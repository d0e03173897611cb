// doc.go - package documentation for xgx-fault
//
// Package xgxfault represents recoverable failures as immutable values that
// link into a finite, singly-linked cause chain. It is designed to be:
//   - Interoperable with the stdlib (errors.Is/As, fmt.Formatter)
//   - Allocation-aware (no stack walking unless diagnostics are rich)
//   - Policy-free (no logging, retry or exit policy in the core)
//
// # Failure values
//
// Every value satisfies Failure: a message for its own level, an optional
// cause through Unwrap, and an optional backtrace it captured itself.
//
//	leaf     New / Newf / Fail / NotFound / Invalid / ...   no cause
//	wrapper  Wrap / WrapWith / WrapKV / Wrapf / With         one cause
//	variant  Coalesce / CoalesceWith / Into / Coalescer      one payload
//
// Wrapping consumes its input. Values are never mutated, so a wrapper is
// always younger than its cause and the chain cannot cycle.
//
// # Context
//
// Distinguish call sites with context, not with extra variants:
//
//	data, err := read(path)
//	if err != nil {
//		return xgxfault.Coalesce(xgxfault.Wrap(err, "loading configuration"), ConfigRead)
//	}
//
// The context value may be any type. It renders through Describer,
// fmt.Stringer, string or fmt's default formatting, in that order. Note is
// the stock context type for text plus ordered key/value fields.
//
// # Backtraces
//
// Capture is controlled by an explicit Diagnostics value, set once at
// startup and passed by value:
//
//	+------------------------------+------------------------------------------+
//	| Construction                 | Captures?                                |
//	+------------------------------+------------------------------------------+
//	| package-level constructors   | never                                    |
//	| Diagnostics{Rich: false}     | never                                    |
//	| Diagnostics{Rich: true}      | only if no link below owns a backtrace   |
//	| any, built -tags nobacktrace | never                                    |
//	+------------------------------+------------------------------------------+
//
// Failure.Backtrace reports only a value's own snapshot; BacktraceOf and
// Chain.Backtrace find the chain's single one.
//
// # Rendering
//
// Render, and %+v on any failure, print one line per level with nested
// levels prefixed by "caused by: ", then the backtrace after a blank line.
// Variants render as their payload.
//
// # Defects
//
// Contract violations (wrapping a nil error, duplicate variants, ambiguous
// implicit conversions) panic with a short lowercase message prefixed
// "xgxfault: ". They are never represented as Failure values.
package xgxfault
