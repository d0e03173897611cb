// format.go - chain rendering and fmt.Formatter support.
//
// Rendered text (a stable contract for tests and tools):
//
//	loading configuration
//	  caused by: cannot open file "config.toml"
//
//	backtrace:
//	  main.load /src/main.go:42
//	  main.main /src/main.go:17
//
// One line per rendered level, outermost first, so the root cause comes last.
// A level is rendered when its text is non-empty and it is not a variant
// tag. This applies to library values as much as foreign ones: a context
// that describes to "" (WrapKV(err, ""), a Note with neither text nor
// fields) is transparent, and nesting depth counts rendered levels only.
// If no level renders, the output falls back to err.Error().
// Every line after the first starts with "caused by: ", indented two spaces
// per level of nesting. The backtrace section is only present when requested
// and some link owns a snapshot.
//
// Verbs:
//
//	%s, %v  -> Error()
//	%q      -> quoted Error()
//	%+v     -> Render with backtrace
package xgxfault

import (
	"fmt"
	"io"
	"strings"
)

// CausePrefix starts every rendered line after the first.
const CausePrefix = "caused by: "

// BacktraceHeader opens the backtrace section of a rendering.
const BacktraceHeader = "backtrace:"

// Render returns the multi-line rendering of err's chain. With backtrace
// set, the chain's snapshot, if any, is appended after a blank line. A nil
// err renders as "".
func Render(err error, backtrace bool) string {
	var b strings.Builder
	_ = WriteRendering(&b, err, backtrace)
	return b.String()
}

// WriteRendering writes Render(err, backtrace) to w without a trailing
// newline.
func WriteRendering(w io.Writer, err error, backtrace bool) error {
	if err == nil {
		return nil
	}
	depth := 0
	for msg := range ChainOf(err).Lines() {
		line := msg
		if depth > 0 {
			line = "\n" + strings.Repeat("  ", depth) + CausePrefix + msg
		}
		if _, werr := io.WriteString(w, line); werr != nil {
			return werr
		}
		depth++
	}
	if depth == 0 {
		// Every level was tagged or empty; fall back to the plain text.
		if _, werr := io.WriteString(w, err.Error()); werr != nil {
			return werr
		}
	}
	if !backtrace {
		return nil
	}
	stk := BacktraceOf(err)
	if len(stk) == 0 {
		return nil
	}
	if _, werr := io.WriteString(w, "\n\n"+BacktraceHeader+"\n"); werr != nil {
		return werr
	}
	return stk.write(w, "  ")
}

// formatFailure implements fmt.Formatter for every failure type.
func formatFailure(s fmt.State, verb rune, err error) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_ = WriteRendering(s, err, true)
			return
		}
		_, _ = io.WriteString(s, err.Error())
	case 's':
		_, _ = io.WriteString(s, err.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", err.Error())
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(%s)", verb, err.Error())
	}
}

func (e *leaf) Format(s fmt.State, verb rune)       { formatFailure(s, verb, e) }
func (e *Context[C]) Format(s fmt.State, verb rune) { formatFailure(s, verb, e) }
func (s *Sum[V]) Format(st fmt.State, verb rune)    { formatFailure(st, verb, s) }
