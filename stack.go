// stack.go - backtrace snapshots.
//
// Frames are resolved with runtime.CallersFrames so inlined calls are
// expanded correctly. Capture is only ever reached through
// Diagnostics.captureFor, which enforces the rich toggle and the
// once-per-chain rule.
package xgxfault

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Frame represents a single call site in a backtrace.
type Frame struct {
	PC       uintptr // program counter of the call return
	File     string  // absolute file path as reported by the runtime
	Line     int
	Function string // fully-qualified function name (pkg.Func or method)
}

// String renders the frame as "function file:line".
func (f Frame) String() string {
	return fmt.Sprintf("%s %s:%d", f.Function, f.File, f.Line)
}

// Stack is a slice of Frames from the most recent call outward. A Stack is
// never modified after capture.
type Stack []Frame

// defaultMaxDepth bounds capture work on the failure path.
const defaultMaxDepth = 64

// String renders one frame per line.
func (s Stack) String() string {
	var b strings.Builder
	_ = s.write(&b, "")
	return b.String()
}

// write renders one frame per line, each prefixed with indent.
func (s Stack) write(w io.Writer, indent string) error {
	for i, fr := range s {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s%s", indent, fr); err != nil {
			return err
		}
	}
	return nil
}

// captureStack captures up to maxDepth frames. skip=0 places the first
// recorded frame at the caller of captureStack. A platform that cannot
// unwind yields nil, never an error.
func captureStack(skip, maxDepth int) Stack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	// +2 skips runtime.Callers and captureStack itself.
	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more || len(out) == maxDepth {
			break
		}
	}
	return out
}
