// stack_test.go - verification of stack capture semantics and metadata.
package xgxfault

import (
	"strings"
	"testing"
)

// --- Helpers to build a known call chain -------------------------------------

//go:noinline
func stackTestLevel2(skip int) Stack {
	// skip=0: first recorded frame is this function.
	return captureStack(skip, 0)
}

//go:noinline
func stackTestLevel1(skip int) Stack {
	// skip=1: first recorded frame is this function.
	return stackTestLevel2(skip)
}

func requireCapture(t *testing.T) {
	t.Helper()
	if !captureEnabled {
		t.Skip("built with nobacktrace")
	}
}

// --- Tests -------------------------------------------------------------------

func TestCaptureStack_UsesDefaultWhenMaxDepthZero(t *testing.T) {
	t.Parallel()

	s := captureStack(0, 0)
	if len(s) == 0 {
		t.Fatalf("expected non-empty stack when maxDepth=0 (default), got 0")
	}
	if len(s) > defaultMaxDepth {
		t.Fatalf("stack length exceeds defaultMaxDepth: len=%d default=%d", len(s), defaultMaxDepth)
	}
}

func TestCaptureStack_RespectsMaxDepthLimit(t *testing.T) {
	t.Parallel()

	const limit = 3
	s := captureStack(0, limit)
	if len(s) == 0 {
		t.Fatalf("expected some frames with small limit; got 0")
	}
	if len(s) > limit {
		t.Fatalf("expected <= %d frames; got %d", limit, len(s))
	}
}

func TestCaptureStack_SkipSkipsCorrectFrames(t *testing.T) {
	t.Parallel()

	s0 := stackTestLevel1(0)
	if len(s0) == 0 {
		t.Fatalf("got empty stack for skip=0")
	}
	if !strings.HasSuffix(s0[0].Function, "stackTestLevel2") {
		t.Fatalf("expected first frame to be stackTestLevel2; got %q", s0[0].Function)
	}

	s1 := stackTestLevel1(1)
	if len(s1) == 0 {
		t.Fatalf("got empty stack for skip=1")
	}
	if !strings.HasSuffix(s1[0].Function, "stackTestLevel1") {
		t.Fatalf("expected first frame to be stackTestLevel1; got %q", s1[0].Function)
	}
}

func TestCaptureStack_ReturnsNilWhenNoFramesCaptured(t *testing.T) {
	t.Parallel()

	// Skipping past every frame makes runtime.Callers return 0; capture
	// degrades to nil instead of failing.
	if s := captureStack(1<<20, 8); s != nil {
		t.Fatalf("expected nil stack when skipping all frames; got %d frames", len(s))
	}
}

func TestCaptureStack_FramesHaveMetadata(t *testing.T) {
	t.Parallel()

	s := stackTestLevel1(0)
	fr := s[0]
	if fr.File == "" || !strings.HasSuffix(fr.File, "stack_test.go") {
		t.Fatalf("unexpected file: %q", fr.File)
	}
	if fr.Line <= 0 {
		t.Fatalf("unexpected line: %d", fr.Line)
	}
	if fr.PC == 0 {
		t.Fatalf("expected non-zero PC")
	}
}

func TestStack_String(t *testing.T) {
	t.Parallel()

	s := Stack{
		{Function: "pkg.a", File: "/src/a.go", Line: 1},
		{Function: "pkg.b", File: "/src/b.go", Line: 22},
	}
	want := "pkg.a /src/a.go:1\npkg.b /src/b.go:22"
	if got := s.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got := Stack(nil).String(); got != "" {
		t.Fatalf("nil Stack String() = %q, want empty", got)
	}
}
