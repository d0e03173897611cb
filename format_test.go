package xgxfault

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "leaf", err: New("c"), want: "c"},
		{
			name: "nested",
			err:  Wrap(Wrap(New("c"), "b"), "a"),
			want: "a\n  caused by: b\n    caused by: c",
		},
		{
			name: "sum is not a level",
			err:  Coalesce(Wrap(New("c"), "b"), testRead),
			want: "b\n  caused by: c",
		},
		{
			name: "transparent foreign wrapper is not a level",
			err:  Wrap(fmt.Errorf("%w", errors.New("c")), "a"),
			want: "a\n  caused by: c",
		},
		{
			name: "foreign wrapper contributes its prefix",
			err:  fmt.Errorf("dialing: %w", errors.New("refused")),
			want: "dialing\n  caused by: refused",
		},
		{name: "empty leaf message", err: Coalesce(New(""), testRead), want: "error"},
		{
			name: "empty context text is transparent",
			err:  Wrap(WrapKV(New("c"), ""), "a"),
			want: "a\n  caused by: c",
		},
		{
			name: "empty note is transparent",
			err:  Wrap(Wrap(New("c"), NewNote("")), "a"),
			want: "a\n  caused by: c",
		},
		{
			name: "text-less note with fields renders its fields",
			err:  Wrap(With(New("c"), "attempt", 2), "a"),
			want: "a\n  caused by: attempt=2\n    caused by: c",
		},
		{name: "only empty levels", err: Wrap(errors.New(""), ""), want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Render(tt.err, false))
		})
	}
}

func TestRender_FallsBackToErrorText(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w", errors.New(""))
	assert.Equal(t, "", Render(err, false))
}

func TestRender_BacktraceSection(t *testing.T) {
	t.Parallel()
	requireCapture(t)

	err := WrapWith(rich, rich.New("c"), "a")
	out := Render(err, true)

	head, trace, ok := strings.Cut(out, "\n\n"+BacktraceHeader+"\n")
	require.True(t, ok, "missing backtrace section in %q", out)
	assert.Equal(t, "a\n  caused by: c", head)

	frames := strings.Split(trace, "\n")
	require.Len(t, frames, len(BacktraceOf(err)))
	for _, f := range frames {
		assert.True(t, strings.HasPrefix(f, "  "), "frame %q is not indented", f)
	}
	assert.Contains(t, frames[0], "TestRender_BacktraceSection")

	assert.Equal(t, "a\n  caused by: c", Render(err, false))
}

func TestRender_NoSnapshotNoSection(t *testing.T) {
	t.Parallel()

	err := Wrap(New("c"), "a")
	assert.Equal(t, "a\n  caused by: c", Render(err, true))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteRendering_ReportsWriteErrors(t *testing.T) {
	t.Parallel()

	assert.EqualError(t, WriteRendering(failingWriter{}, New("x"), false), "closed")
	assert.NoError(t, WriteRendering(failingWriter{}, nil, false))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	err := Wrap(New("c"), "a")
	sum := Coalesce(err, testRead)

	assert.Equal(t, "a: c", fmt.Sprintf("%v", err))
	assert.Equal(t, "a: c", fmt.Sprintf("%s", err))
	assert.Equal(t, `"a: c"`, fmt.Sprintf("%q", err))
	assert.Equal(t, "a\n  caused by: c", fmt.Sprintf("%+v", err))
	assert.Equal(t, "a\n  caused by: c", fmt.Sprintf("%+v", sum))
	assert.Equal(t, "c", fmt.Sprintf("%v", New("c")))
	assert.Equal(t, "%!d(c)", fmt.Sprintf("%d", New("c")))
}
