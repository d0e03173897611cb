package xgxfault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testKind int

const (
	testRead testKind = iota + 1
	testParse
	testWrite
)

func (k testKind) String() string {
	switch k {
	case testRead:
		return "read"
	case testParse:
		return "parse"
	case testWrite:
		return "write"
	default:
		return fmt.Sprintf("testKind(%d)", int(k))
	}
}

var testKinds = Variants(testRead, testParse, testWrite)

type decodeFailure struct{ line int }

func (e *decodeFailure) Error() string { return fmt.Sprintf("bad token at line %d", e.line) }

type otherFailure struct{}

func (*otherFailure) Error() string { return "other" }

func TestCoalesce_PresentsAsPayload(t *testing.T) {
	t.Parallel()

	payload := Wrap(New("cannot open"), "loading")
	sum := Coalesce(payload, testRead)

	assert.Equal(t, testRead, sum.Variant())
	assert.Same(t, payload, sum.Payload())
	assert.Same(t, payload, sum.Unwrap())
	assert.Equal(t, "read", sum.Tag())
	assert.Equal(t, payload.Error(), sum.Error())
	assert.Equal(t, payload.Message(), sum.Message())
	assert.Equal(t, Render(payload, false), Render(sum, false))
}

func TestCoalesce_NilPayloadIsADefect(t *testing.T) {
	t.Parallel()

	require.PanicsWithValue(t, "xgxfault: coalesce of nil error into read", func() {
		_ = Coalesce[testKind](nil, testRead)
	})
}

func TestInto(t *testing.T) {
	t.Parallel()

	toParse := Into(testParse)
	assert.NoError(t, toParse(nil))

	err := toParse(errors.New("bad"))
	require.Error(t, err)
	assert.True(t, IsVariant(err, testParse))
	assert.False(t, IsVariant(err, testRead))
}

func TestVariantOf(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", Coalesce(New("x"), testWrite))
	v, ok := VariantOf[testKind](err)
	require.True(t, ok)
	assert.Equal(t, testWrite, v)

	_, ok = VariantOf[testKind](New("x"))
	assert.False(t, ok)
}

func TestVariants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, testKinds.Len())
	assert.Equal(t, []testKind{testRead, testParse, testWrite}, testKinds.All())
	assert.True(t, testKinds.Contains(testParse))
	assert.False(t, testKinds.Contains(testKind(9)))

	require.PanicsWithValue(t, "xgxfault: duplicate variant read", func() {
		_ = Variants(testRead, testParse, testRead)
	})
}

func newKindMatcher() *Matcher[testKind, string] {
	return NewMatcher[testKind, string](func(err error) string { return "other: " + err.Error() }).
		On(testRead, func(p error) string { return "read: " + MessageOf(p) }).
		On(testParse, func(p error) string { return "parse: " + MessageOf(p) })
}

func TestMatcher_Match(t *testing.T) {
	t.Parallel()

	m := newKindMatcher()
	assert.Equal(t, "read: loading", m.Match(Coalesce(Wrap(New("x"), "loading"), testRead)))
	assert.Equal(t, "parse: decoding", m.Match(Coalesce(Wrap(New("x"), "decoding"), testParse)))
	assert.Equal(t, "other: x", m.Match(Coalesce(New("x"), testWrite)))
	assert.Equal(t, "other: plain", m.Match(errors.New("plain")))
}

func TestMatcher_Exhaustiveness(t *testing.T) {
	t.Parallel()

	m := newKindMatcher()
	assert.Equal(t, []testKind{testWrite}, m.Missing(testKinds))

	m.On(testWrite, func(error) string { return "write" })
	assert.Empty(t, m.Missing(testKinds))
}

func TestMatcher_Defects(t *testing.T) {
	t.Parallel()

	require.PanicsWithValue(t, "xgxfault: matcher without otherwise branch", func() {
		_ = NewMatcher[testKind, string](nil)
	})
	require.PanicsWithValue(t, "xgxfault: duplicate case for variant read", func() {
		newKindMatcher().On(testRead, func(error) string { return "" })
	})
}

func TestCoalescer_From(t *testing.T) {
	t.Parallel()

	c := NewCoalescer[testKind](Diagnostics{})
	Implicit[*decodeFailure](c, testParse)
	Implicit[*otherFailure](c, testWrite)

	err := Wrap(&decodeFailure{line: 3}, "decoding")
	sum, ok := c.From(err)
	require.True(t, ok)
	assert.Equal(t, testParse, sum.Variant())
	assert.Same(t, err, sum.Payload())

	sum, ok = c.From(&otherFailure{})
	require.True(t, ok)
	assert.Equal(t, testWrite, sum.Variant())

	_, ok = c.From(New("unrelated"))
	assert.False(t, ok)

	_, ok = c.From(nil)
	assert.False(t, ok)

	assert.Equal(t, map[string]testKind{
		"*xgxfault.decodeFailure": testParse,
		"*xgxfault.otherFailure":  testWrite,
	}, c.Types())
}

func TestCoalescer_OutermostRuleWins(t *testing.T) {
	t.Parallel()

	c := NewCoalescer[testKind](Diagnostics{})
	Implicit[*decodeFailure](c, testParse)
	Implicit[*Context[string]](c, testRead)

	sum, ok := c.From(Wrap(&decodeFailure{line: 1}, "decoding"))
	require.True(t, ok)
	assert.Equal(t, testRead, sum.Variant())
}

func TestImplicit_AmbiguousIsADefect(t *testing.T) {
	t.Parallel()

	c := NewCoalescer[testKind](Diagnostics{})
	Implicit[*decodeFailure](c, testParse)
	require.PanicsWithValue(t,
		"xgxfault: ambiguous implicit conversion for *xgxfault.decodeFailure (parse and read)",
		func() { Implicit[*decodeFailure](c, testRead) },
	)
}

func TestCoalescer_CapturesUnderDiagnostics(t *testing.T) {
	t.Parallel()
	requireCapture(t)

	c := NewCoalescer[testKind](rich)
	Implicit[*decodeFailure](c, testParse)

	sum, ok := c.From(&decodeFailure{line: 1})
	require.True(t, ok)
	assert.NotNil(t, sum.Backtrace())

	sum, ok = c.From(WrapWith(rich, &decodeFailure{line: 1}, "decoding"))
	require.True(t, ok)
	assert.Nil(t, sum.Backtrace())
	assert.NotNil(t, BacktraceOf(sum))
}
