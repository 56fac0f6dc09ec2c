package help

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() Doc {
	return Sequence(
		Concat(H1("usage"), P(Code("wc"), Text(" [-l] <files>..."))),
		Concat(H1("options"), DescriptionList(
			Definition{Term: Code("-l, --lines"), Description: Pf("Count lines.")},
			Definition{Term: Code("-w, --words"), Description: Pf("Count words.")},
		)),
	)
}

func TestRenderPlain(t *testing.T) {
	t.Parallel()

	expected := `USAGE
wc [-l] <files>...

OPTIONS
-l, --lines
    Count lines.
-w, --words
    Count words.
`
	require.Equal(t, expected, Render(sampleDoc(), Plain))
}

func TestRenderWrap(t *testing.T) {
	t.Parallel()

	doc := Pf("one two three four five six")
	require.Equal(t, "one two three\nfour five six\n", RenderWidth(doc, Plain, 14))
}

func TestRenderEnumeration(t *testing.T) {
	t.Parallel()

	doc := Enumeration(Pf("first"), Pf("second"))
	require.Equal(t, "- first\n- second\n", Render(doc, Plain))
}

func TestRenderANSI(t *testing.T) {
	t.Parallel()

	out := Render(P(Error(Text("bad flag"))), ANSI)
	assert.Contains(t, out, "\x1b[31m")
	assert.Contains(t, out, "bad")
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	out := Render(Concat(H1("usage"), P(Code("<wc>"))), HTML)
	require.Equal(t, "<h1>usage</h1>\n<p><code>&lt;wc&gt;</code></p>\n", out)
}

func TestEmptyCollapses(t *testing.T) {
	t.Parallel()

	require.True(t, IsEmpty(Sequence(Empty(), Pf(""), Concat())))
	require.True(t, IsEmpty(Section("options", Empty())))
	require.Equal(t, "", Render(Empty(), Plain))

	doc := Sequence(Pf("a"), Empty(), Pf("b"))
	require.Equal(t, "a\n\nb\n", Render(doc, Plain))
}

func TestSpanString(t *testing.T) {
	t.Parallel()

	span := Spans(Text("Did you mean "), Code("--after"), Text("?"))
	require.Equal(t, "Did you mean --after?", span.String())
}
