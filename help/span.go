package help

import "strings"

type spanKind int

const (
	spanText spanKind = iota
	spanCode
	spanError
	spanWeak
	spanStrong
	spanSequence
)

// Span is a piece of inline text carrying a style.
type Span struct {
	kind     spanKind
	text     string
	children []Span
}

// Text returns an unstyled span.
func Text(text string) Span { return Span{kind: spanText, text: text} }

// Code returns a span for literal command-line input (flags, commands).
func Code(text string) Span { return Span{kind: spanCode, text: text} }

// Weak returns a de-emphasized span.
func Weak(text string) Span { return Span{kind: spanWeak, text: text} }

// Strong returns an emphasized span.
func Strong(text string) Span { return Span{kind: spanStrong, text: text} }

// Error returns a span styled as an error, wrapping the given spans.
func Error(spans ...Span) Span { return Span{kind: spanError, children: spans} }

// Spans concatenates several spans into one.
func Spans(spans ...Span) Span {
	if len(spans) == 1 {
		return spans[0]
	}

	return Span{kind: spanSequence, children: spans}
}

// String returns the span's raw text, without any style.
func (s Span) String() string {
	if len(s.children) == 0 {
		return s.text
	}

	var buf strings.Builder
	for _, child := range s.children {
		buf.WriteString(child.String())
	}

	return buf.String()
}

// IsEmpty reports whether the span holds no text.
func (s Span) IsEmpty() bool {
	return s.String() == ""
}
