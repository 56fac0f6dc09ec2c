// Package help provides the abstract document tree used for all help
// messages and error reports, along with a renderer for plain-text, ANSI and
// HTML output. Grammars never format text themselves: they build documents.
package help

// Doc is a help document block. The set of blocks is closed:
// use the constructors of this package to build them.
type Doc interface {
	isDoc()
}

type (
	empty  struct{}
	header struct {
		span  Span
		level int
	}
	paragraph struct {
		span Span
	}
	descriptionList struct {
		items []Definition
	}
	enumeration struct {
		items []Doc
	}
	sequence struct {
		docs []Doc
	}
	concat struct {
		docs []Doc
	}
)

func (empty) isDoc()           {}
func (header) isDoc()          {}
func (paragraph) isDoc()       {}
func (descriptionList) isDoc() {}
func (enumeration) isDoc()     {}
func (sequence) isDoc()        {}
func (concat) isDoc()          {}

// Definition is a single term and its description in a description list.
type Definition struct {
	Term        Span
	Description Doc
}

// Empty returns a document rendering to nothing.
func Empty() Doc { return empty{} }

// H1 returns a top-level section header.
func H1(text string) Doc { return header{span: Text(text), level: 1} }

// H2 returns a second-level header.
func H2(text string) Doc { return header{span: Text(text), level: 2} }

// P returns a paragraph made of the given spans.
func P(spans ...Span) Doc { return paragraph{span: Spans(spans...)} }

// Pf is a shorthand for a paragraph of plain text.
func Pf(text string) Doc { return paragraph{span: Text(text)} }

// DescriptionList returns a list of terms, each followed by its description.
func DescriptionList(items ...Definition) Doc {
	if len(items) == 0 {
		return empty{}
	}

	return descriptionList{items: items}
}

// Enumeration returns a bullet list.
func Enumeration(items ...Doc) Doc {
	items = nonEmpty(items)
	if len(items) == 0 {
		return empty{}
	}

	return enumeration{items: items}
}

// Sequence returns blocks rendered one after the other,
// separated by a blank line.
func Sequence(docs ...Doc) Doc {
	docs = flatten(nonEmpty(docs), func(d Doc) ([]Doc, bool) {
		s, ok := d.(sequence)
		return s.docs, ok
	})

	switch len(docs) {
	case 0:
		return empty{}
	case 1:
		return docs[0]
	default:
		return sequence{docs: docs}
	}
}

// Concat returns blocks rendered back to back, without separation.
func Concat(docs ...Doc) Doc {
	docs = flatten(nonEmpty(docs), func(d Doc) ([]Doc, bool) {
		c, ok := d.(concat)
		return c.docs, ok
	})

	switch len(docs) {
	case 0:
		return empty{}
	case 1:
		return docs[0]
	default:
		return concat{docs: docs}
	}
}

// IsEmpty reports whether the document renders to nothing.
func IsEmpty(doc Doc) bool {
	switch d := doc.(type) {
	case nil, empty:
		return true
	case paragraph:
		return d.span.IsEmpty()
	case header:
		return d.span.IsEmpty()
	case descriptionList:
		return len(d.items) == 0
	case enumeration:
		return len(d.items) == 0
	case sequence:
		return len(d.docs) == 0
	case concat:
		return len(d.docs) == 0
	}

	return false
}

// Section is a shorthand for an H1 header followed by its content,
// returning an empty document when the content is empty.
func Section(title string, content Doc) Doc {
	if IsEmpty(content) {
		return empty{}
	}

	return Concat(H1(title), content)
}

func nonEmpty(docs []Doc) []Doc {
	kept := make([]Doc, 0, len(docs))

	for _, doc := range docs {
		if !IsEmpty(doc) {
			kept = append(kept, doc)
		}
	}

	return kept
}

func flatten(docs []Doc, unwrap func(Doc) ([]Doc, bool)) []Doc {
	flat := make([]Doc, 0, len(docs))

	for _, doc := range docs {
		if inner, ok := unwrap(doc); ok {
			flat = append(flat, inner...)
			continue
		}
		flat = append(flat, doc)
	}

	return flat
}
