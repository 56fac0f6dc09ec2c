package help

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Mode is an output format for rendered documents.
type Mode int

const (
	// Plain renders text without any escape sequence.
	Plain Mode = iota
	// ANSI renders text with terminal colors and emphasis.
	ANSI
	// HTML renders an HTML fragment.
	HTML
)

const (
	descIndent   = 4
	bulletIndent = 2
)

// Render renders a document in the given mode, without wrapping.
func Render(doc Doc, mode Mode) string {
	return RenderWidth(doc, mode, 0)
}

// RenderWidth renders a document in the given mode, wrapping paragraphs
// at width columns when width is positive (ignored in HTML mode).
func RenderWidth(doc Doc, mode Mode, width int) string {
	r := &renderer{mode: mode, width: width}

	if mode == HTML {
		r.html(doc)
	} else {
		r.text(doc, 0)
	}

	return r.buf.String()
}

// ModeFor returns ANSI if the file descriptor is a terminal
// and colors are not disabled, or Plain otherwise.
func ModeFor(fd int) Mode {
	if !term.IsTerminal(fd) || color.NoColor {
		return Plain
	}

	return ANSI
}

// WidthFor returns the width of the terminal behind fd,
// or 0 (no wrapping) if it is not a terminal.
func WidthFor(fd int) int {
	if !term.IsTerminal(fd) {
		return 0
	}

	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}

	return width
}

type renderer struct {
	mode  Mode
	width int
	buf   strings.Builder
}

//
// Plain & ANSI -------------------------------------------------------------- //
//

func (r *renderer) text(doc Doc, indent int) {
	switch d := doc.(type) {
	case header:
		text := d.span
		if d.level == 1 && r.mode == Plain {
			text = Text(strings.ToUpper(d.span.String()))
		}
		r.line(indent, r.styled(segment{kind: spanStrong, text: text.String()}))

	case paragraph:
		r.paragraph(d.span, indent)

	case descriptionList:
		for _, item := range d.items {
			r.paragraph(item.Term, indent)
			r.text(item.Description, indent+descIndent)
		}

	case enumeration:
		for _, item := range d.items {
			sub := &renderer{mode: r.mode, width: r.width}
			sub.text(item, indent+bulletIndent)
			lines := strings.SplitAfter(sub.buf.String(), "\n")

			for i, line := range lines {
				if i == 0 && len(line) >= indent+bulletIndent {
					line = strings.Repeat(" ", indent) + "- " + line[indent+bulletIndent:]
				}
				r.buf.WriteString(line)
			}
		}

	case sequence:
		for i, block := range d.docs {
			if i > 0 {
				r.buf.WriteString("\n")
			}
			r.text(block, indent)
		}

	case concat:
		for _, block := range d.docs {
			r.text(block, indent)
		}
	}
}

func (r *renderer) paragraph(span Span, indent int) {
	if span.IsEmpty() {
		return
	}

	words := words(segments(span, spanText))
	if r.width <= indent || r.width <= 0 {
		var line strings.Builder
		for i, w := range words {
			if i > 0 && w.space {
				line.WriteString(" ")
			}
			line.WriteString(r.styled(w.segment))
		}
		r.line(indent, line.String())

		return
	}

	var line strings.Builder
	length := 0

	for _, w := range words {
		size := utf8.RuneCountInString(w.text)

		switch {
		case length == 0:
		case !w.space:
		case indent+length+1+size > r.width:
			r.line(indent, line.String())
			line.Reset()
			length = 0
		default:
			line.WriteString(" ")
			length++
		}

		line.WriteString(r.styled(w.segment))
		length += size
	}

	if length > 0 {
		r.line(indent, line.String())
	}
}

func (r *renderer) line(indent int, text string) {
	r.buf.WriteString(strings.Repeat(" ", indent))
	r.buf.WriteString(text)
	r.buf.WriteString("\n")
}

func (r *renderer) styled(seg segment) string {
	if r.mode != ANSI {
		return seg.text
	}

	var style *color.Color

	switch seg.kind {
	case spanCode:
		style = color.New(color.FgCyan)
	case spanError:
		style = color.New(color.FgRed)
	case spanWeak:
		style = color.New(color.Faint)
	case spanStrong:
		style = color.New(color.Bold)
	default:
		return seg.text
	}

	style.EnableColor()

	return style.Sprint(seg.text)
}

//
// HTML ---------------------------------------------------------------------- //
//

func (r *renderer) html(doc Doc) {
	switch d := doc.(type) {
	case header:
		tag := "h1"
		if d.level > 1 {
			tag = "h2"
		}
		r.buf.WriteString("<" + tag + ">" + r.htmlSpan(d.span) + "</" + tag + ">\n")

	case paragraph:
		r.buf.WriteString("<p>" + r.htmlSpan(d.span) + "</p>\n")

	case descriptionList:
		r.buf.WriteString("<dl>\n")
		for _, item := range d.items {
			r.buf.WriteString("<dt>" + r.htmlSpan(item.Term) + "</dt>\n<dd>\n")
			r.html(item.Description)
			r.buf.WriteString("</dd>\n")
		}
		r.buf.WriteString("</dl>\n")

	case enumeration:
		r.buf.WriteString("<ul>\n")
		for _, item := range d.items {
			r.buf.WriteString("<li>\n")
			r.html(item)
			r.buf.WriteString("</li>\n")
		}
		r.buf.WriteString("</ul>\n")

	case sequence:
		for _, block := range d.docs {
			r.html(block)
		}

	case concat:
		for _, block := range d.docs {
			r.html(block)
		}
	}
}

func (r *renderer) htmlSpan(span Span) string {
	var buf strings.Builder

	for _, seg := range segments(span, spanText) {
		text := html.EscapeString(seg.text)

		switch seg.kind {
		case spanCode:
			buf.WriteString("<code>" + text + "</code>")
		case spanError:
			buf.WriteString(`<span style="color:red">` + text + "</span>")
		case spanWeak:
			buf.WriteString("<em>" + text + "</em>")
		case spanStrong:
			buf.WriteString("<strong>" + text + "</strong>")
		default:
			buf.WriteString(text)
		}
	}

	return buf.String()
}

//
// Span layout --------------------------------------------------------------- //
//

// segment is a run of text sharing a single style.
type segment struct {
	kind spanKind
	text string
}

// word is a wrappable unit, remembering whether
// it was preceded by whitespace in the source text.
type word struct {
	segment
	space bool
}

// segments flattens a span tree, the innermost style winning
// except for errors, which color everything they contain.
func segments(span Span, inherited spanKind) []segment {
	kind := span.kind
	if kind == spanSequence || inherited == spanError {
		kind = inherited
	}

	if len(span.children) == 0 {
		if span.text == "" {
			return nil
		}

		return []segment{{kind: kind, text: span.text}}
	}

	var segs []segment
	for _, child := range span.children {
		segs = append(segs, segments(child, kind)...)
	}

	return segs
}

func words(segs []segment) []word {
	var all []word

	leadingSpace := false

	for _, seg := range segs {
		fields := strings.Fields(seg.text)
		startsWithSpace := strings.TrimLeft(seg.text, " \t\n") != seg.text

		for i, field := range fields {
			space := i > 0 || startsWithSpace || leadingSpace
			all = append(all, word{segment: segment{kind: seg.kind, text: field}, space: space})
		}

		leadingSpace = strings.TrimRight(seg.text, " \t\n") != seg.text
	}

	return all
}
