package urdf

import (
	"bufio"
	"encoding/xml"
	"io"
	"strings"
)

const header = `<?xml version="1.0"?>`

// element is a node of the document being written. Elements without
// children or text are written self-closing.
type element struct {
	name     string
	attrs    []xml.Attr
	text     string
	children []*element
}

func newElement(name string) *element {
	return &element{name: name}
}

// attr appends an attribute; empty values are skipped.
func (e *element) attr(name, value string) *element {
	if value == "" {
		return e
	}
	e.attrs = append(e.attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return e
}

func (e *element) add(children ...*element) *element {
	for _, c := range children {
		if c != nil {
			e.children = append(e.children, c)
		}
	}
	return e
}

func (e *element) withText(text string) *element {
	e.text = text
	return e
}

type writer struct {
	w      *bufio.Writer
	indent string
}

func (w *writer) newline(depth int) {
	if w.indent == "" {
		return
	}
	w.w.WriteByte('\n')
	w.w.WriteString(strings.Repeat(w.indent, depth))
}

func (w *writer) escape(s string) {
	// EscapeText only fails when the underlying writer does; bufio keeps
	// that error until Flush.
	_ = xml.EscapeText(w.w, []byte(s))
}

func (w *writer) element(e *element, depth int) {
	w.w.WriteByte('<')
	w.w.WriteString(e.name)
	for _, a := range e.attrs {
		w.w.WriteByte(' ')
		w.w.WriteString(a.Name.Local)
		w.w.WriteString(`="`)
		w.escape(a.Value)
		w.w.WriteByte('"')
	}
	switch {
	case len(e.children) == 0 && e.text == "":
		w.w.WriteString("/>")
		return
	case len(e.children) == 0:
		w.w.WriteByte('>')
		w.escape(e.text)
	default:
		w.w.WriteByte('>')
		for _, c := range e.children {
			w.newline(depth + 1)
			w.element(c, depth+1)
		}
		w.newline(depth)
	}
	w.w.WriteString("</")
	w.w.WriteString(e.name)
	w.w.WriteByte('>')
}

// writeDocument writes the declaration followed by root.
func writeDocument(out io.Writer, root *element, indent Indent) error {
	w := &writer{w: bufio.NewWriter(out), indent: indent.unit()}
	w.w.WriteString(header)
	w.newline(0)
	w.element(root, 0)
	if w.indent != "" {
		w.w.WriteByte('\n')
	}
	return w.w.Flush()
}
