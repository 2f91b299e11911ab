// Package xmlsrc is the thin DOM abstraction the rest of the initializer
// builds against: a Node interface with source-line attribution, backed by
// a concrete encoding/xml implementation. Nothing outside this package
// needs to know how a Node's line number was computed.
package xmlsrc

// Node is the only surface the rest of the initializer sees of the parsed
// XML tree. It deliberately mirrors what the original DOM wrapper exposed:
// a tag name, attribute lookup, ordered element children, inline character
// data, and the source line the element started on.
type Node interface {
	// Name is the XML element (tag) name.
	Name() string
	// Attr returns the named attribute's value, or "" if absent.
	Attr(name string) string
	// HasAttr reports whether the attribute is present at all, which
	// matters for attributes like role="" that are distinct from an
	// absent role attribute.
	HasAttr(name string) bool
	// Children returns the element's direct element children, in
	// document order. Comments and processing instructions are dropped;
	// character data is not represented here (see Text).
	Children() []Node
	// ChildrenNamed filters Children to a single tag name.
	ChildrenNamed(name string) []Node
	// Text returns the concatenated character data directly under this
	// element (not recursively).
	Text() string
	// Line is the 1-based source line the element's start tag appears on.
	Line() int
	// Doc is the document this node belongs to, kept alive for the
	// lifetime of initialization so line numbers stay meaningful.
	Doc() *Document
}

type element struct {
	name     string
	attrs    map[string]string
	children []Node
	text     string
	line     int
	doc      *Document
}

func (e *element) Name() string { return e.name }

func (e *element) Attr(name string) string { return e.attrs[name] }

func (e *element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

func (e *element) Children() []Node { return e.children }

func (e *element) ChildrenNamed(name string) []Node {
	out := make([]Node, 0, len(e.children))
	for _, c := range e.children {
		if c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

func (e *element) Text() string { return e.text }

func (e *element) Line() int { return e.line }

func (e *element) Doc() *Document { return e.doc }
