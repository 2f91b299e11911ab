package xmlsrc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"
)

// Document is one parsed input file, retained for the lifetime of
// initialization because error messages and lazily-inspected nodes reach
// back into it (spec: scoped resources). The raw source is kept only in
// snappy-compressed form; it is decompressed on demand to print an
// error-context snippet, trading a little CPU for materially less resident
// memory across a large multi-file model.
type Document struct {
	Path       string
	Root       Node
	compressed []byte
	rawLen     int
	lineStarts []int // byte offsets, ascending, of the first byte of each line
}

// Open memory-maps path, parses it as XML, and returns a Document whose
// nodes carry source line numbers. The mapping is closed before Open
// returns; only the decoded tree and a compressed copy of the source
// survive.
func Open(path string) (*Document, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer ra.Close()

	raw := make([]byte, ra.Len())
	if _, err := ra.ReadAt(raw, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc := &Document{
		Path:       path,
		compressed: snappy.Encode(nil, raw),
		rawLen:     len(raw),
		lineStarts: computeLineStarts(raw),
	}

	root, err := parse(raw, doc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	doc.Root = root
	return doc, nil
}

// Snippet decompresses the retained source and returns the text of the
// given 1-based line, for use in diagnostic output. Returns "" if the line
// is out of range.
func (d *Document) Snippet(line int) string {
	if line < 1 || line > len(d.lineStarts) {
		return ""
	}
	raw, err := snappy.Decode(nil, d.compressed)
	if err != nil {
		return ""
	}
	start := d.lineStarts[line-1]
	end := len(raw)
	if line < len(d.lineStarts) {
		end = d.lineStarts[line]
	}
	return string(bytes.TrimRight(raw[start:end], "\r\n"))
}

func computeLineStarts(raw []byte) []int {
	starts := []int{0}
	for i, b := range raw {
		if b == '\n' && i+1 < len(raw) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func lineForOffset(starts []int, offset int64) int {
	idx := sort.Search(len(starts), func(i int) bool { return int64(starts[i]) > offset })
	return idx // idx is 1-based line number already since starts[0]=0 -> line 1
}

// parse decodes raw as XML into a Node tree, attaching a line number to
// every element derived from the decoder's byte offset at the moment its
// start token was read.
func parse(raw []byte, doc *Document) (Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	type frame struct {
		el   *element
		text bytes.Buffer
	}
	var stack []*frame
	var root *element

	for {
		off := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make(map[string]string, len(t.Attr))
			for _, a := range t.Attr {
				attrs[a.Name.Local] = a.Value
			}
			el := &element{
				name:  t.Name.Local,
				attrs: attrs,
				line:  lineForOffset(doc.lineStarts, off),
				doc:   doc,
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.el.children = append(parent.el.children, el)
			} else {
				root = el
			}
			stack = append(stack, &frame{el: el})
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			top.el.text = top.text.String()
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, fmt.Errorf("empty document")
	}
	return root, nil
}
