package workflow

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// maxDocumentDepth caps element nesting while decoding. Documents come from
// outside the system, so depth must be bounded before any recursive walk.
const maxDocumentDepth = 100

// element is a generic XML element tree node. The workflow schema is only
// informally specified, so the document is decoded into a dynamic tree and
// picked apart best-effort instead of being unmarshalled into fixed structs.
type element struct {
	tag      string
	attrs    map[string]string
	text     string
	children []*element
}

// decodeDocument parses raw bytes into an element tree. Any malformed input
// yields an error and no partial tree.
func decodeDocument(raw []byte) (*element, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("malformed document: empty input")
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))
	var root *element
	stack := make([]*element, 0, 16)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) >= maxDocumentDepth {
				return nil, fmt.Errorf("malformed document: nesting exceeds %d levels", maxDocumentDepth)
			}
			el := &element{tag: t.Name.Local}
			if len(t.Attr) > 0 {
				el.attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					el.attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("malformed document: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("malformed document: no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("malformed document: unterminated element <%s>", stack[len(stack)-1].tag)
	}
	return root, nil
}

// attr returns the value of an attribute, or "" if absent.
func (e *element) attr(name string) string {
	return e.attrs[name]
}

// find returns the first descendant with the given tag in document order,
// not including the element itself.
func (e *element) find(tag string) *element {
	stack := []*element{}
	for i := len(e.children) - 1; i >= 0; i-- {
		stack = append(stack, e.children[i])
	}
	for len(stack) > 0 {
		el := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if el.tag == tag {
			return el
		}
		for i := len(el.children) - 1; i >= 0; i-- {
			stack = append(stack, el.children[i])
		}
	}
	return nil
}

// findAll returns every descendant with the given tag in document order,
// descending into matches as well.
func (e *element) findAll(tag string) []*element {
	var matches []*element
	stack := []*element{}
	for i := len(e.children) - 1; i >= 0; i-- {
		stack = append(stack, e.children[i])
	}
	for len(stack) > 0 {
		el := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if el.tag == tag {
			matches = append(matches, el)
		}
		for i := len(el.children) - 1; i >= 0; i-- {
			stack = append(stack, el.children[i])
		}
	}
	return matches
}
