package connectors

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Element is a node of a parsed XML document.
type Element struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Element
}

// Find returns every descendant element named name, in document order.
func (e *Element) Find(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
		out = append(out, c.Find(name)...)
	}
	return out
}

// Child returns the first direct child named name.
func (e *Element) Child(name string) (*Element, bool) {
	for _, c := range e.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// XMLConnector holds a parsed XML tree.
type XMLConnector struct {
	path string
	root *Element
}

// NewXMLConnector reads and parses the XML file at path.
func NewXMLConnector(path string) (*XMLConnector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	root, err := parseXML(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &XMLConnector{path: path, root: root}, nil
}

func (c *XMLConnector) Format() string { return FormatXML }
func (c *XMLConnector) Path() string   { return c.path }
func (c *XMLConnector) Data() any      { return c.root }

// Root returns the document element.
func (c *XMLConnector) Root() *Element { return c.root }

// Find returns every element named name, the root included.
func (c *XMLConnector) Find(name string) []*Element {
	var out []*Element
	if c.root.Name == name {
		out = append(out, c.root)
	}
	return append(out, c.root.Find(name)...)
}

func parseXML(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var (
		root  *Element
		stack []*Element
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			if len(t.Attr) > 0 {
				el.Attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					el.Attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		case xml.EndElement:
			el := stack[len(stack)-1]
			el.Text = strings.TrimSpace(el.Text)
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, errors.New("empty document")
	}
	return root, nil
}
