package xml

import "strings"

// NodeKind discriminates element and text nodes.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
)

// Attr is a single element attribute. Attribute order is preserved as
// written.
type Attr struct {
	Name  string
	Value string
}

// Node is one node of an XML tree: either an element with a tag,
// attributes, and children, or a text run. Each node is owned uniquely by
// its parent; trees are finite and acyclic.
type Node struct {
	Kind     NodeKind
	Tag      string  // element tag name; empty for text nodes
	Attrs    []Attr  // attributes in document order
	Children []*Node // children in document order
	Text     string  // text content; empty for element nodes
}

// Element creates an element node with the given children.
func Element(tag string, children ...*Node) *Node {
	return &Node{Kind: ElementNode, Tag: tag, Children: children}
}

// Text creates a text node.
func Text(text string) *Node {
	return &Node{Kind: TextNode, Text: text}
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing an existing value or
// appending a new attribute.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Child returns the first element child with the given tag.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Kind == ElementNode && c.Tag == tag {
			return c
		}
	}
	return nil
}

// TextContent returns the concatenated text of the node and all its
// descendants in document order.
func (n *Node) TextContent() string {
	if n.Kind == TextNode {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Equal reports whether two trees are structurally identical.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind || n.Tag != o.Tag || n.Text != o.Text {
		return false
	}
	if len(n.Attrs) != len(o.Attrs) || len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Attrs {
		if n.Attrs[i] != o.Attrs[i] {
			return false
		}
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// ParseConfig controls XML parsing.
type ParseConfig struct {
	// PreserveWhitespace keeps text nodes byte-for-byte. When false,
	// text runs are trimmed and whitespace-only runs between elements
	// are dropped.
	PreserveWhitespace bool
	// DecodeEntities expands named and numeric character references in
	// text runs and attribute values. CDATA content is never decoded.
	DecodeEntities bool
}

// DefaultParseConfig returns a config that trims whitespace and decodes
// entities.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{DecodeEntities: true}
}

// SerializeConfig controls XML serialization.
type SerializeConfig struct {
	// Indent is the per-depth indentation unit. Empty disables
	// pretty-printing.
	Indent string
	// IncludeDeclaration emits an XML declaration first.
	IncludeDeclaration bool
	// EncodeEntities replaces special characters in text content with
	// named entities.
	EncodeEntities bool
	// SelfClosingTags renders childless elements as <tag/> instead of
	// <tag></tag>.
	SelfClosingTags bool
}

// DefaultSerializeConfig returns a compact config with entity encoding
// and self-closing tags.
func DefaultSerializeConfig() SerializeConfig {
	return SerializeConfig{EncodeEntities: true, SelfClosingTags: true}
}
