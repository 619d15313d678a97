package xml

import (
	"bytes"
	"errors"
	"strings"
)

const declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Serialize renders a tree as an XML byte buffer according to cfg.
//
// Attribute values are always rendered double-quoted with their '&', '<',
// and '"' entity-encoded regardless of cfg.EncodeEntities, so the output
// re-parses to the same attribute values. When cfg.Indent is set,
// elements are pretty-printed, but no formatting whitespace is inserted
// around text content.
func Serialize(node *Node, cfg SerializeConfig) ([]byte, error) {
	if node == nil {
		return nil, errors.New("cannot serialize a nil node")
	}
	if node.Kind != ElementNode {
		return nil, errors.New("root node must be an element")
	}

	var buf bytes.Buffer
	if cfg.IncludeDeclaration {
		buf.WriteString(declaration)
		if cfg.Indent != "" {
			buf.WriteByte('\n')
		}
	}
	writeNode(&buf, node, cfg, 0)
	if cfg.Indent != "" {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func writeNode(buf *bytes.Buffer, n *Node, cfg SerializeConfig, depth int) {
	if n.Kind == TextNode {
		if cfg.EncodeEntities {
			buf.WriteString(EncodeEntities(n.Text))
		} else {
			buf.WriteString(n.Text)
		}
		return
	}

	buf.WriteByte('<')
	buf.WriteString(n.Tag)
	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(encodeAttr(a.Value, cfg.EncodeEntities))
		buf.WriteByte('"')
	}

	if len(n.Children) == 0 {
		if cfg.SelfClosingTags {
			buf.WriteString("/>")
		} else {
			buf.WriteString("></")
			buf.WriteString(n.Tag)
			buf.WriteByte('>')
		}
		return
	}
	buf.WriteByte('>')

	// Indent only around element children: any formatting whitespace
	// next to a text node would change its value on re-parse.
	pretty := cfg.Indent != "" && elementsOnly(n)
	for _, c := range n.Children {
		if pretty {
			buf.WriteByte('\n')
			writeIndent(buf, cfg.Indent, depth+1)
		}
		writeNode(buf, c, cfg, depth+1)
	}
	if pretty {
		buf.WriteByte('\n')
		writeIndent(buf, cfg.Indent, depth)
	}
	buf.WriteString("</")
	buf.WriteString(n.Tag)
	buf.WriteByte('>')
}

func elementsOnly(n *Node) bool {
	for _, c := range n.Children {
		if c.Kind == TextNode {
			return false
		}
	}
	return true
}

func writeIndent(buf *bytes.Buffer, unit string, depth int) {
	buf.WriteString(strings.Repeat(unit, depth))
}
