package xml

import (
	"bytes"
	"fmt"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseError reports a structural XML failure and the byte offset at
// which it was detected.
type ParseError struct {
	Offset int
	msg    string
}

// Error returns the structural failure message.
func (e *ParseError) Error() string { return e.msg }

// Parse parses an XML byte buffer into a tree rooted at an element node.
//
// A leading UTF-8 byte order mark is skipped. The XML declaration,
// processing instructions, comments, and doctype declarations are
// consumed without contributing nodes. A document containing no element
// is an error.
func Parse(data []byte, cfg ParseConfig) (*Node, error) {
	p := &parser{buf: data, cfg: cfg}
	if bytes.HasPrefix(p.buf, utf8BOM) {
		p.pos = len(utf8BOM)
	}
	if err := p.skipMisc(); err != nil {
		return nil, err
	}
	if p.eof() {
		return nil, p.errorf("Empty XML document")
	}
	if p.buf[p.pos] != '<' {
		return nil, p.errorf("Unexpected content before root element")
	}
	root, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	if err := p.skipMisc(); err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf("Unexpected content after root element")
	}
	return root, nil
}

// parser is a recursive-descent parser over an XML byte buffer.
type parser struct {
	buf []byte
	pos int
	cfg ParseConfig
}

func (p *parser) eof() bool { return p.pos >= len(p.buf) }

func (p *parser) hasPrefix(s string) bool {
	return bytes.HasPrefix(p.buf[p.pos:], []byte(s))
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Offset: p.pos, msg: fmt.Sprintf(format, args...)}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.buf[p.pos]) {
		p.pos++
	}
}

// skipMisc consumes whitespace, processing instructions (including the
// XML declaration), comments, and doctype declarations.
func (p *parser) skipMisc() error {
	for !p.eof() {
		switch {
		case isSpace(p.buf[p.pos]):
			p.pos++
		case p.hasPrefix("<?"):
			if err := p.skipPI(); err != nil {
				return err
			}
		case p.hasPrefix("<!--"):
			if err := p.skipComment(); err != nil {
				return err
			}
		case p.hasPrefix("<!"):
			if err := p.skipDirective(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (p *parser) skipPI() error {
	end := bytes.Index(p.buf[p.pos:], []byte("?>"))
	if end < 0 {
		return p.errorf("Unterminated processing instruction")
	}
	p.pos += end + 2
	return nil
}

func (p *parser) skipComment() error {
	end := bytes.Index(p.buf[p.pos+4:], []byte("-->"))
	if end < 0 {
		return p.errorf("Unterminated comment")
	}
	p.pos += 4 + end + 3
	return nil
}

// skipDirective consumes a <!DOCTYPE ...> declaration, tracking nested
// brackets for an internal subset.
func (p *parser) skipDirective() error {
	depth := 0
	for i := p.pos; i < len(p.buf); i++ {
		switch p.buf[i] {
		case '[':
			depth++
		case ']':
			depth--
		case '>':
			if depth <= 0 {
				p.pos = i + 1
				return nil
			}
		}
	}
	return p.errorf("Unterminated declaration")
}

// readName consumes a tag or attribute name. Namespace prefixes are kept
// as opaque parts of the name.
func (p *parser) readName() string {
	start := p.pos
	for !p.eof() {
		b := p.buf[p.pos]
		if isSpace(b) || b == '=' || b == '>' || b == '/' || b == '<' || b == '"' || b == '\'' || b == '?' || b == '!' {
			break
		}
		p.pos++
	}
	return string(p.buf[start:p.pos])
}

// parseElement parses one element starting at '<'.
func (p *parser) parseElement() (*Node, error) {
	p.pos++ // consume '<'
	tag := p.readName()
	if tag == "" {
		return nil, p.errorf("Invalid element name")
	}
	node := &Node{Kind: ElementNode, Tag: tag}

	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("Unterminated element <%s>", tag)
		}
		if p.hasPrefix("/>") {
			p.pos += 2
			return node, nil
		}
		if p.buf[p.pos] == '>' {
			p.pos++
			break
		}
		attr, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		node.Attrs = append(node.Attrs, attr)
	}

	if err := p.parseChildren(node); err != nil {
		return nil, err
	}
	return node, nil
}

// parseAttribute parses one name="value" pair. The value quote may be
// single or double and must match its own opener.
func (p *parser) parseAttribute() (Attr, error) {
	name := p.readName()
	if name == "" {
		return Attr{}, p.errorf("Invalid attribute name")
	}
	p.skipSpace()
	if p.eof() || p.buf[p.pos] != '=' {
		return Attr{}, p.errorf("Expected '=' after attribute name %q", name)
	}
	p.pos++
	p.skipSpace()
	if p.eof() || (p.buf[p.pos] != '"' && p.buf[p.pos] != '\'') {
		return Attr{}, p.errorf("Expected quoted value for attribute %q", name)
	}
	quote := p.buf[p.pos]
	p.pos++
	end := bytes.IndexByte(p.buf[p.pos:], quote)
	if end < 0 {
		return Attr{}, p.errorf("Unclosed attribute value")
	}
	value := string(p.buf[p.pos : p.pos+end])
	p.pos += end + 1
	if p.cfg.DecodeEntities {
		value = DecodeEntities(value)
	}
	return Attr{Name: name, Value: value}, nil
}

// parseChildren parses the body of node up to its matching closing tag,
// alternating text runs and nested elements.
func (p *parser) parseChildren(node *Node) error {
	for {
		if p.eof() {
			return p.errorf("Unterminated element <%s>", node.Tag)
		}
		if p.buf[p.pos] == '<' {
			switch {
			case p.hasPrefix("</"):
				return p.parseClosingTag(node)
			case p.hasPrefix("<!--"):
				if err := p.skipComment(); err != nil {
					return err
				}
			case p.hasPrefix("<![CDATA["):
				if err := p.parseCDATA(node); err != nil {
					return err
				}
			case p.hasPrefix("<?"):
				if err := p.skipPI(); err != nil {
					return err
				}
			default:
				child, err := p.parseElement()
				if err != nil {
					return err
				}
				node.Children = append(node.Children, child)
			}
			continue
		}
		p.parseText(node)
	}
}

func (p *parser) parseClosingTag(node *Node) error {
	p.pos += 2 // consume "</"
	name := p.readName()
	p.skipSpace()
	if p.eof() || p.buf[p.pos] != '>' {
		return p.errorf("Malformed closing tag </%s", name)
	}
	p.pos++
	if name != node.Tag {
		return p.errorf("Mismatched closing tag: expected </%s>, got </%s>", node.Tag, name)
	}
	return nil
}

// parseCDATA extracts a CDATA section verbatim. Entities are never
// decoded and the content is never trimmed.
func (p *parser) parseCDATA(node *Node) error {
	const cdataOpen, cdataClose = "<![CDATA[", "]]>"
	end := bytes.Index(p.buf[p.pos+len(cdataOpen):], []byte(cdataClose))
	if end < 0 {
		return p.errorf("Unterminated CDATA section")
	}
	start := p.pos + len(cdataOpen)
	node.Children = append(node.Children, Text(string(p.buf[start:start+end])))
	p.pos = start + end + len(cdataClose)
	return nil
}

// parseText consumes a run of character data up to the next '<'.
func (p *parser) parseText(node *Node) {
	next := bytes.IndexByte(p.buf[p.pos:], '<')
	var raw string
	if next < 0 {
		raw = string(p.buf[p.pos:])
		p.pos = len(p.buf)
	} else {
		raw = string(p.buf[p.pos : p.pos+next])
		p.pos += next
	}
	text := raw
	if p.cfg.DecodeEntities {
		text = DecodeEntities(text)
	}
	if !p.cfg.PreserveWhitespace {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
	}
	node.Children = append(node.Children, Text(text))
}
