package xml

import (
	"errors"
	"strings"
	"testing"
)

func mustParseXML(t *testing.T, input string, cfg ParseConfig) *Node {
	t.Helper()
	node, err := Parse([]byte(input), cfg)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return node
}

func TestParse_ElementTree(t *testing.T) {
	node := mustParseXML(t, `<book id="123"><title>East Guide</title></book>`, DefaultParseConfig())

	if node.Kind != ElementNode || node.Tag != "book" {
		t.Fatalf("root = %v %q, want element book", node.Kind, node.Tag)
	}
	if v, ok := node.Attr("id"); !ok || v != "123" {
		t.Errorf("id attribute = %q %v, want %q", v, ok, "123")
	}
	title := node.Child("title")
	if title == nil {
		t.Fatal("missing title child")
	}
	if len(title.Children) != 1 || title.Children[0].Kind != TextNode {
		t.Fatalf("title children = %v, want one text node", title.Children)
	}
	if got := title.Children[0].Text; got != "East Guide" {
		t.Errorf("title text = %q, want %q", got, "East Guide")
	}
}

func TestParse_Entities(t *testing.T) {
	node := mustParseXML(t, `<text>&lt;html&gt; &amp; &quot;quote&quot;</text>`, DefaultParseConfig())
	if got := node.Children[0].Text; got != `<html> & "quote"` {
		t.Errorf("decoded text = %q, want %q", got, `<html> & "quote"`)
	}
}

func TestParse_NumericEntities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "decimal", input: "<t>&#65;&#66;</t>", want: "AB"},
		{name: "hex", input: "<t>&#x41;&#x1F600;</t>", want: "A\U0001F600"},
		{name: "unknown entity kept", input: "<t>&nope; x</t>", want: "&nope; x"},
		{name: "bare ampersand kept", input: "<t>a &amp b</t>", want: "a &amp b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustParseXML(t, tt.input, DefaultParseConfig())
			if got := node.Children[0].Text; got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_EntitiesDisabled(t *testing.T) {
	cfg := DefaultParseConfig()
	cfg.DecodeEntities = false
	node := mustParseXML(t, "<t>&lt;x&gt;</t>", cfg)
	if got := node.Children[0].Text; got != "&lt;x&gt;" {
		t.Errorf("raw text = %q, want %q", got, "&lt;x&gt;")
	}
}

func TestParse_CDATA(t *testing.T) {
	node := mustParseXML(t, "<t><![CDATA[a < b && c]]></t>", DefaultParseConfig())
	if got := node.Children[0].Text; got != "a < b && c" {
		t.Errorf("CDATA text = %q, want %q", got, "a < b && c")
	}

	// Entities inside CDATA stay verbatim.
	node = mustParseXML(t, "<t><![CDATA[&amp;]]></t>", DefaultParseConfig())
	if got := node.Children[0].Text; got != "&amp;" {
		t.Errorf("CDATA text = %q, want %q", got, "&amp;")
	}
}

func TestParse_SkippedContent(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE root>
<!-- leading comment -->
<root><!-- inner --><?target data?><child/></root>
<!-- trailing -->`
	node := mustParseXML(t, input, DefaultParseConfig())
	if len(node.Children) != 1 {
		t.Fatalf("children = %d, want 1 (comments and PIs skipped)", len(node.Children))
	}
	if node.Children[0].Tag != "child" {
		t.Errorf("child tag = %q, want %q", node.Children[0].Tag, "child")
	}
}

func TestParse_Whitespace(t *testing.T) {
	input := "<root>\n  <a>  padded  </a>\n</root>"

	node := mustParseXML(t, input, DefaultParseConfig())
	if len(node.Children) != 1 {
		t.Fatalf("trimmed children = %d, want 1", len(node.Children))
	}
	if got := node.Children[0].Children[0].Text; got != "padded" {
		t.Errorf("trimmed text = %q, want %q", got, "padded")
	}

	cfg := ParseConfig{PreserveWhitespace: true, DecodeEntities: true}
	node = mustParseXML(t, input, cfg)
	if len(node.Children) != 3 {
		t.Fatalf("preserved children = %d, want 3", len(node.Children))
	}
	if got := node.Children[1].Children[0].Text; got != "  padded  " {
		t.Errorf("preserved text = %q, want %q", got, "  padded  ")
	}
}

func TestParse_Attributes(t *testing.T) {
	node := mustParseXML(t, `<t a="1" b='two' xmlns:ns="urn:x" ns:c="3"/>`, DefaultParseConfig())
	want := []Attr{
		{Name: "a", Value: "1"},
		{Name: "b", Value: "two"},
		{Name: "xmlns:ns", Value: "urn:x"},
		{Name: "ns:c", Value: "3"},
	}
	if len(node.Attrs) != len(want) {
		t.Fatalf("attrs = %v, want %v", node.Attrs, want)
	}
	for i, a := range want {
		if node.Attrs[i] != a {
			t.Errorf("attr[%d] = %v, want %v", i, node.Attrs[i], a)
		}
	}
}

func TestParse_AttributeEntities(t *testing.T) {
	node := mustParseXML(t, `<t msg="a &amp; b &#33;"/>`, DefaultParseConfig())
	if v, _ := node.Attr("msg"); v != "a & b !" {
		t.Errorf("attr value = %q, want %q", v, "a & b !")
	}
}

func TestParse_SelfClosing(t *testing.T) {
	node := mustParseXML(t, "<root><leaf/><leaf /></root>", DefaultParseConfig())
	if len(node.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(node.Children))
	}
	for i, c := range node.Children {
		if c.Tag != "leaf" || len(c.Children) != 0 {
			t.Errorf("child %d = %v, want empty leaf", i, c)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty buffer", input: "", wantMsg: "Empty XML document"},
		{name: "whitespace only", input: "   \n\t", wantMsg: "Empty XML document"},
		{name: "declaration only", input: `<?xml version="1.0"?>`, wantMsg: "Empty XML document"},
		{name: "mismatched closing tag", input: "<a><b></a></b>", wantMsg: "Mismatched closing tag: expected </b>, got </a>"},
		{name: "unclosed attribute", input: `<a b="oops></a>`, wantMsg: "Unclosed attribute value"},
		{name: "unterminated element", input: "<a><b></b>", wantMsg: "Unterminated element <a>"},
		{name: "unterminated comment", input: "<a><!-- oops</a>", wantMsg: "Unterminated comment"},
		{name: "unterminated cdata", input: "<a><![CDATA[oops</a>", wantMsg: "Unterminated CDATA section"},
		{name: "trailing garbage", input: "<a/>junk", wantMsg: "Unexpected content after root element"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), DefaultParseConfig())
			if err == nil {
				t.Fatalf("Parse() error = nil, want %q", tt.wantMsg)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse() error type = %T, want *ParseError", err)
			}
			if !strings.HasPrefix(err.Error(), tt.wantMsg) {
				t.Errorf("Parse() error = %q, want prefix %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParse_BOM(t *testing.T) {
	node := mustParseXML(t, "\xEF\xBB\xBF<a/>", DefaultParseConfig())
	if node.Tag != "a" {
		t.Errorf("root tag = %q, want %q", node.Tag, "a")
	}
}

func TestParse_Idempotent(t *testing.T) {
	input := []byte(`<r><a x="1">t</a><b/></r>`)
	first, err := Parse(input, DefaultParseConfig())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := Parse(input, DefaultParseConfig())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !first.Equal(second) {
		t.Error("parsing the same buffer twice gave different trees")
	}
}

func TestNode_Helpers(t *testing.T) {
	node := Element("r",
		Element("a", Text("one")),
		Element("b", Text("two"), Element("c", Text("three"))),
	)
	if got := node.TextContent(); got != "onetwothree" {
		t.Errorf("TextContent() = %q, want %q", got, "onetwothree")
	}
	if node.Child("b").Child("c") == nil {
		t.Error("Child() failed to find nested element")
	}
	node.SetAttr("k", "v1")
	node.SetAttr("k", "v2")
	if v, _ := node.Attr("k"); v != "v2" || len(node.Attrs) != 1 {
		t.Errorf("SetAttr replace = %q (%d attrs), want v2 (1 attr)", v, len(node.Attrs))
	}
}
