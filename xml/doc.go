// Package xml provides a recursive-descent XML parser and serializer
// operating on raw byte buffers.
//
// The parser builds a tree of element and text nodes, preserving attribute
// order, decoding named and numeric entities, and extracting CDATA
// sections verbatim. Declarations, processing instructions, comments, and
// doctype declarations are consumed without contributing nodes. Namespace
// prefixes are treated as opaque parts of tag and attribute names.
//
// The serializer performs the inverse, with optional pretty-printing,
// self-closing tags, and entity encoding.
//
// Both Parse and Serialize are pure functions over in-memory buffers: no
// I/O, no shared state, safe for concurrent use.
//
// Example usage:
//
//	node, err := xml.Parse([]byte(`<book id="1"><title>Go</title></book>`), xml.DefaultParseConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := xml.Serialize(node, xml.DefaultSerializeConfig())
package xml
