package csv

import (
	"bytes"
	"strings"
)

// Serialize renders data as delimited text according to cfg.
//
// The column set and order come from the first row; later rows are looked
// up by that fixed column list, and a missing key serializes as the null
// string. Empty data serializes to an empty buffer even when
// IncludeHeader is set. The
// output terminates every record, including the last, with cfg.Newline.
func Serialize(data Data, cfg SerializeConfig) ([]byte, error) {
	if err := validateChars(cfg.Quote, cfg.Escape, cfg.Delimiter); err != nil {
		return nil, err
	}
	if cfg.Newline == "" {
		return nil, configErrorf("newline must not be empty")
	}
	if len(data) == 0 {
		return []byte{}, nil
	}

	columns := data[0].Names()
	var buf bytes.Buffer

	if cfg.IncludeHeader {
		for i, name := range columns {
			if i > 0 {
				buf.WriteString(cfg.Delimiter)
			}
			buf.WriteString(encodeField(name, cfg))
		}
		buf.WriteString(cfg.Newline)
	}

	for _, row := range data {
		for i, name := range columns {
			if i > 0 {
				buf.WriteString(cfg.Delimiter)
			}
			cell, ok := row.Get(name)
			if !ok || cell.IsNull() {
				// Null cells emit the null string verbatim, never
				// quoted or escaped.
				buf.WriteString(cfg.NullString)
				continue
			}
			buf.WriteString(encodeField(cell.String(), cfg))
		}
		buf.WriteString(cfg.Newline)
	}
	return buf.Bytes(), nil
}

// encodeField quotes and escapes a single field as needed. A field is
// quoted when AlwaysQuote is set, when its text contains the delimiter,
// quote, escape, or newline, or when it equals the null string exactly.
func encodeField(text string, cfg SerializeConfig) string {
	needsQuote := cfg.AlwaysQuote ||
		strings.Contains(text, cfg.Delimiter) ||
		strings.Contains(text, cfg.Quote) ||
		strings.Contains(text, cfg.Escape) ||
		strings.Contains(text, cfg.Newline) ||
		text == cfg.NullString
	if !needsQuote {
		return text
	}
	return cfg.Quote + escapeField(text, cfg.Quote, cfg.Escape) + cfg.Quote
}

// escapeField escapes embedded quote and escape characters per the
// parser's inverse rule: doubled quotes in quote-as-escape mode, otherwise
// escape-prefixed quote and escape characters.
func escapeField(text, quote, escape string) string {
	if quote == escape {
		return strings.ReplaceAll(text, quote, quote+quote)
	}
	// Escape characters first so the escapes inserted for quotes are not
	// themselves re-escaped.
	text = strings.ReplaceAll(text, escape, escape+escape)
	return strings.ReplaceAll(text, quote, escape+quote)
}
