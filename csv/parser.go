package csv

import (
	"fmt"
	"strings"
)

// Parse parses a CSV byte buffer into Data according to cfg.
//
// A leading UTF-8 byte order mark is skipped. When cfg.HasHeader is set,
// the first record names the columns and every data row must match its
// width; otherwise columns are synthesized as column_0, column_1, and so
// on. An empty buffer parses to empty Data.
//
// Errors are *ConfigError for invalid configuration, *ParseError for
// structural failures, and *ConvertError for values that cannot be
// converted to their declared column type. Row and column numbers in
// errors are 1-based.
func Parse(data []byte, cfg ParseConfig) (Data, error) {
	if err := validateChars(cfg.Quote, cfg.Escape, cfg.Delimiter); err != nil {
		return nil, err
	}

	p := &rowParser{
		scan:       newScanner(data, cfg),
		cfg:        cfg,
		headerDone: !cfg.HasHeader,
		row:        1,
	}
	return p.run()
}

// rowParser accumulates scanned fields into records and records into Data.
type rowParser struct {
	scan       *scanner
	cfg        ParseConfig
	columns    []string
	headerDone bool
	row        int
	out        Data
	rec        []field
}

func (p *rowParser) run() (Data, error) {
	for {
		if p.scan.eof() && len(p.rec) == 0 {
			return p.out, nil
		}
		f, err := p.scan.nextField(p.row, len(p.rec)+1)
		if err != nil {
			return nil, err
		}

		// An empty line: a record terminator with no content and no
		// pending fields.
		if f.term != termField && p.cfg.SkipEmptyLines && len(p.rec) == 0 && f.start == f.end {
			if f.term == termEOF {
				return p.out, nil
			}
			continue
		}

		p.rec = append(p.rec, f)
		if p.headerDone && p.columns != nil && len(p.rec) > len(p.columns) {
			return nil, parseErrorf(p.row, len(p.rec),
				"Too many fields in row %d (expected %d columns, found at least %d)",
				p.row, len(p.columns), len(p.rec))
		}
		if f.term == termField {
			continue
		}

		if err := p.endRecord(); err != nil {
			return nil, err
		}
		p.rec = p.rec[:0]
		p.row++
		if f.term == termEOF {
			return p.out, nil
		}
	}
}

// endRecord converts the pending fields into a header or a data row.
func (p *rowParser) endRecord() error {
	if !p.headerDone {
		return p.consumeHeader()
	}
	if p.columns != nil && len(p.rec) < len(p.columns) {
		return parseErrorf(p.row, len(p.rec),
			"Too few fields in row %d (expected %d columns, got %d)",
			p.row, len(p.columns), len(p.rec))
	}

	row := NewRow()
	for i, f := range p.rec {
		name := p.columnName(i)
		text := p.fieldText(f)
		cell, err := p.fieldCell(text, name)
		if err != nil {
			return err
		}
		row.Set(name, cell)
	}
	p.out = append(p.out, row)
	return nil
}

// consumeHeader takes the pending fields as column names. Header fields
// never permit null.
func (p *rowParser) consumeHeader() error {
	names := make([]string, len(p.rec))
	for i, f := range p.rec {
		text := p.fieldText(f)
		if text == p.cfg.NullString {
			return parseErrorf(1, i+1, "Null header name in row 1, column %d", i+1)
		}
		names[i] = text
	}
	p.columns = names
	p.headerDone = true
	return nil
}

// columnName returns the header name for field index i, or a synthesized
// column_N name when parsing without a header.
func (p *rowParser) columnName(i int) string {
	if p.columns != nil {
		return p.columns[i]
	}
	return fmt.Sprintf("column_%d", i)
}

// fieldText extracts and unescapes the raw field content.
func (p *rowParser) fieldText(f field) string {
	text := string(p.scan.buf[f.start:f.end])
	if f.quoted {
		text = p.scan.unescape(text)
	}
	if p.cfg.TrimFields {
		text = strings.TrimSpace(text)
	}
	return text
}

// fieldCell converts field text to a typed cell, honoring the null string
// and the column's declared type.
func (p *rowParser) fieldCell(text, name string) (Cell, error) {
	if text == p.cfg.NullString {
		return Null(), nil
	}
	kind, ok := p.cfg.ColumnTypes[name]
	if !ok {
		kind = KindString
	}
	cell, err := convertCell(text, kind)
	if err != nil {
		return Cell{}, &ConvertError{Row: p.row, Column: name, Err: err}
	}
	return cell, nil
}
