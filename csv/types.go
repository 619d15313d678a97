package csv

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"
)

// Kind identifies the type of a Cell.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindDateTime
	KindBlob
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindDateTime:
		return "datetime"
	case KindBlob:
		return "blob"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a type name to its Kind. Recognized names are the
// lowercase Kind names ("null", "boolean", "integer", "float", "string",
// "datetime", "blob").
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "null":
		return KindNull, nil
	case "boolean", "bool":
		return KindBoolean, nil
	case "integer", "int":
		return KindInteger, nil
	case "float", "double":
		return KindFloat, nil
	case "string":
		return KindString, nil
	case "datetime", "timestamp":
		return KindDateTime, nil
	case "blob":
		return KindBlob, nil
	}
	return KindNull, fmt.Errorf("unknown column type: %q", name)
}

// Cell is a single typed CSV value. The zero value is the null cell.
type Cell struct {
	kind     Kind
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string
	timeVal  time.Time
	blobVal  []byte
}

// Null returns the null cell.
func Null() Cell { return Cell{kind: KindNull} }

// Boolean returns a boolean cell.
func Boolean(v bool) Cell { return Cell{kind: KindBoolean, boolVal: v} }

// Integer returns a 64-bit signed integer cell.
func Integer(v int64) Cell { return Cell{kind: KindInteger, intVal: v} }

// Float returns a double-precision float cell.
func Float(v float64) Cell { return Cell{kind: KindFloat, floatVal: v} }

// String returns a string cell.
func String(v string) Cell { return Cell{kind: KindString, strVal: v} }

// DateTime returns a timestamp cell.
func DateTime(v time.Time) Cell { return Cell{kind: KindDateTime, timeVal: v} }

// Blob returns a binary cell.
func Blob(v []byte) Cell { return Cell{kind: KindBlob, blobVal: v} }

// Kind returns the cell's type tag.
func (c Cell) Kind() Kind { return c.kind }

// IsNull reports whether the cell is null.
func (c Cell) IsNull() bool { return c.kind == KindNull }

// Bool returns the boolean payload. Valid only for KindBoolean cells.
func (c Cell) Bool() bool { return c.boolVal }

// Int returns the integer payload. Valid only for KindInteger cells.
func (c Cell) Int() int64 { return c.intVal }

// Float64 returns the float payload. Valid only for KindFloat cells.
func (c Cell) Float64() float64 { return c.floatVal }

// Text returns the string payload. Valid only for KindString cells.
func (c Cell) Text() string { return c.strVal }

// Time returns the timestamp payload. Valid only for KindDateTime cells.
func (c Cell) Time() time.Time { return c.timeVal }

// Bytes returns the binary payload. Valid only for KindBlob cells.
func (c Cell) Bytes() []byte { return c.blobVal }

// Value returns the cell payload as a native Go value: nil, bool, int64,
// float64, string, time.Time, or []byte.
func (c Cell) Value() interface{} {
	switch c.kind {
	case KindNull:
		return nil
	case KindBoolean:
		return c.boolVal
	case KindInteger:
		return c.intVal
	case KindFloat:
		return c.floatVal
	case KindString:
		return c.strVal
	case KindDateTime:
		return c.timeVal
	case KindBlob:
		return c.blobVal
	}
	return nil
}

// Equal reports whether two cells have the same kind and payload.
// Two NaN float cells compare equal so parsed data can be compared
// structurally.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindNull:
		return true
	case KindBoolean:
		return c.boolVal == o.boolVal
	case KindInteger:
		return c.intVal == o.intVal
	case KindFloat:
		if math.IsNaN(c.floatVal) && math.IsNaN(o.floatVal) {
			return true
		}
		return c.floatVal == o.floatVal
	case KindString:
		return c.strVal == o.strVal
	case KindDateTime:
		return c.timeVal.Equal(o.timeVal)
	case KindBlob:
		return bytes.Equal(c.blobVal, o.blobVal)
	}
	return false
}

// Row is an insertion-ordered mapping from column name to Cell.
type Row struct {
	names []string
	cells map[string]Cell
}

// NewRow creates an empty row.
func NewRow() Row {
	return Row{cells: make(map[string]Cell)}
}

// Set stores a cell under name, preserving first-insertion order.
func (r *Row) Set(name string, c Cell) {
	if r.cells == nil {
		r.cells = make(map[string]Cell)
	}
	if _, ok := r.cells[name]; !ok {
		r.names = append(r.names, name)
	}
	r.cells[name] = c
}

// Get returns the cell stored under name.
func (r Row) Get(name string) (Cell, bool) {
	c, ok := r.cells[name]
	return c, ok
}

// Names returns the column names in insertion order. The returned slice
// must not be modified.
func (r Row) Names() []string { return r.names }

// Len returns the number of cells in the row.
func (r Row) Len() int { return len(r.names) }

// Equal reports whether two rows have the same columns in the same order
// with equal cells.
func (r Row) Equal(o Row) bool {
	if len(r.names) != len(o.names) {
		return false
	}
	for i, name := range r.names {
		if o.names[i] != name {
			return false
		}
		if !r.cells[name].Equal(o.cells[name]) {
			return false
		}
	}
	return true
}

// Data is an ordered sequence of rows. When serializing, the column set
// and order come from the first row.
type Data []Row

// Equal reports whether two data sets are structurally equal.
func (d Data) Equal(o Data) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if !d[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// ParseConfig controls CSV parsing. The zero value is not valid; start
// from DefaultParseConfig.
type ParseConfig struct {
	// Delimiter is the field separator. Any non-empty string.
	Delimiter string
	// Quote is the quote character. Must be exactly one character.
	Quote string
	// Escape is the escape character. Must be exactly one character.
	// When Escape equals Quote, a doubled quote is the only escape.
	Escape string
	// Newline is the record separator. Empty means auto-detect among
	// "\r\n", "\n", and "\r", preferring CRLF.
	Newline string
	// HasHeader treats the first record as column names.
	HasHeader bool
	// NullString is the field text that represents a null cell.
	NullString string
	// SkipEmptyLines discards lines with no content.
	SkipEmptyLines bool
	// TrimFields trims leading and trailing whitespace from each field.
	TrimFields bool
	// ColumnTypes maps column names to target cell kinds. Unlisted
	// columns are parsed as strings.
	ColumnTypes map[string]Kind
}

// DefaultParseConfig returns a config for comma-separated input with a
// double-quote quote/escape character and a header record.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{
		Delimiter: ",",
		Quote:     `"`,
		Escape:    `"`,
		HasHeader: true,
	}
}

// SerializeConfig controls CSV serialization.
type SerializeConfig struct {
	// Delimiter is the field separator. Any non-empty string.
	Delimiter string
	// Quote is the quote character. Must be exactly one character.
	Quote string
	// Escape is the escape character. Must be exactly one character.
	Escape string
	// Newline is the record separator. Must be non-empty.
	Newline string
	// IncludeHeader emits the column names as the first record.
	IncludeHeader bool
	// NullString is the text emitted for null cells and missing keys.
	NullString string
	// AlwaysQuote quotes every field regardless of content.
	AlwaysQuote bool
}

// DefaultSerializeConfig returns a config mirroring DefaultParseConfig
// with LF record separators.
func DefaultSerializeConfig() SerializeConfig {
	return SerializeConfig{
		Delimiter:     ",",
		Quote:         `"`,
		Escape:        `"`,
		Newline:       "\n",
		IncludeHeader: true,
	}
}
