package output

import (
	"io"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/flatcat/csv"
)

// JSONFormatter outputs rows as JSON Lines (one JSON object per line).
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer.
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes each row as one JSON object. Null cells encode as JSON
// null, timestamps as RFC 3339 strings, and blobs as 0x-prefixed hex
// strings.
func (j *JSONFormatter) Format(data csv.Data) error {
	encoder := json.NewEncoder(j.writer)
	for _, row := range data {
		obj := make(map[string]interface{}, row.Len())
		for _, name := range row.Names() {
			cell, _ := row.Get(name)
			obj[name] = jsonValue(cell)
		}
		if err := encoder.Encode(obj); err != nil {
			return err
		}
	}
	return nil
}

// jsonValue maps a cell to its JSON representation.
func jsonValue(c csv.Cell) interface{} {
	switch c.Kind() {
	case csv.KindDateTime:
		return c.Time().Format(time.RFC3339Nano)
	case csv.KindBlob:
		return c.String()
	default:
		return c.Value()
	}
}
