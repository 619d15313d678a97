package output

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/flatcat/csv"
)

// ParquetFormatter outputs rows as a parquet file.
//
// The schema is derived from the data: every column is optional, with the
// leaf type taken from the first non-null cell in that column. Null cells
// and missing keys become parquet nulls.
type ParquetFormatter struct {
	writer io.Writer
}

// NewParquetFormatter creates a new parquet formatter.
func NewParquetFormatter(w io.Writer) *ParquetFormatter {
	return &ParquetFormatter{writer: w}
}

// SetOutput sets the output writer.
func (p *ParquetFormatter) SetOutput(w io.Writer) {
	p.writer = w
}

// Format writes the rows as one parquet row group. Empty data writes
// nothing.
func (p *ParquetFormatter) Format(data csv.Data) error {
	if len(data) == 0 {
		return nil
	}
	columns := data[0].Names()

	group := parquet.Group{}
	for _, name := range columns {
		group[name] = parquet.Optional(leafNode(columnKind(data, name)))
	}
	schema := parquet.NewSchema("flatcat", group)

	writer := parquet.NewGenericWriter[map[string]interface{}](p.writer, schema)
	records := make([]map[string]interface{}, 0, len(data))
	for _, row := range data {
		record := make(map[string]interface{}, len(columns))
		for _, name := range columns {
			cell, ok := row.Get(name)
			if !ok || cell.IsNull() {
				continue
			}
			record[name] = parquetValue(cell)
		}
		records = append(records, record)
	}

	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// columnKind returns the kind of the first non-null cell in the column,
// defaulting to string for all-null columns.
func columnKind(data csv.Data, name string) csv.Kind {
	for _, row := range data {
		if cell, ok := row.Get(name); ok && !cell.IsNull() {
			return cell.Kind()
		}
	}
	return csv.KindString
}

func leafNode(kind csv.Kind) parquet.Node {
	switch kind {
	case csv.KindInteger:
		return parquet.Int(64)
	case csv.KindFloat:
		return parquet.Leaf(parquet.DoubleType)
	case csv.KindBoolean:
		return parquet.Leaf(parquet.BooleanType)
	case csv.KindDateTime:
		return parquet.Timestamp(parquet.Millisecond)
	case csv.KindBlob:
		return parquet.Leaf(parquet.ByteArrayType)
	default:
		return parquet.String()
	}
}

// parquetValue maps a non-null cell to the Go value the writer expects
// for its column's leaf type.
func parquetValue(c csv.Cell) interface{} {
	switch c.Kind() {
	case csv.KindInteger:
		return c.Int()
	case csv.KindFloat:
		return c.Float64()
	case csv.KindBoolean:
		return c.Bool()
	case csv.KindDateTime:
		return c.Time().UnixMilli()
	case csv.KindBlob:
		return c.Bytes()
	default:
		return c.String()
	}
}
