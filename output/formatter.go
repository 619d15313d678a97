// Package output provides formatters for rendering parsed rows to various
// output formats.
//
// This package defines the Formatter interface and provides
// implementations for JSON Lines, CSV, aligned terminal tables, and
// parquet. All formatters consume csv.Data, the insertion-ordered row
// representation produced by the csv package.
//
// # Supported Formats
//
//   - JSON Lines: one JSON object per row (suitable for streaming)
//   - CSV: delimited text via csv.Serialize
//   - Table: aligned terminal table with a header row
//   - Parquet: columnar file with a schema derived from cell types
//
// # Basic Usage
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//	if err := formatter.Format(data); err != nil {
//	    log.Fatal(err)
//	}
//
// # Writing to Different Destinations
//
//	file, err := os.Create("out.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	formatter := output.NewParquetFormatter(file)
//	if err := formatter.Format(data); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"

	"github.com/vegasq/flatcat/csv"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to render rows in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(data csv.Data) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}
