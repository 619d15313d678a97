package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/flatcat/csv"
)

// TableFormatter outputs rows as an aligned terminal table.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer.
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders the rows as a table with the first row's columns as the
// header. Empty data renders nothing.
func (t *TableFormatter) Format(data csv.Data) error {
	if len(data) == 0 {
		return nil
	}
	columns := data[0].Names()

	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range data {
		record := make([]string, len(columns))
		for i, name := range columns {
			if cell, ok := row.Get(name); ok {
				record[i] = cell.String()
			}
		}
		table.Append(record)
	}
	table.Render()
	return nil
}
