package output

import (
	"fmt"
	"io"

	"github.com/vegasq/flatcat/csv"
)

// CSVFormatter outputs rows as delimited text via csv.Serialize.
type CSVFormatter struct {
	writer io.Writer

	// Config controls delimiters, quoting, and the null string. Defaults
	// to csv.DefaultSerializeConfig.
	Config csv.SerializeConfig
}

// NewCSVFormatter creates a new CSV formatter with the default
// serialization config.
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w, Config: csv.DefaultSerializeConfig()}
}

// SetOutput sets the output writer.
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format serializes the rows and writes the result.
func (c *CSVFormatter) Format(data csv.Data) error {
	out, err := csv.Serialize(data, c.Config)
	if err != nil {
		return err
	}
	if _, err := c.writer.Write(out); err != nil {
		return fmt.Errorf("failed to write CSV output: %w", err)
	}
	return nil
}
