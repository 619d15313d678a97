package csv

import "fmt"

// ConfigError reports an invalid parse or serialize configuration. It is
// returned before any input is scanned.
type ConfigError struct {
	msg string
}

// Error returns the configuration failure message.
func (e *ConfigError) Error() string { return e.msg }

func configErrorf(format string, args ...interface{}) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// ParseError reports a structural CSV failure with its 1-based row and
// column location.
type ParseError struct {
	Row    int
	Column int
	msg    string
}

// Error returns the structural failure message.
func (e *ParseError) Error() string { return e.msg }

func parseErrorf(row, column int, format string, args ...interface{}) error {
	return &ParseError{Row: row, Column: column, msg: fmt.Sprintf(format, args...)}
}

// ConvertError reports a failed typed-cell conversion for one field.
type ConvertError struct {
	// Row is the 1-based row of the offending field.
	Row int
	// Column is the name of the offending column.
	Column string
	// Err is the underlying conversion failure.
	Err error
}

// Error identifies the offending row and column along with the underlying
// failure.
func (e *ConvertError) Error() string {
	return fmt.Sprintf("cannot convert value in row %d, column %q: %v", e.Row, e.Column, e.Err)
}

// Unwrap returns the underlying conversion failure.
func (e *ConvertError) Unwrap() error { return e.Err }
