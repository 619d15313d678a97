package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies the detected document format of an input file.
type Format int

const (
	// FormatCSV marks delimited-text input.
	FormatCSV Format = iota
	// FormatXML marks XML input.
	FormatXML
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	default:
		return "csv"
	}
}

// Input is a loaded document together with its detected format.
//
// Delimiter is a suggestion derived from the file extension (tab for
// .tsv files, comma otherwise); callers may override it with their own
// configuration.
type Input struct {
	Path      string
	Format    Format
	Delimiter string
	Data      []byte
}

// Load reads the file at path and detects its format.
//
// The format is decided by extension first (.csv, .tsv, .xml) and by
// content sniffing otherwise. Returns an error if the file cannot be
// read.
//
// Example:
//
//	in, err := reader.Load("orders.tsv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// in.Format == reader.FormatCSV, in.Delimiter == "\t"
func Load(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	in := &Input{
		Path:      path,
		Delimiter: ",",
		Data:      data,
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		in.Format = FormatXML
	case ".csv":
		in.Format = FormatCSV
	case ".tsv":
		in.Format = FormatCSV
		in.Delimiter = "\t"
	default:
		if looksLikeXML(data) {
			in.Format = FormatXML
		}
	}

	return in, nil
}

// LoadGlob loads all files matching a glob pattern.
//
// The pattern can include wildcards:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//
// A pattern without wildcards is treated as a single file path. Returns
// an error if no files match the pattern or if any file fails to read.
func LoadGlob(pattern string) ([]*Input, error) {
	if !strings.ContainsAny(pattern, "*?[]") {
		in, err := Load(pattern)
		if err != nil {
			return nil, err
		}
		return []*Input{in}, nil
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}

	// Limit number of files to prevent resource exhaustion
	const maxFiles = 1000
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	inputs := make([]*Input, 0, len(matches))
	for _, path := range matches {
		in, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		inputs = append(inputs, in)
	}

	return inputs, nil
}

// looksLikeXML reports whether the buffer starts with an XML construct.
//
// A UTF-8 byte order mark is skipped before the check.
func looksLikeXML(data []byte) bool {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '<':
			return true
		default:
			return false
		}
	}
	return false
}
