// Package csv provides byte-exact parsing and serialization of delimited
// text with configurable delimiters, quoting, and escaping.
//
// Unlike encoding/csv, the grammar is fully configurable: the delimiter may
// be any non-empty string, the quote and escape characters are independent,
// the record separator can be fixed or auto-detected, and parsed fields are
// converted to typed cells (Null, Boolean, Integer, Float, String,
// DateTime, Blob) according to a per-column type map.
//
// Both Parse and Serialize are pure functions over in-memory buffers: no
// I/O, no shared state, safe for concurrent use.
//
// Example usage:
//
//	data, err := csv.Parse([]byte("name,age\nAlice,30\n"), csv.DefaultParseConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := csv.Serialize(data, csv.DefaultSerializeConfig())
package csv
