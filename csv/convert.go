package csv

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// dateTimeLayouts are the accepted ISO-8601 timestamp shapes, tried in
// order. The fractional second and zone designator are optional.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// convertCell converts raw field text to a cell of the requested kind.
// String passes through unchanged; every other kind trims and validates
// its input.
func convertCell(text string, kind Kind) (Cell, error) {
	switch kind {
	case KindString:
		return String(text), nil
	case KindInteger:
		return convertInteger(text)
	case KindFloat:
		return convertFloat(text)
	case KindBoolean:
		return convertBoolean(text)
	case KindDateTime:
		return convertDateTime(text)
	case KindBlob:
		return convertBlob(text)
	case KindNull:
		return Cell{}, fmt.Errorf("%q is not null", text)
	}
	return Cell{}, fmt.Errorf("unknown column type %v", kind)
}

func convertInteger(text string) (Cell, error) {
	v := strings.TrimSpace(text)
	if v == "" {
		return Cell{}, errors.New("empty value is not an integer")
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Cell{}, fmt.Errorf("integer %s is out of the signed 64-bit range", v)
		}
		return Cell{}, fmt.Errorf("%q is not an integer", v)
	}
	return Integer(n), nil
}

func convertFloat(text string) (Cell, error) {
	v := strings.TrimSpace(text)
	if v == "" {
		return Cell{}, errors.New("empty value is not a number")
	}
	switch v {
	case "NaN":
		return Float(math.NaN()), nil
	case "Infinity":
		return Float(math.Inf(1)), nil
	case "-Infinity":
		return Float(math.Inf(-1)), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		// Overflowing decimal input saturates to an infinity.
		if errors.Is(err, strconv.ErrRange) {
			return Float(f), nil
		}
		return Cell{}, fmt.Errorf("%q is not a number", v)
	}
	// ParseFloat accepts spellings like "inf" and "nan"; the literal set
	// above is the only one recognized.
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Cell{}, fmt.Errorf("%q is not a number", v)
	}
	return Float(f), nil
}

func convertBoolean(text string) (Cell, error) {
	switch strings.TrimSpace(text) {
	case "true":
		return Boolean(true), nil
	case "false":
		return Boolean(false), nil
	}
	return Cell{}, fmt.Errorf("%q is not a boolean (expected \"true\" or \"false\")", strings.TrimSpace(text))
}

func convertDateTime(text string) (Cell, error) {
	v := strings.TrimSpace(text)
	if v == "" {
		return Cell{}, errors.New("empty value is not a timestamp")
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return DateTime(t), nil
		}
	}
	return Cell{}, fmt.Errorf("%q is not an ISO-8601 timestamp", v)
}

func convertBlob(text string) (Cell, error) {
	v := strings.TrimSpace(text)
	if v == "" {
		return Cell{}, errors.New("empty value is not a blob")
	}
	if !strings.HasPrefix(v, "0x") {
		return Cell{}, fmt.Errorf("blob %q is missing the \"0x\" prefix", v)
	}
	digits := v[2:]
	if len(digits)%2 != 0 {
		return Cell{}, fmt.Errorf("blob %q has an odd number of hex digits", v)
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return Cell{}, fmt.Errorf("blob %q contains an invalid hex digit", v)
	}
	return Blob(b), nil
}

// String renders the cell as field text, mirroring convertCell: integers
// in decimal, floats with NaN/Infinity literals, booleans as true/false,
// timestamps as millisecond-precision ISO-8601 without a zone marker, and
// blobs as 0x-prefixed lowercase hex. Null cells render as the empty
// string; Serialize substitutes the configured null string instead.
func (c Cell) String() string {
	switch c.kind {
	case KindNull:
		return ""
	case KindBoolean:
		return strconv.FormatBool(c.boolVal)
	case KindInteger:
		return strconv.FormatInt(c.intVal, 10)
	case KindFloat:
		switch {
		case math.IsNaN(c.floatVal):
			return "NaN"
		case math.IsInf(c.floatVal, 1):
			return "Infinity"
		case math.IsInf(c.floatVal, -1):
			return "-Infinity"
		}
		return strconv.FormatFloat(c.floatVal, 'g', -1, 64)
	case KindString:
		return c.strVal
	case KindDateTime:
		return c.timeVal.UTC().Format("2006-01-02T15:04:05.000")
	case KindBlob:
		return "0x" + hex.EncodeToString(c.blobVal)
	}
	return ""
}
