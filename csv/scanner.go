package csv

import (
	"bytes"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// autoNewlines are the record separators tried, in order, when no explicit
// newline is configured. CRLF is matched before bare LF or CR.
var autoNewlines = [][]byte{{'\r', '\n'}, {'\n'}, {'\r'}}

// validateChars enforces the configuration preconditions shared by Parse
// and Serialize: single-character quote and escape, non-empty delimiter.
func validateChars(quote, escape, delimiter string) error {
	if utf8.RuneCountInString(quote) != 1 {
		return configErrorf("quote character must be exactly one character, got %q", quote)
	}
	if utf8.RuneCountInString(escape) != 1 {
		return configErrorf("escape character must be exactly one character, got %q", escape)
	}
	if delimiter == "" {
		return configErrorf("delimiter must not be empty")
	}
	return nil
}

// runeLen returns the byte length of the UTF-8 code point whose leading
// byte is b. Stepping by whole code points keeps multi-byte characters
// from being split while matching delimiters and quotes.
func runeLen(b byte) int {
	switch {
	case b >= 0xF0:
		return 4
	case b >= 0xE0:
		return 3
	case b >= 0xC0:
		return 2
	default:
		return 1
	}
}

// terminator classifies what ended a field.
type terminator int

const (
	termField  terminator = iota // delimiter
	termRecord                   // newline
	termEOF                      // end of buffer
)

// field holds the content bounds of one scanned field and what ended it.
type field struct {
	term   terminator
	start  int
	end    int
	quoted bool
}

// scanner is a forward-only byte-position scanner over a CSV buffer.
type scanner struct {
	buf           []byte
	pos           int
	delim         []byte
	quote         []byte
	escape        []byte
	newlines      [][]byte
	quoteIsEscape bool
}

func newScanner(buf []byte, cfg ParseConfig) *scanner {
	newlines := autoNewlines
	if cfg.Newline != "" {
		newlines = [][]byte{[]byte(cfg.Newline)}
	}
	s := &scanner{
		buf:           buf,
		delim:         []byte(cfg.Delimiter),
		quote:         []byte(cfg.Quote),
		escape:        []byte(cfg.Escape),
		newlines:      newlines,
		quoteIsEscape: cfg.Quote == cfg.Escape,
	}
	if bytes.HasPrefix(s.buf, utf8BOM) {
		s.pos = len(utf8BOM)
	}
	return s
}

func (s *scanner) eof() bool { return s.pos >= len(s.buf) }

func (s *scanner) hasPrefix(pos int, seq []byte) bool {
	return bytes.HasPrefix(s.buf[pos:], seq)
}

// matchNewline returns the length of the newline sequence at pos, or 0.
func (s *scanner) matchNewline(pos int) int {
	for _, nl := range s.newlines {
		if bytes.HasPrefix(s.buf[pos:], nl) {
			return len(nl)
		}
	}
	return 0
}

// nextField scans one field starting at the current position. row and col
// are the 1-based coordinates used in error messages.
func (s *scanner) nextField(row, col int) (field, error) {
	if s.hasPrefix(s.pos, s.quote) {
		return s.quotedField(row, col)
	}
	return s.plainField(), nil
}

// plainField scans an unquoted field byte-for-byte until a newline,
// the delimiter, or end of buffer.
func (s *scanner) plainField() field {
	start := s.pos
	for s.pos < len(s.buf) {
		if n := s.matchNewline(s.pos); n > 0 {
			f := field{term: termRecord, start: start, end: s.pos}
			s.pos += n
			return f
		}
		if s.hasPrefix(s.pos, s.delim) {
			f := field{term: termField, start: start, end: s.pos}
			s.pos += len(s.delim)
			return f
		}
		s.pos++
	}
	return field{term: termEOF, start: start, end: s.pos}
}

// quotedField scans a quoted field, honoring the quote/escape state
// machine, and validates whatever follows the closing quote.
func (s *scanner) quotedField(row, col int) (field, error) {
	s.pos += len(s.quote)
	start := s.pos
	for s.pos < len(s.buf) {
		if s.quoteIsEscape {
			if s.hasPrefix(s.pos, s.quote) {
				if s.hasPrefix(s.pos+len(s.quote), s.quote) {
					// Doubled quote is a literal embedded quote.
					s.pos += 2 * len(s.quote)
					continue
				}
				end := s.pos
				s.pos += len(s.quote)
				return s.closeField(row, col, start, end)
			}
		} else {
			if s.hasPrefix(s.pos, s.escape) {
				after := s.pos + len(s.escape)
				switch {
				case s.hasPrefix(after, s.quote):
					s.pos = after + len(s.quote)
					continue
				case s.hasPrefix(after, s.escape):
					s.pos = after + len(s.escape)
					continue
				default:
					return field{}, parseErrorf(row, col,
						"Invalid escape sequence in row %d, column %d", row, col)
				}
			}
			if s.hasPrefix(s.pos, s.quote) {
				end := s.pos
				s.pos += len(s.quote)
				return s.closeField(row, col, start, end)
			}
		}
		s.pos += runeLen(s.buf[s.pos])
	}
	return field{}, parseErrorf(row, col, "Unclosed quote in row %d, column %d", row, col)
}

// closeField classifies what follows a closing quote: delimiter, newline,
// or end of buffer. Anything else is a structural error.
func (s *scanner) closeField(row, col, start, end int) (field, error) {
	if s.pos >= len(s.buf) {
		return field{term: termEOF, start: start, end: end, quoted: true}, nil
	}
	if s.hasPrefix(s.pos, s.delim) {
		s.pos += len(s.delim)
		return field{term: termField, start: start, end: end, quoted: true}, nil
	}
	if n := s.matchNewline(s.pos); n > 0 {
		s.pos += n
		return field{term: termRecord, start: start, end: end, quoted: true}, nil
	}
	return field{}, parseErrorf(row, col,
		"Expected delimiter or newline after closing quote in row %d, column %d", row, col)
}

// unescape reverses the quote/escape encoding of a quoted field's raw
// content in a single left-to-right pass.
func (s *scanner) unescape(raw string) string {
	quote := string(s.quote)
	escape := string(s.escape)
	var b []byte
	for i := 0; i < len(raw); {
		if s.quoteIsEscape {
			if i+2*len(quote) <= len(raw) && raw[i:i+len(quote)] == quote && raw[i+len(quote):i+2*len(quote)] == quote {
				b = append(b, quote...)
				i += 2 * len(quote)
				continue
			}
		} else if i+len(escape) <= len(raw) && raw[i:i+len(escape)] == escape {
			rest := raw[i+len(escape):]
			switch {
			case len(rest) >= len(quote) && rest[:len(quote)] == quote:
				b = append(b, quote...)
				i += len(escape) + len(quote)
				continue
			case len(rest) >= len(escape) && rest[:len(escape)] == escape:
				b = append(b, escape...)
				i += len(escape) + len(escape)
				continue
			}
		}
		b = append(b, raw[i])
		i++
	}
	return string(b)
}
