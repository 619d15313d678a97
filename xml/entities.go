package xml

import (
	"strconv"
	"strings"
)

// DecodeEntities expands named and numeric character references in s.
// Recognized names are lt, gt, amp, quot, and apos; numeric references
// may be decimal (&#NNN;) or hexadecimal (&#xHHH;). Unrecognized or
// malformed references are left intact.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			b.WriteByte(s[i])
			i++
			continue
		}
		if rep, ok := decodeEntity(s[i+1 : i+end]); ok {
			b.WriteString(rep)
			i += end + 1
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func decodeEntity(name string) (string, bool) {
	switch name {
	case "lt":
		return "<", true
	case "gt":
		return ">", true
	case "amp":
		return "&", true
	case "quot":
		return `"`, true
	case "apos":
		return "'", true
	}
	if strings.HasPrefix(name, "#x") || strings.HasPrefix(name, "#X") {
		n, err := strconv.ParseUint(name[2:], 16, 32)
		if err != nil {
			return "", false
		}
		return string(rune(n)), true
	}
	if strings.HasPrefix(name, "#") {
		n, err := strconv.ParseUint(name[1:], 10, 32)
		if err != nil {
			return "", false
		}
		return string(rune(n)), true
	}
	return "", false
}

var textEncoder = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EncodeEntities replaces the five special characters in text content
// with their named entities. Output never uses numeric references.
func EncodeEntities(s string) string {
	return textEncoder.Replace(s)
}

// Attribute values always escape the characters that would corrupt a
// double-quoted attribute on re-parse; the full set is used when entity
// encoding is enabled.
var (
	attrEncoderMinimal = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		`"`, "&quot;",
	)
	attrEncoderFull = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
)

func encodeAttr(s string, full bool) string {
	if full {
		return attrEncoderFull.Replace(s)
	}
	return attrEncoderMinimal.Replace(s)
}
