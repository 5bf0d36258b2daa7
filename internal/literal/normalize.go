package literal

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ToStrictLiteral rewrites a JavaScript quasi-literal into strict JSON text.
//
// The rewrite runs in three passes: comments are dropped, bare upper-case identifiers
// are quoted so they survive as placeholder strings, and the remaining shape is
// coerced (unquoted keys, single quotes, trailing commas). The result is not
// guaranteed to be valid JSON; ParseLiteral reports whether it is.
func ToStrictLiteral(text string) string {
	return CoerceShape(QuoteBareIdentifiers(StripComments(text)))
}

// StripComments removes // and /* */ comments that appear outside of string literals.
// Line comments keep their terminating newline.
func StripComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case isQuote(c):
			end, _ := scanString(text, i)
			b.WriteString(text[i:end])
			i = end
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			nl := strings.IndexByte(text[i:], '\n')
			if nl < 0 {
				return b.String()
			}
			i += nl
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			b.WriteByte(' ')
			i += end + 4
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

// QuoteBareIdentifiers wraps every unquoted identifier matching [A-Z_][A-Z0-9_]* in
// double quotes. Identifiers inside string literals are left untouched, as are
// identifiers that are part of a larger token such as Foo.BAR or 1E5.
func QuoteBareIdentifiers(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 16)

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case isQuote(c):
			end, _ := scanString(text, i)
			b.WriteString(text[i:end])
			i = end
		case isIdentStart(c) && !continuesToken(text, i):
			j := identEnd(text, i)
			word := text[i:j]
			if IsPlaceholder(word) {
				b.WriteByte('"')
				b.WriteString(word)
				b.WriteByte('"')
			} else {
				b.WriteString(word)
			}
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

// CoerceShape quotes unquoted object keys, converts single-quoted and template strings
// to double-quoted JSON strings and drops trailing commas before } and ].
func CoerceShape(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 16)

	// last is the most recent non-space byte written; it tells keys from values.
	var last byte
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case isQuote(c):
			end, closed := scanString(text, i)
			if !closed {
				b.WriteString(text[i:])
				return b.String()
			}
			appendJSONString(&b, text[i+1:end-1])
			last = '"'
			i = end
		case isIdentPart(c) && !continuesToken(text, i):
			j := identEnd(text, i)
			word := text[i:j]
			if (last == '{' || last == ',') && nextSignificant(text, j) == ':' {
				appendJSONString(&b, word)
				last = '"'
			} else {
				b.WriteString(word)
				last = word[len(word)-1]
			}
			i = j
		case c == ',':
			if next := nextSignificant(text, i+1); next == '}' || next == ']' {
				i++
				continue
			}
			b.WriteByte(c)
			last = c
			i++
		default:
			b.WriteByte(c)
			if !isSpace(c) {
				last = c
			}
			i++
		}
	}

	return b.String()
}

// UnquoteJS decodes the body of a JavaScript string literal (the text between the
// quotes) into a Go string. Undecodable input is returned unchanged.
func UnquoteJS(raw string) string {
	var b strings.Builder
	appendJSONString(&b, raw)

	var out string
	if err := json.Unmarshal([]byte(b.String()), &out); err != nil {
		return raw
	}
	return out
}

// appendJSONString writes raw, the body of a JavaScript string literal, as a double
// quoted JSON string. JavaScript-only escapes are translated to their JSON form.
func appendJSONString(b *strings.Builder, raw string) {
	b.WriteByte('"')
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' {
			if i+1 == len(raw) {
				b.WriteString(`\\`)
				break
			}
			i++
			switch e := raw[i]; e {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
				b.WriteByte('\\')
				b.WriteByte(e)
			case 'x':
				b.WriteString(`\u00`)
			case 'v':
				b.WriteString(`\u000b`)
			case '0':
				b.WriteString(`\u0000`)
			case '\n':
				// line continuation
			case '\r':
				if i+1 < len(raw) && raw[i+1] == '\n' {
					i++
				}
			default:
				writeJSONByte(b, e)
			}
			continue
		}
		writeJSONByte(b, c)
	}
	b.WriteByte('"')
}

func writeJSONByte(b *strings.Builder, c byte) {
	switch {
	case c == '"':
		b.WriteString(`\"`)
	case c == '\n':
		b.WriteString(`\n`)
	case c == '\r':
		b.WriteString(`\r`)
	case c == '\t':
		b.WriteString(`\t`)
	case c < 0x20:
		fmt.Fprintf(b, `\u%04x`, c)
	default:
		b.WriteByte(c)
	}
}

// scanString returns the index just past the string literal starting at text[i] and
// whether the literal was terminated.
func scanString(text string, i int) (int, bool) {
	quote := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case quote:
			return j + 1, true
		}
	}
	return len(text), false
}

// nextSignificant returns the first non-space byte at or after i, or 0.
func nextSignificant(text string, i int) byte {
	for ; i < len(text); i++ {
		if !isSpace(text[i]) {
			return text[i]
		}
	}
	return 0
}

func identEnd(text string, i int) int {
	j := i
	for j < len(text) && isIdentPart(text[j]) {
		j++
	}
	return j
}

// continuesToken reports whether text[i] continues a token that started earlier.
func continuesToken(text string, i int) bool {
	if i == 0 {
		return false
	}
	prev := text[i-1]
	return isIdentPart(prev) || prev == '.'
}

func isQuote(c byte) bool {
	return c == '"' || c == '\'' || c == '`'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
