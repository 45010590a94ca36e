// Package pyliteral converts Python literal text (the output of repr on lists and dicts)
// into JSON so it can be decoded with encoding/json.
package pyliteral

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrSyntax = errors.New("invalid python literal")

var keywords = map[string]string{
	"True":  "true",
	"False": "false",
	"None":  "null",
}

// ToJSON rewrites single-quoted strings, True, False, None, tuples and trailing commas.
// Anything that is not a plain literal (calls, names, sets) is rejected.
func ToJSON(src string) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(src))

	// raw is set by an r prefix and applies to the string that follows it
	raw := false

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\'' || c == '"':
			s, n, err := readString(src[i:], raw)
			raw = false
			if err != nil {
				return nil, fmt.Errorf("%w at offset %d: %v", ErrSyntax, i, err)
			}
			b, err := json.Marshal(s)
			if err != nil {
				return nil, err
			}
			out.Write(b)
			i += n
		case c == '(':
			out.WriteByte('[')
			i++
		case c == ')' || c == ']' || c == '}':
			trimTrailingComma(&out)
			if c == ')' {
				c = ']'
			}
			out.WriteByte(c)
			i++
		case c == '-' || c == '+' || c == '.' || isDigit(c):
			j := i + 1
			for j < len(src) && isNumberPart(src[j]) {
				j++
			}
			num := strings.ReplaceAll(src[i:j], "_", "")
			num = strings.TrimPrefix(num, "+")
			if !json.Valid([]byte(num)) {
				if f, ok := normalizeNumber(num); ok {
					num = f
				} else {
					return nil, fmt.Errorf("%w at offset %d: bad number %q", ErrSyntax, i, src[i:j])
				}
			}
			out.WriteString(num)
			i = j
		case isIdentStart(c):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			word := src[i:j]
			if j < len(src) && (src[j] == '\'' || src[j] == '"') && isStringPrefix(word) {
				// u'...' and r'...' prefixes
				raw = strings.ContainsAny(word, "rR")
				i = j
				continue
			}
			kw, ok := keywords[word]
			if !ok {
				return nil, fmt.Errorf("%w at offset %d: unexpected name %q", ErrSyntax, i, word)
			}
			out.WriteString(kw)
			i = j
		default:
			out.WriteByte(c)
			i++
		}
	}

	result := out.Bytes()
	if !json.Valid(result) {
		return nil, ErrSyntax
	}

	return result, nil
}

// readString reads a quoted string starting at s[0] and returns the decoded value and
// the number of bytes consumed. Raw strings keep every backslash, an escaped quote
// included.
func readString(s string, raw bool) (string, int, error) {
	quote := s[0]
	var sb strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote:
			return sb.String(), i + 1, nil
		case c == '\\' && raw:
			if i+1 >= len(s) {
				return "", 0, errors.New("unterminated string")
			}
			sb.WriteByte(c)
			sb.WriteByte(s[i+1])
			i++
		case c == '\\':
			n, err := readEscape(s[i+1:], &sb)
			if err != nil {
				return "", 0, err
			}
			i += n
		default:
			sb.WriteByte(c)
		}
	}

	return "", 0, errors.New("unterminated string")
}

var simpleEscapes = map[byte]string{
	'\\': "\\",
	'\'': "'",
	'"':  "\"",
	'a':  "\a",
	'b':  "\b",
	'f':  "\f",
	'n':  "\n",
	'r':  "\r",
	't':  "\t",
	'v':  "\v",
	'\n': "",
}

// readEscape decodes the escape sequence that follows a backslash and returns how many
// bytes of s it consumed. Unknown escapes keep their backslash.
func readEscape(s string, sb *strings.Builder) (int, error) {
	if len(s) == 0 {
		return 0, errors.New("unterminated escape")
	}

	c := s[0]
	if v, ok := simpleEscapes[c]; ok {
		sb.WriteString(v)
		return 1, nil
	}

	switch c {
	case 'x':
		return readHexRune(s, 2, sb)
	case 'u':
		return readHexRune(s, 4, sb)
	case 'U':
		return readHexRune(s, 8, sb)
	}

	if c >= '0' && c <= '7' {
		n := 1
		for n < 3 && n < len(s) && s[n] >= '0' && s[n] <= '7' {
			n++
		}
		r, err := strconv.ParseUint(s[:n], 8, 32)
		if err != nil {
			return 0, fmt.Errorf("bad octal escape: %w", err)
		}
		sb.WriteRune(rune(r))
		return n, nil
	}

	sb.WriteByte('\\')
	sb.WriteByte(c)
	return 1, nil
}

// readHexRune reads s[0] (x, u or U) followed by exactly digits hex digits.
func readHexRune(s string, digits int, sb *strings.Builder) (int, error) {
	if len(s) < digits+1 {
		return 0, fmt.Errorf("short \\%c escape", s[0])
	}
	r, err := strconv.ParseUint(s[1:digits+1], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad \\%c escape: %w", s[0], err)
	}
	if r > 0x10FFFF {
		return 0, fmt.Errorf("\\%c escape out of range", s[0])
	}
	sb.WriteRune(rune(r))
	return digits + 1, nil
}

func trimTrailingComma(out *bytes.Buffer) {
	b := out.Bytes()
	end := len(b)
	for end > 0 && isSpace(b[end-1]) {
		end--
	}
	if end > 0 && b[end-1] == ',' {
		out.Truncate(end - 1)
	}
}

// normalizeNumber handles forms python accepts but JSON does not, like "1." or ".5".
func normalizeNumber(num string) (string, bool) {
	neg := strings.HasPrefix(num, "-")
	body := strings.TrimPrefix(num, "-")
	if strings.HasPrefix(body, ".") {
		body = "0" + body
	}
	if strings.HasSuffix(body, ".") {
		body += "0"
	}
	body = strings.Replace(body, ".e", ".0e", 1)
	body = strings.Replace(body, ".E", ".0E", 1)
	if neg {
		body = "-" + body
	}
	return body, json.Valid([]byte(body))
}

func isStringPrefix(word string) bool {
	switch strings.ToLower(word) {
	case "u", "r":
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNumberPart(c byte) bool {
	return isDigit(c) || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' || c == '_'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
