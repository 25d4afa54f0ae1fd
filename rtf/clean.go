package rtf

import "strings"

// cleanText converts one cell content fragment to plain text:
//
//   - \line breaks collapse to a single space
//   - {\super ...} annotation groups are stripped entirely
//   - \uN numeric escapes decode to the code point, interpreting negative N
//     as the two's-complement 16-bit unsigned value; one immediately
//     following '?' fallback character is consumed
//   - \'hh hex escapes are removed
//   - \{ \} \\ unescape to the literal character
//   - all remaining control words, control symbols, and group braces are
//     stripped
//   - whitespace runs collapse to one space and the result is trimmed
func cleanText(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		switch c := s[i]; {
		case c == '\\':
			i = cleanEscape(s, i, &b)
		case c == '{':
			if end, ok := superGroupEnd(s, i); ok {
				i = end
			} else {
				i++
			}
		case c == '}':
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// cleanEscape handles the backslash sequence at s[i], appending any decoded
// text to b and returning the index just past the sequence.
func cleanEscape(s string, i int, b *strings.Builder) int {
	if i+1 >= len(s) {
		return i + 1
	}
	switch n := s[i+1]; {
	case n == '{' || n == '}' || n == '\\':
		b.WriteByte(n)
		return i + 2
	case n == '\'':
		// Two-hex-digit literal escape, decoded by removal.
		j := i + 2
		for k := 0; k < 2 && j < len(s) && isHex(s[j]); k++ {
			j++
		}
		return j
	case n == 'u' && i+2 < len(s) && (isDigit(s[i+2]) || s[i+2] == '-'):
		return cleanUnicodeEscape(s, i, b)
	case isAlpha(n):
		word, _, end := readControl(s, i)
		if word == "line" {
			b.WriteByte(' ')
		}
		return end
	default:
		// Other control symbol, stripped.
		return i + 2
	}
}

// cleanUnicodeEscape decodes the \uN escape at s[i].
func cleanUnicodeEscape(s string, i int, b *strings.Builder) int {
	j := i + 2
	neg := false
	if s[j] == '-' {
		neg = true
		j++
	}
	n := 0
	for j < len(s) && isDigit(s[j]) {
		n = n*10 + int(s[j]-'0')
		j++
	}
	if neg {
		n = 65536 - n%65536
	}
	b.WriteRune(rune(n))
	if j < len(s) && s[j] == ' ' {
		j++
	}
	// The writer emits a substitution character for non-Unicode readers.
	if j < len(s) && s[j] == '?' {
		j++
	}
	return j
}

// superGroupEnd reports whether the group opening at s[i] is a superscript
// annotation group and, if so, returns the index just past its closing
// brace. Nested braces and escaped literals are honored.
func superGroupEnd(s string, i int) (int, bool) {
	j := i + 1
	for j < len(s) && (s[j] == ' ' || s[j] == '\n' || s[j] == '\r') {
		j++
	}
	if j >= len(s) || s[j] != '\\' {
		return 0, false
	}
	word, _, _ := readControl(s, j)
	if word != "super" {
		return 0, false
	}

	depth := 0
	for k := i; k < len(s); k++ {
		switch s[k] {
		case '\\':
			k++ // skip the escaped or control character
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return k + 1, true
			}
		}
	}
	return len(s), true
}

func isHex(b byte) bool {
	return isDigit(b) || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}
