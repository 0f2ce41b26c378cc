package ics

import "strings"

// Escape encodes a free-text field value per RFC 5545.
// Backslash must be escaped first so later substitutions never
// double-escape; the parser's Unescape reverses these rules exactly.
func Escape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\n")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	return s
}

// Unescape decodes a textual field value in a single left-to-right pass.
// A naive chain of ReplaceAll calls would double-convert sequences like
// `\\n` (literal backslash followed by n), so each escape sequence is
// consumed exactly once.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case '\\':
			b.WriteByte('\\')
		case 'n', 'N':
			b.WriteByte('\n')
		case ';':
			b.WriteByte(';')
		case ',':
			b.WriteByte(',')
		default:
			// Unknown escape: keep the backslash verbatim.
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}
