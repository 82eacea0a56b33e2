package gen

import (
	"fmt"
	"strings"
	"unicode"
)

// rustString quotes s as a Rust string literal.
func rustString(s string) string {
	var sb strings.Builder

	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if unicode.IsControl(r) {
				fmt.Fprintf(&sb, `\u{%x}`, r)
				continue
			}

			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}

// snakeCase converts a Rust type name to snake case: HTTPServer -> http_server.
func snakeCase(name string) string {
	runes := []rune(name)

	var sb strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1])

			if prevLower || nextLower {
				sb.WriteByte('_')
			}

			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}
