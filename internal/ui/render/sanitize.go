package render

import (
	"fmt"
	"strings"
	"unicode"
)

// sanitize makes file names and file content safe to put on the terminal.
// Control characters become '?', line breaks and tabs become spaces and
// invisible formatting runes (bidi overrides, zero-width joiners, BOM) are
// shown as <U+XXXX> so a name cannot visually impersonate another.
func sanitize(text string) string {
	clean := true
	for _, ru := range text {
		if needsSanitizing(ru) {
			clean = false
			break
		}
	}
	if clean {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, ru := range text {
		switch {
		case ru == '\t', ru == '\n', ru == '\r':
			b.WriteByte(' ')
		case ru < 0x20, ru == 0x7f, ru >= 0x80 && ru < 0xa0:
			b.WriteByte('?')
		case unicode.Is(unicode.Cf, ru):
			fmt.Fprintf(&b, "<U+%04X>", ru)
		default:
			b.WriteRune(ru)
		}
	}
	return b.String()
}

func needsSanitizing(ru rune) bool {
	switch {
	case ru < 0x20, ru == 0x7f:
		return true
	case ru >= 0x80 && ru < 0xa0:
		return true
	default:
		return unicode.Is(unicode.Cf, ru)
	}
}
