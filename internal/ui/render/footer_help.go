package render

import "strings"

// footerHelpSegments lists the bindings the key translator understands.
var footerHelpSegments = []string{
	"h/j/k/l: navigate",
	"m: mark",
	"y: copy",
	"d: cut",
	"p: paste",
	"u: undo",
	"c: cursor",
	"Esc: quit",
}

// buildFooterHelpText returns the hint line shown while there is no status
// message, padded by one space on each side.
func buildFooterHelpText(showHidden bool) string {
	parts := append([]string(nil), footerHelpSegments...)
	if showHidden {
		parts = append(parts, "hidden: shown")
	}
	return " " + strings.Join(parts, "  ") + " "
}
