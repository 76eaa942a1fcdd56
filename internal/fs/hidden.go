package fs

import "strings"

// IsHidden reports whether name is a dotfile. Hidden entries are left out of
// listings unless DisplayOptions.ShowHidden is set.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// DisplayOptions controls which entries a Directory lists and how they are labelled.
type DisplayOptions struct {
	ShowHidden bool
	ShowIcons  bool
}
