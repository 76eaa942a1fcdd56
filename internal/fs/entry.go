package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Entry represents a single file or directory on disk as it looked when the
// containing Directory was last read.
type Entry struct {
	Name     string
	Label    string
	Path     string
	Flagged  bool
	Metadata Metadata
}

// NewEntry builds an Entry for a child of dir. It fails if the child's
// metadata cannot be read, e.g. because it was removed after the listing.
func NewEntry(dir string, de os.DirEntry, showIcons bool) (Entry, error) {
	rawName := de.Name()
	fullPath := filepath.Join(dir, rawName)

	md, err := ReadMetadata(fullPath)
	if err != nil {
		return Entry{}, fmt.Errorf("cannot read metadata for %s: %w", fullPath, err)
	}

	name := norm.NFC.String(rawName)
	label := name
	if showIcons {
		label = iconFor(name, md) + " " + name
	}

	return Entry{
		Name:     name,
		Label:    label,
		Path:     fullPath,
		Metadata: md,
	}, nil
}

// IsDir reports whether the entry is a directory (or a link to one).
func (e Entry) IsDir() bool {
	return e.Metadata.FileType.IsDir()
}

// IsSymlink reports whether the entry itself is a symlink.
func (e Entry) IsSymlink() bool {
	return e.Metadata.LinkType.Symlink
}

// IsHidden reports whether the entry is a dotfile.
func (e Entry) IsHidden() bool {
	return IsHidden(e.Name)
}

// Extension returns the name from its last '.' on, dot included, or "".
func (e Entry) Extension() string {
	i := strings.LastIndexByte(e.Name, '.')
	if i < 0 {
		return ""
	}
	return e.Name[i:]
}

func (e Entry) String() string {
	return e.Label
}
