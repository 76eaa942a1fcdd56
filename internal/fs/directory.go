package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const noSelection = -1

// Directory is a listing of one path plus the cursor position within it.
// Entries keep the order the filesystem returned them in.
//
// The selection is empty exactly when Entries is empty; otherwise it is a
// valid index into Entries.
type Directory struct {
	Path     string
	Entries  []Entry
	Metadata Metadata
	// Skipped counts children dropped by the last read because their Entry
	// could not be built.
	Skipped int

	selected int
}

// NewDirectory reads path and selects the first entry, if any.
func NewDirectory(path string, opts DisplayOptions) (*Directory, error) {
	entries, skipped, err := readDirList(path, opts)
	if err != nil {
		return nil, err
	}

	md, err := ReadMetadata(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read metadata for %s: %w", path, err)
	}

	selected := noSelection
	if len(entries) > 0 {
		selected = 0
	}

	return &Directory{
		Path:     path,
		Entries:  entries,
		Metadata: md,
		Skipped:  skipped,
		selected: selected,
	}, nil
}

// Reload re-reads the directory and carries the selection over: by name when
// the selected entry still exists, otherwise by position, clamped to the new
// length. On error the Directory is left as it was.
func (d *Directory) Reload(opts DisplayOptions) error {
	entries, skipped, err := readDirList(d.Path, opts)
	if err != nil {
		return err
	}

	md, err := ReadMetadata(d.Path)
	if err != nil {
		return fmt.Errorf("cannot read metadata for %s: %w", d.Path, err)
	}

	d.selected = carrySelection(d.Entries, d.selected, entries)
	d.Entries = entries
	d.Metadata = md
	d.Skipped = skipped
	return nil
}

func carrySelection(prev []Entry, prevIdx int, next []Entry) int {
	switch {
	case len(next) == 0:
		return noSelection
	case prevIdx < 0 || prevIdx >= len(prev):
		return 0
	case prevIdx >= len(next):
		return len(next) - 1
	}

	if j := indexOfName(next, prev[prevIdx].Name); j >= 0 {
		return j
	}
	// The name is gone but the index is still in range: keep the position even
	// though it now points at a different entry.
	return prevIdx
}

// Modified reports whether the directory's mtime on disk is newer than the
// snapshot. Read errors count as unmodified.
func (d *Directory) Modified() bool {
	info, err := os.Lstat(d.Path)
	if err != nil {
		return false
	}
	return info.ModTime().After(d.Metadata.Modified)
}

func (d *Directory) Len() int {
	return len(d.Entries)
}

func (d *Directory) IsEmpty() bool {
	return len(d.Entries) == 0
}

// Selection returns the selected index; ok is false for an empty directory.
func (d *Directory) Selection() (int, bool) {
	if d.selected < 0 || d.selected >= len(d.Entries) {
		return 0, false
	}
	return d.selected, true
}

// SelectedEntry returns the entry under the cursor.
func (d *Directory) SelectedEntry() (Entry, bool) {
	i, ok := d.Selection()
	if !ok {
		return Entry{}, false
	}
	return d.Entries[i], true
}

// Select moves the cursor to i. Out-of-range indices are ignored.
func (d *Directory) Select(i int) bool {
	if i < 0 || i >= len(d.Entries) {
		return false
	}
	d.selected = i
	return true
}

// MoveSelection shifts the cursor by delta, stopping at either end. It reports
// whether the cursor moved.
func (d *Directory) MoveSelection(delta int) bool {
	cur, ok := d.Selection()
	if !ok {
		return false
	}
	next := cur + delta
	if next < 0 {
		next = 0
	}
	if next >= len(d.Entries) {
		next = len(d.Entries) - 1
	}
	if next == cur {
		return false
	}
	d.selected = next
	return true
}

// IndexOf returns the position of the entry called name, or -1.
func (d *Directory) IndexOf(name string) int {
	return indexOfName(d.Entries, name)
}

func indexOfName(entries []Entry, name string) int {
	for i := range entries {
		if entries[i].Name == name {
			return i
		}
	}
	return -1
}

func (d *Directory) String() string {
	var b strings.Builder
	b.WriteString(d.Path)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(d.Path)))
	b.WriteByte('\n')
	for _, e := range d.Entries {
		b.WriteString(e.Label)
		b.WriteByte('\n')
	}
	return b.String()
}

// readDirList lists path in directory order. Hidden names are filtered before
// any metadata is read; children whose Entry fails are skipped and counted.
func readDirList(path string, opts DisplayOptions) ([]Entry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot read directory %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	// File.ReadDir, unlike os.ReadDir, does not sort.
	dirents, err := f.ReadDir(-1)
	return collectEntries(path, dirents, err, opts)
}

// collectEntries builds entries from a ReadDir result. A read error that
// still produced entries costs only the unread remainder, counted as one
// skipped child; an error with nothing read fails the listing.
func collectEntries(path string, dirents []os.DirEntry, readErr error, opts DisplayOptions) ([]Entry, int, error) {
	if readErr != nil && len(dirents) == 0 {
		return nil, 0, fmt.Errorf("cannot read directory %s: %w", path, readErr)
	}

	entries := make([]Entry, 0, len(dirents))
	skipped := 0
	if readErr != nil {
		skipped++
	}
	for _, de := range dirents {
		if !opts.ShowHidden && IsHidden(de.Name()) {
			continue
		}
		if isSystemJunction(filepath.Join(path, de.Name())) {
			continue
		}
		entry, err := NewEntry(path, de, opts.ShowIcons)
		if err != nil {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}
