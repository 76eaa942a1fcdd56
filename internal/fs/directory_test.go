package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
}

func removeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			t.Fatalf("failed to remove %s: %v", name, err)
		}
	}
}

func namedEntries(names ...string) []Entry {
	entries := make([]Entry, len(names))
	for i, name := range names {
		entries[i] = Entry{Name: name, Label: name}
	}
	return entries
}

func mustSelection(t *testing.T, d *Directory) int {
	t.Helper()
	i, ok := d.Selection()
	if !ok {
		t.Fatalf("expected a selection in %s", d.Path)
	}
	return i
}

func TestNewDirectorySelectsFirstEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "alpha.txt", "beta.txt", ".hidden")

	d, err := NewDirectory(dir, DisplayOptions{})
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 visible entries, got %d", d.Len())
	}
	if d.IndexOf(".hidden") != -1 {
		t.Fatalf("hidden entry should be filtered")
	}
	if got := mustSelection(t, d); got != 0 {
		t.Fatalf("expected selection 0, got %d", got)
	}
	if !d.Metadata.FileType.IsDir() || d.Metadata.FileType.ChildCount != 3 {
		t.Fatalf("unexpected directory metadata %+v", d.Metadata.FileType)
	}

	withHidden, err := NewDirectory(dir, DisplayOptions{ShowHidden: true})
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}
	if withHidden.IndexOf(".hidden") == -1 {
		t.Fatalf("hidden entry should be listed when ShowHidden is set")
	}
}

func TestNewDirectoryEmptyHasNoSelection(t *testing.T) {
	t.Parallel()

	d, err := NewDirectory(t.TempDir(), DisplayOptions{})
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}
	if !d.IsEmpty() {
		t.Fatalf("expected empty directory")
	}
	if _, ok := d.Selection(); ok {
		t.Fatalf("empty directory must not have a selection")
	}
	if _, ok := d.SelectedEntry(); ok {
		t.Fatalf("empty directory must not have a selected entry")
	}
}

func TestNewDirectoryMissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewDirectory(filepath.Join(t.TempDir(), "missing"), DisplayOptions{})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestCollectEntriesKeepsSurvivorsOfPartialRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "a.txt", "b.txt")
	dirents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	readErr := errors.New("input/output error")

	entries, skipped, err := collectEntries(dir, dirents, readErr, DisplayOptions{})
	if err != nil {
		t.Fatalf("expected partial listing to succeed, got %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 surviving entries, got %d", len(entries))
	}
	if skipped != 1 {
		t.Fatalf("expected the failed read counted as skipped, got %d", skipped)
	}

	if _, _, err := collectEntries(dir, nil, readErr, DisplayOptions{}); !errors.Is(err, readErr) {
		t.Fatalf("expected error when nothing was read, got %v", err)
	}
}

func TestReloadKeepsSelectionByName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "alpha.txt", "beta.txt", "gamma.txt")

	d, err := NewDirectory(dir, DisplayOptions{})
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}
	betaIdx := d.IndexOf("beta.txt")
	if !d.Select(betaIdx) {
		t.Fatalf("failed to select beta.txt")
	}

	createFiles(t, dir, "delta.txt", "epsilon.txt", "zeta.txt")
	if err := d.Reload(DisplayOptions{}); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	current, ok := d.SelectedEntry()
	if !ok || current.Name != "beta.txt" {
		t.Fatalf("expected selection to stay on beta.txt, got %v", current)
	}
}

func TestReloadClampsWhenListingShrinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "a.txt", "b.txt", "c.txt")

	d, err := NewDirectory(dir, DisplayOptions{})
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}
	d.Select(2)
	keep := d.Entries[0].Name
	removeFiles(t, dir, d.Entries[1].Name, d.Entries[2].Name)

	if err := d.Reload(DisplayOptions{}); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := mustSelection(t, d); got != 0 {
		t.Fatalf("expected selection clamped to 0, got %d", got)
	}
	if d.Entries[0].Name != keep {
		t.Fatalf("expected %s to remain, got %s", keep, d.Entries[0].Name)
	}
}

func TestReloadKeepsIndexWhenSelectedEntryRemoved(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "b.txt", "a.txt")

	d, err := NewDirectory(dir, DisplayOptions{})
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}
	first := d.Entries[0].Name
	other := d.Entries[1].Name
	removeFiles(t, dir, first)

	if err := d.Reload(DisplayOptions{}); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	current, ok := d.SelectedEntry()
	if !ok {
		t.Fatal("expected a selection after reload")
	}
	if mustSelection(t, d) != 0 || current.Name != other {
		t.Fatalf("expected index 0 now pointing at %s, got %s", other, current.Name)
	}
}

func TestReloadEmptiedDirectoryClearsSelection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "only.txt")

	d, err := NewDirectory(dir, DisplayOptions{})
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}
	removeFiles(t, dir, "only.txt")

	if err := d.Reload(DisplayOptions{}); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if _, ok := d.Selection(); ok {
		t.Fatalf("expected no selection for empty listing")
	}

	createFiles(t, dir, "new.txt")
	if err := d.Reload(DisplayOptions{}); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := mustSelection(t, d); got != 0 {
		t.Fatalf("expected selection 0 once entries reappear, got %d", got)
	}
}

func TestReloadFailureLeavesDirectoryIntact(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "sub")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("failed to create sub: %v", err)
	}
	createFiles(t, dir, "a.txt", "b.txt")

	d, err := NewDirectory(dir, DisplayOptions{})
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}
	d.Select(1)
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("failed to remove sub: %v", err)
	}

	if err := d.Reload(DisplayOptions{}); err == nil {
		t.Fatal("expected Reload to fail for a removed directory")
	}
	if d.Len() != 2 || mustSelection(t, d) != 1 {
		t.Fatalf("failed reload must not modify the directory")
	}
}

func TestCarrySelection(t *testing.T) {
	tests := []struct {
		name    string
		prev    []string
		prevIdx int
		next    []string
		expect  int
	}{
		{
			name:    "empty listing has no selection",
			prev:    []string{"a"},
			prevIdx: 0,
			next:    nil,
			expect:  noSelection,
		},
		{
			name:    "clamps to last entry when index exceeds new length",
			prev:    []string{"a", "b", "c"},
			prevIdx: 2,
			next:    []string{"x", "y"},
			expect:  1,
		},
		{
			name:    "follows name through reordering",
			prev:    []string{"b.txt", "a.txt", "c.txt"},
			prevIdx: 0,
			next:    []string{"c.txt", "a.txt", "b.txt"},
			expect:  2,
		},
		{
			name:    "keeps index when name vanished",
			prev:    []string{"b.txt", "a.txt"},
			prevIdx: 0,
			next:    []string{"a.txt"},
			expect:  0,
		},
		{
			name:    "keeps index pointing at a different entry after reorder",
			prev:    []string{"a", "b", "c"},
			prevIdx: 1,
			next:    []string{"c", "x", "a"},
			expect:  1,
		},
		{
			name:    "no previous selection starts at zero",
			prev:    nil,
			prevIdx: noSelection,
			next:    []string{"a", "b"},
			expect:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := carrySelection(namedEntries(tt.prev...), tt.prevIdx, namedEntries(tt.next...))
			if got != tt.expect {
				t.Fatalf("carrySelection = %d, want %d", got, tt.expect)
			}
		})
	}
}

func TestMoveSelectionStopsAtEdges(t *testing.T) {
	d := &Directory{Entries: namedEntries("a", "b", "c")}

	if d.MoveSelection(-1) {
		t.Fatalf("should not move above the first entry")
	}
	if !d.MoveSelection(5) {
		t.Fatalf("expected cursor to move down")
	}
	if got := mustSelection(t, d); got != 2 {
		t.Fatalf("expected cursor clamped to 2, got %d", got)
	}
	if d.Select(3) {
		t.Fatalf("out-of-range Select must be rejected")
	}

	empty := &Directory{selected: noSelection}
	if empty.MoveSelection(1) || empty.Select(0) {
		t.Fatalf("empty directory cursor must not move")
	}
}

func TestModifiedDetectsNewerMtime(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	d, err := NewDirectory(dir, DisplayOptions{})
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}
	if d.Modified() {
		t.Fatalf("fresh snapshot should not be modified")
	}

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(dir, future, future); err != nil {
		t.Fatalf("failed to touch dir: %v", err)
	}
	if !d.Modified() {
		t.Fatalf("expected Modified after mtime moved forward")
	}

	if err := d.Reload(DisplayOptions{}); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if d.Modified() {
		t.Fatalf("reload should refresh the snapshot")
	}

	gone := &Directory{Path: filepath.Join(dir, "missing")}
	if gone.Modified() {
		t.Fatalf("read errors must report unmodified")
	}
}
