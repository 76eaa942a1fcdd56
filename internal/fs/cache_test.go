package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func makeTree(t *testing.T) (root, leaf string) {
	t.Helper()
	root = t.TempDir()
	leaf = filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(leaf, 0o755); err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}
	// Siblings so the trail has something to choose between.
	for _, dir := range []string{filepath.Join(root, "a"), filepath.Join(root, "a", "b")} {
		createFiles(t, dir, "aaa.txt", "zzz.txt")
	}
	return root, leaf
}

func selectedName(t *testing.T, c *Cache, path string) string {
	t.Helper()
	dir, ok := c.Get(path)
	if !ok {
		t.Fatalf("%s not cached", path)
	}
	entry, ok := dir.SelectedEntry()
	if !ok {
		t.Fatalf("%s has no selection", path)
	}
	return entry.Name
}

func TestAncestors(t *testing.T) {
	sep := string(filepath.Separator)
	path := filepath.Join(sep, "a", "b", "c")

	got := Ancestors(path)
	want := []string{
		filepath.Join(sep, "a", "b", "c"),
		filepath.Join(sep, "a", "b"),
		filepath.Join(sep, "a"),
		sep,
	}
	if len(got) != len(want) {
		t.Fatalf("Ancestors(%q) = %v, want %v", path, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Ancestors(%q)[%d] = %q, want %q", path, i, got[i], want[i])
		}
	}
}

func TestPopulateToRootCachesEveryAncestor(t *testing.T) {
	t.Parallel()

	_, leaf := makeTree(t)
	c := NewCache(nil)

	if err := c.PopulateToRoot(leaf, DisplayOptions{}); err != nil {
		t.Fatalf("PopulateToRoot failed: %v", err)
	}

	for _, p := range Ancestors(leaf) {
		if _, ok := c.Get(p); !ok {
			t.Fatalf("ancestor %s missing from cache", p)
		}
	}
	if c.Len() != len(Ancestors(leaf)) {
		t.Fatalf("expected %d cached directories, got %d", len(Ancestors(leaf)), c.Len())
	}
}

func TestPopulateToRootBuildsSelectionTrail(t *testing.T) {
	t.Parallel()

	root, leaf := makeTree(t)
	c := NewCache(nil)

	if err := c.PopulateToRoot(leaf, DisplayOptions{}); err != nil {
		t.Fatalf("PopulateToRoot failed: %v", err)
	}

	if got := selectedName(t, c, filepath.Join(root, "a", "b")); got != "c" {
		t.Fatalf("expected a/b to select c, got %s", got)
	}
	if got := selectedName(t, c, filepath.Join(root, "a")); got != "b" {
		t.Fatalf("expected a to select b, got %s", got)
	}
	if got := selectedName(t, c, root); got != "a" {
		t.Fatalf("expected root to select a, got %s", got)
	}
}

func TestPopulateToRootReloadsCachedDirectories(t *testing.T) {
	t.Parallel()

	root, leaf := makeTree(t)
	c := NewCache(nil)
	parent := filepath.Join(root, "a", "b")

	if err := c.PopulateToRoot(leaf, DisplayOptions{}); err != nil {
		t.Fatalf("PopulateToRoot failed: %v", err)
	}
	c.Select(parent, 0)

	createFiles(t, parent, "new.txt")
	if err := c.PopulateToRoot(leaf, DisplayOptions{}); err != nil {
		t.Fatalf("PopulateToRoot failed: %v", err)
	}

	dir, _ := c.Get(parent)
	if dir.IndexOf("new.txt") < 0 {
		t.Fatalf("cached directory was not reloaded")
	}
	if got := selectedName(t, c, parent); got != "c" {
		t.Fatalf("trail should re-select c after reload, got %s", got)
	}
}

func TestPopulateToRootKeepsPartialProgressOnError(t *testing.T) {
	t.Parallel()

	root, leaf := makeTree(t)
	c := NewCache(nil)
	broken := filepath.Join(root, "a", "b")
	c.Set(broken, &Directory{Path: filepath.Join(root, "vanished"), selected: noSelection})

	err := c.PopulateToRoot(leaf, DisplayOptions{})
	if err == nil {
		t.Fatal("expected PopulateToRoot to fail on the broken ancestor")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	if _, ok := c.Get(leaf); !ok {
		t.Fatalf("directories processed before the failure must stay cached")
	}
	if _, ok := c.Get(filepath.Join(root, "a")); ok {
		t.Fatalf("directories after the failure must not be populated")
	}
}

func TestPopulateToRootMissingLeaf(t *testing.T) {
	t.Parallel()

	c := NewCache(nil)
	missing := filepath.Join(t.TempDir(), "missing")

	if err := c.PopulateToRoot(missing, DisplayOptions{}); err == nil {
		t.Fatal("expected error for missing path")
	}
	if c.Len() != 0 {
		t.Fatalf("nothing should be cached when the leaf fails, got %v", c.Paths())
	}
}

func TestCacheClear(t *testing.T) {
	t.Parallel()

	_, leaf := makeTree(t)
	c := NewCache(nil)
	if err := c.PopulateToRoot(leaf, DisplayOptions{}); err != nil {
		t.Fatalf("PopulateToRoot failed: %v", err)
	}

	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", c.Len())
	}
	for _, p := range Ancestors(leaf) {
		if _, ok := c.Get(p); ok {
			t.Fatalf("%s still cached after Clear", p)
		}
	}
}

func TestCacheReloadAndMove(t *testing.T) {
	t.Parallel()

	root, leaf := makeTree(t)
	c := NewCache(nil)
	parent := filepath.Join(root, "a", "b")

	if err := c.Reload(parent, DisplayOptions{}); !errors.Is(err, ErrNotCached) {
		t.Fatalf("expected ErrNotCached, got %v", err)
	}
	if err := c.PopulateToRoot(leaf, DisplayOptions{}); err != nil {
		t.Fatalf("PopulateToRoot failed: %v", err)
	}

	dir, _ := c.Get(parent)
	start, _ := dir.Selection()
	moved := c.Move(parent, 1) || c.Move(parent, -1)
	if !moved {
		t.Fatalf("expected cursor to move in a three-entry directory")
	}
	dir, _ = c.Get(parent)
	if now, _ := dir.Selection(); now == start {
		t.Fatalf("cursor did not change")
	}

	createFiles(t, parent, "late.txt")
	if err := c.Reload(parent, DisplayOptions{}); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	dir, _ = c.Get(parent)
	if dir.IndexOf("late.txt") < 0 {
		t.Fatalf("Reload did not pick up late.txt")
	}
}

func TestCacheGetReturnsSnapshot(t *testing.T) {
	t.Parallel()

	_, leaf := makeTree(t)
	c := NewCache(nil)
	if err := c.PopulateToRoot(leaf, DisplayOptions{}); err != nil {
		t.Fatalf("PopulateToRoot failed: %v", err)
	}

	parent := filepath.Dir(leaf)
	snapshot, _ := c.Get(parent)
	snapshot.Select(snapshot.Len() - 1)

	if got := selectedName(t, c, parent); got != "c" {
		t.Fatalf("mutating a snapshot must not affect the cache, got %s", got)
	}
}
