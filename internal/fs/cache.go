package fs

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// ErrNotCached is returned by operations that need a directory to have been
// populated first.
var ErrNotCached = errors.New("directory not cached")

// Cache holds the Directory for every path visited in this session. One lock
// guards the whole map so that PopulateToRoot updates an ancestor chain
// atomically with respect to readers.
type Cache struct {
	mu     sync.Mutex
	dirs   map[string]*Directory
	logger *slog.Logger
}

// NewCache returns an empty cache. A nil logger discards output.
func NewCache(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cache{
		dirs:   make(map[string]*Directory),
		logger: logger,
	}
}

// Ancestors returns path followed by each of its parents up to and including
// the root, most specific first.
func Ancestors(path string) []string {
	curr := filepath.Clean(path)
	chain := []string{curr}
	for {
		parent := filepath.Dir(curr)
		if parent == curr {
			return chain
		}
		chain = append(chain, parent)
		curr = parent
	}
}

// PopulateToRoot makes sure path and every ancestor are cached and fresh.
// Cached directories are reloaded, missing ones are read. Each ancestor's
// cursor is placed on the child the walk came from, so moving to a parent
// highlights the directory just left.
//
// The first error aborts the walk. Directories handled before it stay cached.
func (c *Cache) PopulateToRoot(path string, opts DisplayOptions) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prev := ""
	for _, curr := range Ancestors(abs) {
		dir, cached := c.dirs[curr]
		if cached {
			if err := dir.Reload(opts); err != nil {
				return err
			}
		} else {
			dir, err = NewDirectory(curr, opts)
			if err != nil {
				return err
			}
		}

		if prev != "" {
			if i := dir.IndexOf(norm.NFC.String(filepath.Base(prev))); i >= 0 {
				dir.selected = i
			}
		}
		c.dirs[curr] = dir

		if dir.Skipped > 0 {
			c.logger.Debug("skipped unreadable entries", "path", curr, "count", dir.Skipped)
		}
		prev = curr
	}

	c.logger.Debug("populated to root", "path", abs, "cached", len(c.dirs))
	return nil
}

// Reload re-reads a single cached directory.
func (c *Cache) Reload(path string, opts DisplayOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir, ok := c.dirs[filepath.Clean(path)]
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrNotCached)
	}
	return dir.Reload(opts)
}

// Get returns a copy of the cached Directory for path. The copy shares its
// Entries slice with the cache; a reload swaps the slice rather than writing
// into it, so the copy stays consistent.
func (c *Cache) Get(path string) (Directory, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir, ok := c.dirs[filepath.Clean(path)]
	if !ok {
		return Directory{}, false
	}
	return *dir, true
}

// Set stores dir under path, replacing any previous entry.
func (c *Cache) Set(path string, dir *Directory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirs[filepath.Clean(path)] = dir
}

// Select moves the cursor of the cached directory at path.
func (c *Cache) Select(path string, i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir, ok := c.dirs[filepath.Clean(path)]
	if !ok {
		return false
	}
	return dir.Select(i)
}

// Move shifts the cursor of the cached directory at path by delta.
func (c *Cache) Move(path string, delta int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir, ok := c.dirs[filepath.Clean(path)]
	if !ok {
		return false
	}
	return dir.MoveSelection(delta)
}

// Clear drops every cached directory.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.dirs)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.dirs)
}

// Paths lists the cached paths in lexical order.
func (c *Cache) Paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	paths := make([]string, 0, len(c.dirs))
	for p := range c.dirs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (c *Cache) String() string {
	var b strings.Builder
	for _, p := range c.Paths() {
		if dir, ok := c.Get(p); ok {
			b.WriteString(dir.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}
