package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/suha/internal/fs"
)

// View is everything one frame shows. Parent is nil at the filesystem root.
type View struct {
	Path          string
	Parent        *fs.Directory
	Current       *fs.Directory
	ShowIcons     bool
	ShowHidden    bool
	Status        string
	StatusIsError bool
}

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
	widths widthCache

	mu      sync.Mutex
	cursorX int
	cursorY int

	preview previewMemo
}

type previewKey struct {
	path     string
	modified time.Time
	size     uint64
	lines    int
}

// previewMemo keeps the last preview so an idle frame does not re-read the
// selected file.
type previewMemo struct {
	key  previewKey
	text string
	err  error
	ok   bool
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Cursor returns the cell of the selected row in the current column as of
// the last frame. It is safe to call from any goroutine.
func (r *Renderer) Cursor() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursorX, r.cursorY
}

func (r *Renderer) setCursor(x, y int) {
	r.mu.Lock()
	r.cursorX, r.cursorY = x, y
	r.mu.Unlock()
}

// Render draws one frame.
func (r *Renderer) Render(v View) {
	r.screen.Clear()
	w, h := r.screen.Size()
	m := computeLayout(w, h)

	r.drawHeader(v, w)

	if m.parentWidth > 0 {
		r.drawParent(v, m)
		r.drawSeparator(m.parentWidth, m)
	}

	cursorY := r.drawListing(v.Current, m.currentStart, m.currentWidth, m, true, v.ShowIcons)
	r.setCursor(m.currentStart, max(cursorY, m.listTop))

	if m.previewWidth > 0 {
		r.drawSeparator(m.previewStart-columnSeparatorWidth, m)
		r.drawPreview(v.Current, m)
	}

	r.drawStatusLine(v, w, h)
	r.screen.Show()
}

func (r *Renderer) drawHeader(v View, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)

	x := r.drawText(0, 0, w, "suha ", style.Bold(true))

	path := v.Path
	if path == "" {
		path = "/"
	}
	suffix := ""
	if v.Current != nil && v.Current.Skipped > 0 {
		suffix = fmt.Sprintf("  (%d unreadable)", v.Current.Skipped)
	}

	suffixWidth := r.widths.measure(suffix)
	pathWidth := max(w-x-suffixWidth, 0)
	x = r.drawText(x, 0, pathWidth, r.widths.truncateLeft(sanitize(path), pathWidth), style)
	if suffix != "" {
		x = r.drawText(x, 0, w-x, suffix, style.Foreground(r.theme.DimFg))
	}
	r.fill(x, w, 0, style)
}

func (r *Renderer) drawSeparator(x int, m layoutMetrics) {
	style := tcell.StyleDefault.Foreground(r.theme.DimFg)
	for y := m.listTop; y < m.listBottom; y++ {
		r.screen.SetContent(x, y, '│', nil, style)
	}
}

func (r *Renderer) drawParent(v View, m layoutMetrics) {
	if v.Parent == nil {
		base := tcell.StyleDefault.Background(r.theme.ColumnBg).Foreground(r.theme.DimFg)
		r.drawRow(m.parentStart, m.listTop, m.parentWidth, " No parent directory", base)
		r.clearColumn(m.parentStart, m.parentWidth, m.listTop+1, m)
		return
	}
	r.drawListing(v.Parent, m.parentStart, m.parentWidth, m, false, v.ShowIcons)
}

// drawListing draws dir into a column and returns the row of its selected
// entry, or -1 when nothing is selected or visible.
func (r *Renderer) drawListing(dir *fs.Directory, startX, width int, m layoutMetrics, active, showIcons bool) int {
	base := tcell.StyleDefault.Background(r.theme.ColumnBg).Foreground(r.theme.ColumnFg)
	if width <= 0 {
		return -1
	}

	if dir == nil || dir.IsEmpty() {
		label := " empty"
		if dir == nil {
			label = " not loaded"
		}
		if m.listTop < m.listBottom {
			r.drawRow(startX, m.listTop, width, label, base.Foreground(r.theme.DimFg))
		}
		r.clearColumn(startX, width, m.listTop+1, m)
		return -1
	}

	selected, _ := dir.Selection()
	rows := m.listBottom - m.listTop
	start, end := scrollWindow(dir.Len(), selected, rows)

	selectedY := -1
	y := m.listTop
	for i := start; i < end; i++ {
		entry := dir.Entries[i]
		isSelected := i == selected
		style := r.entryStyle(base, entry, isSelected, active)
		r.drawRow(startX, y, width, r.entryLine(entry, width, showIcons), style)
		if isSelected {
			selectedY = y
		}
		y++
	}
	r.clearColumn(startX, width, y, m)
	return selectedY
}

func (r *Renderer) entryStyle(base tcell.Style, entry fs.Entry, selected, active bool) tcell.Style {
	switch {
	case selected && active:
		return tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	case selected:
		return tcell.StyleDefault.Background(r.theme.TrailBg).Foreground(r.theme.TrailFg)
	}

	style := base.Foreground(r.theme.FileFg)
	switch {
	case entry.Flagged:
		style = base.Foreground(r.theme.FlaggedFg)
	case entry.IsSymlink():
		style = base.Foreground(r.theme.SymlinkFg)
	case entry.IsDir():
		style = base.Foreground(r.theme.DirectoryFg)
	}
	if entry.IsHidden() && !entry.Flagged {
		style = style.Foreground(r.theme.HiddenFg)
	}
	return style
}

func (r *Renderer) entryLine(entry fs.Entry, width int, showIcons bool) string {
	marker := " "
	if entry.Flagged {
		marker = "*"
	}

	prefix := marker
	if !showIcons {
		kind := " "
		switch {
		case entry.IsSymlink():
			kind = "@"
		case entry.IsDir():
			kind = "/"
		}
		prefix += kind + " "
	}

	nameWidth := width - r.widths.measure(prefix)
	return prefix + r.widths.truncate(sanitize(entry.String()), nameWidth)
}

func (r *Renderer) clearColumn(startX, width, fromY int, m layoutMetrics) {
	style := tcell.StyleDefault.Background(r.theme.ColumnBg)
	for y := fromY; y < m.listBottom; y++ {
		r.fill(startX, startX+width, y, style)
	}
}

func (r *Renderer) drawPreview(dir *fs.Directory, m layoutMetrics) {
	style := tcell.StyleDefault.Background(r.theme.ColumnBg).Foreground(r.theme.PreviewFg)
	startX := m.previewStart + previewInnerPadding
	width := m.previewWidth - previewInnerPadding*2
	rows := m.listBottom - m.listTop

	var entry fs.Entry
	ok := false
	if dir != nil {
		entry, ok = dir.SelectedEntry()
	}
	if !ok || width <= 0 || rows <= 0 {
		r.clearColumn(m.previewStart, m.previewWidth, m.listTop, m)
		return
	}

	text, err := r.previewFor(entry, rows)
	y := m.listTop
	if err != nil {
		msg := err.Error()
		if errors.Is(err, fs.ErrInvalidEncoding) {
			msg = "binary or non-text content"
		}
		r.drawRow(startX, y, width, r.widths.truncate(sanitize(msg), width), style.Foreground(r.theme.ErrorFg))
		y++
	} else {
		for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
			if y >= m.listBottom {
				break
			}
			line = sanitize(r.widths.expandTabs(line, previewTabWidth))
			r.drawRow(startX, y, width, r.widths.truncate(line, width), style)
			y++
		}
	}
	r.clearColumn(m.previewStart, m.previewWidth, y, m)
}

func (r *Renderer) previewFor(entry fs.Entry, lines int) (string, error) {
	key := previewKey{
		path:     entry.Path,
		modified: entry.Metadata.Modified,
		size:     entry.Metadata.Size,
		lines:    lines,
	}
	if r.preview.ok && r.preview.key == key {
		return r.preview.text, r.preview.err
	}
	text, err := entry.Preview(lines)
	r.preview = previewMemo{key: key, text: text, err: err, ok: true}
	return text, err
}

// drawStatusLine shows the last command on the left and a summary of the
// selected entry on the right.
func (r *Renderer) drawStatusLine(v View, w, h int) {
	if h < 1 {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.StatusBg).Foreground(r.theme.StatusFg)

	info := ""
	if v.Current != nil {
		if entry, ok := v.Current.SelectedEntry(); ok {
			info = sanitize(formatEntryInfo(entry))
		}
	}
	infoWidth := min(r.widths.measure(info), w)

	status := v.Status
	statusStyle := style
	switch {
	case v.StatusIsError:
		statusStyle = style.Foreground(r.theme.ErrorFg)
	case status == "":
		status = buildFooterHelpText(v.ShowHidden)
		statusStyle = style.Foreground(r.theme.DimFg)
	}
	statusWidth := max(w-infoWidth-1, 0)
	x := r.drawText(0, y, statusWidth, r.widths.truncate(sanitize(status), statusWidth), statusStyle)
	r.fill(x, w-infoWidth, y, style)
	r.drawText(w-infoWidth, y, infoWidth, r.widths.truncate(info, infoWidth), style.Foreground(r.theme.DimFg))
}

func formatEntryInfo(entry fs.Entry) string {
	md := entry.Metadata

	kind := "-"
	switch {
	case entry.IsSymlink():
		kind = "l"
	case entry.IsDir():
		kind = "d"
	}
	perms := kind + md.Permissions.Perm().String()[1:]

	parts := []string{perms, fmt.Sprintf("%d:%d", md.Owner.UID, md.Owner.GID)}
	if md.FileType.IsDir() {
		if md.FileType.ChildCount >= 0 {
			parts = append(parts, fmt.Sprintf("%d items", md.FileType.ChildCount))
		}
	} else {
		parts = append(parts, formatSize(md.Size))
	}
	if !md.Modified.IsZero() {
		parts = append(parts, md.Modified.Format("2006-01-02 15:04"))
	}

	info := strings.Join(parts, " ")
	if md.LinkType.Symlink {
		info += " -> " + md.LinkType.Target
	}
	return info
}

func formatSize(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}
