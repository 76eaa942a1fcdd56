package render

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// widthCache memoizes runewidth lookups. ASCII widths are stored offset by
// one so the zero value means "not computed yet".
type widthCache struct {
	mu    sync.RWMutex
	ascii [128]int
	wide  sync.Map
}

func (c *widthCache) rune(ru rune) int {
	if ru >= 0 && ru < 128 {
		c.mu.RLock()
		width := c.ascii[ru]
		c.mu.RUnlock()
		if width != 0 {
			return width - 1
		}

		actual := max(runewidth.RuneWidth(ru), 0)
		c.mu.Lock()
		c.ascii[ru] = actual + 1
		c.mu.Unlock()
		return actual
	}

	if cached, ok := c.wide.Load(ru); ok {
		return cached.(int)
	}
	width := max(runewidth.RuneWidth(ru), 0)
	c.wide.Store(ru, width)
	return width
}

func (c *widthCache) measure(text string) int {
	width := 0
	for _, ru := range text {
		width += c.rune(ru)
	}
	return width
}

// truncate cuts text to maxWidth cells, ending with an ellipsis when it had
// to cut.
func (c *widthCache) truncate(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if c.measure(text) <= maxWidth {
		return text
	}

	ellipsisWidth := max(c.rune('…'), 1)
	if maxWidth <= ellipsisWidth {
		return ellipsis
	}

	available := maxWidth - ellipsisWidth
	var builder strings.Builder
	current := 0
	for _, ru := range text {
		w := c.rune(ru)
		if current+w > available {
			break
		}
		builder.WriteRune(ru)
		current += w
	}
	builder.WriteString(ellipsis)
	return builder.String()
}

// truncateLeft keeps the tail of text, which is the useful part of a path.
func (c *widthCache) truncateLeft(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if c.measure(text) <= maxWidth {
		return text
	}

	ellipsisWidth := max(c.rune('…'), 1)
	if maxWidth <= ellipsisWidth {
		return ellipsis
	}

	runes := []rune(text)
	available := maxWidth - ellipsisWidth
	start := len(runes)
	current := 0
	for start > 0 {
		w := c.rune(runes[start-1])
		if current+w > available {
			break
		}
		current += w
		start--
	}
	return ellipsis + string(runes[start:])
}

func (c *widthCache) expandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text) + tabWidth)
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += max(c.rune(ru), 1)
	}
	return builder.String()
}

// drawText writes text starting at (startX, y) without crossing
// startX+maxWidth and returns the column after the last cell written.
func (r *Renderer) drawText(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	limit := startX + maxWidth
	for _, ru := range text {
		w := r.widths.rune(ru)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		r.screen.SetContent(x, y, ru, nil, style)
		x += w
	}
	return x
}

func (r *Renderer) fill(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawRow draws text in a row of the given width and pads the rest.
func (r *Renderer) drawRow(startX, y, width int, text string, style tcell.Style) {
	endX := r.drawText(startX, y, width, text, style)
	r.fill(endX, startX+width, y, style)
}
