package render

type layoutMetrics struct {
	parentStart  int
	parentWidth  int
	currentStart int
	currentWidth int
	previewStart int
	previewWidth int
	listTop      int
	listBottom   int // exclusive
}

const (
	minCurrentWidth       = 24
	minPreviewWidth       = 20
	minPreviewTermWidth   = 72
	previewWidthRatio     = 0.40
	previewWidthCap       = 100
	columnSeparatorWidth  = 1
	headerRows            = 1
	statusRows            = 1
	previewTabWidth       = 4
	previewInnerPadding   = 1
)

// parentWidthFor shrinks the parent column on narrow terminals and drops it
// below 52 columns.
func parentWidthFor(w int) int {
	switch {
	case w >= 150:
		return 28
	case w >= 120:
		return 24
	case w >= 100:
		return 20
	case w >= 80:
		return 16
	case w >= 65:
		return 12
	case w >= 52:
		return 10
	default:
		return 0
	}
}

func computeLayout(w, h int) layoutMetrics {
	w = max(w, 0)
	m := layoutMetrics{
		listTop:    headerRows,
		listBottom: max(h-statusRows, headerRows),
	}

	m.parentWidth = min(parentWidthFor(w), w)
	if m.parentWidth > 0 {
		m.currentStart = m.parentWidth + columnSeparatorWidth
	}

	rest := max(w-m.currentStart, 0)
	m.currentWidth = rest
	m.previewStart = w

	if w < minPreviewTermWidth || rest < minCurrentWidth+columnSeparatorWidth+minPreviewWidth {
		return m
	}

	preview := int(float64(rest)*previewWidthRatio + 0.5)
	preview = min(max(preview, minPreviewWidth), previewWidthCap)
	current := rest - columnSeparatorWidth - preview
	if current < minCurrentWidth {
		preview -= minCurrentWidth - current
		current = minCurrentWidth
	}
	if preview < minPreviewWidth {
		return m
	}

	m.currentWidth = current
	m.previewWidth = preview
	m.previewStart = m.currentStart + current + columnSeparatorWidth
	return m
}

// scrollWindow returns the [start, end) slice of a list of total rows that
// keeps selected roughly centred within rows visible lines.
func scrollWindow(total, selected, rows int) (int, int) {
	if rows <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= rows {
		return 0, total
	}
	selected = min(max(selected, 0), total-1)
	start := selected - rows/2
	start = min(max(start, 0), total-rows)
	return start, start + rows
}
