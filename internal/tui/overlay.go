package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Composite splices overlay into base at cell position (x, y). Both are
// multi-line strings; styling escape sequences in either are preserved.
// Overlay lines falling outside the base are dropped rather than grown,
// so a popup clipped by the terminal edge never distorts the view.
func Composite(base, overlay string, x, y int) string {
	if overlay == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(overlay, "\n")

	for i, ol := range overLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		baseLines[row] = spliceLine(baseLines[row], ol, x)
	}
	return strings.Join(baseLines, "\n")
}

// spliceLine overwrites base with overlay starting at cell x.
func spliceLine(base, overlay string, x int) string {
	if x < 0 {
		x = 0
	}
	overlayWidth := ansi.StringWidth(overlay)
	if overlayWidth == 0 {
		return base
	}

	left := ansi.Truncate(base, x, "")
	leftWidth := ansi.StringWidth(left)

	var pad string
	if leftWidth < x {
		pad = strings.Repeat(" ", x-leftWidth)
	}

	right := ansi.TruncateLeft(base, x+overlayWidth, "")

	return left + pad + overlay + right
}
