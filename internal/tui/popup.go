package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/tourtip/internal/model"
	"github.com/jmylchreest/tourtip/internal/placement"
	"github.com/jmylchreest/tourtip/internal/theme"
)

const (
	popupMinWidth = 16
	popupMaxWidth = 44
)

// renderPopup renders the popup box for a resolved placement: bordered
// per the anchored corner, sized within the placement's caps, with the
// indicator glyph leading or trailing the title per the quadrant side.
func renderPopup(pop model.Popup, pl placement.Placement, styles *theme.Styles) string {
	// Border eats 2 cells, padding another 2.
	maxInner := int(pl.MaxWidth) - 4
	innerWidth := popupMaxWidth
	if innerWidth > maxInner {
		innerWidth = maxInner
	}
	if innerWidth < popupMinWidth {
		innerWidth = popupMinWidth
	}

	title := pop.Title
	if title == "" {
		title = pop.ID
	}
	titleLine := styles.TitleStyle().Render(title)

	if glyph := theme.IndicatorGlyph(pop.Indicator, pl.Arrow); glyph != "" {
		glyph = styles.IndicatorStyle().Render(glyph)
		if pl.ArrowLeading {
			titleLine = glyph + " " + titleLine
		} else {
			titleLine = titleLine + " " + glyph
		}
	}

	var sb strings.Builder
	sb.WriteString(titleLine)
	if pop.Body != "" {
		sb.WriteString("\n")
		sb.WriteString(pop.Body)
	}

	style := styles.PopupStyle(pop, pl.PopupCorner).Width(innerWidth)
	if maxH := int(pl.MaxHeight); maxH > 2 {
		style = style.MaxHeight(maxH)
	}

	return style.Render(sb.String())
}

// popupOrigin maps a rendered popup block to its top-left screen cell,
// clamped to the screen so a cramped placement stays visible.
func popupOrigin(pl placement.Placement, block string, screenW, screenH int) (int, int) {
	size := placement.Size{
		Width:  float64(lipgloss.Width(block)),
		Height: float64(lipgloss.Height(block)),
	}
	origin := pl.Origin(size)

	x := int(origin.X)
	y := int(origin.Y)

	if x+int(size.Width) > screenW {
		x = screenW - int(size.Width)
	}
	if x < 0 {
		x = 0
	}
	if y+int(size.Height) > screenH {
		y = screenH - int(size.Height)
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
