package tui

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/tourtip/internal/model"
	"github.com/jmylchreest/tourtip/internal/placement"
)

// Reserved chrome rows. Placement insets keep popups off them.
const (
	headerRows = 2
	footerRows = 2
)

// widgetBox is one fake application widget: the on-screen element a
// popup anchors to.
type widgetBox struct {
	id    string
	label string
	rect  placement.Rect
}

// layoutWidgets positions one widget per popup on the page inside the
// terminal's content area. Widgets flow left-to-right, top-to-bottom in
// a two-column grid so successive popups land in different quadrants.
// Recomputed on every resize; the result is the post-layout geometry
// placement resolves against.
func layoutWidgets(page model.Page, width, height int) []widgetBox {
	n := len(page.Popups)
	if n == 0 || width <= 0 || height <= headerRows+footerRows {
		return nil
	}

	const cols = 2
	rows := (n + cols - 1) / cols

	contentTop := headerRows
	contentHeight := height - headerRows - footerRows

	boxW := width/3 - 2
	if boxW > 28 {
		boxW = 28
	}
	if boxW < 8 {
		boxW = 8
	}
	const boxH = 3

	widgets := make([]widgetBox, 0, n)
	for i, pop := range page.Popups {
		col := i % cols
		row := i / cols

		// Cell centers, widgets centered within their cell.
		cellW := width / cols
		cellH := contentHeight / rows
		x := col*cellW + (cellW-boxW)/2
		y := contentTop + row*cellH + (cellH-boxH)/2
		if y < contentTop {
			y = contentTop
		}

		label := pop.Title
		if label == "" {
			label = pop.ID
		}
		label = ansi.Truncate(label, boxW-2, "…")

		widgets = append(widgets, widgetBox{
			id:    pop.ID,
			label: label,
			rect:  placement.NewRect(float64(x), float64(y), float64(boxW), float64(boxH)),
		})
	}
	return widgets
}

// widgetByID returns the widget anchoring the given popup id.
func widgetByID(widgets []widgetBox, id string) (widgetBox, bool) {
	for _, w := range widgets {
		if w.id == id {
			return w, true
		}
	}
	return widgetBox{}, false
}
