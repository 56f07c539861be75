package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tourtip/internal/model"
	"github.com/jmylchreest/tourtip/internal/placement"
	"github.com/jmylchreest/tourtip/internal/theme"
)

func testPlacement() placement.Placement {
	target := placement.NewRect(10, 4, 20, 3)
	viewport := placement.NewRect(0, 0, 120, 60)
	return placement.Resolve(target, viewport, placement.Insets{})
}

func TestRenderPopup(t *testing.T) {
	styles := theme.NewStyles(theme.Default())

	t.Run("contains title and body", func(t *testing.T) {
		pop := model.Popup{ID: "x", Title: "Ship it", Body: "Ctrl+Enter sends immediately."}
		block := renderPopup(pop, testPlacement(), styles)
		assert.Contains(t, block, "Ship it")
		assert.Contains(t, block, "Ctrl+Enter")
	})

	t.Run("falls back to the id when untitled", func(t *testing.T) {
		block := renderPopup(model.Popup{ID: "compose.send"}, testPlacement(), styles)
		assert.Contains(t, block, "compose.send")
	})

	t.Run("respects the width cap", func(t *testing.T) {
		pop := model.Popup{ID: "x", Title: "T", Body: strings.Repeat("word ", 50)}
		pl := testPlacement()
		pl.MaxWidth = 30
		block := renderPopup(pop, pl, styles)
		assert.LessOrEqual(t, lipgloss.Width(block), 30)
	})

	t.Run("indicator trails on the left side", func(t *testing.T) {
		pop := model.Popup{ID: "x", Title: "Title", Indicator: model.IndicatorArrow}
		pl := testPlacement()
		pl.Arrow = placement.ArrowDownRight
		pl.ArrowLeading = false
		block := renderPopup(pop, pl, styles)

		firstLine := strings.Split(block, "\n")[1] // line 0 is the border
		require.Contains(t, firstLine, "↘")
		assert.Less(t, strings.Index(firstLine, "Title"), strings.Index(firstLine, "↘"))
	})

	t.Run("indicator leads on the right side", func(t *testing.T) {
		pop := model.Popup{ID: "x", Title: "Title", Indicator: model.IndicatorArrow}
		pl := testPlacement()
		pl.Arrow = placement.ArrowDownLeft
		pl.ArrowLeading = true
		block := renderPopup(pop, pl, styles)

		firstLine := strings.Split(block, "\n")[1]
		require.Contains(t, firstLine, "↙")
		assert.Less(t, strings.Index(firstLine, "↙"), strings.Index(firstLine, "Title"))
	})

	t.Run("check indicator renders regardless of direction", func(t *testing.T) {
		pop := model.Popup{ID: "x", Title: "Done", Indicator: model.IndicatorCheck}
		block := renderPopup(pop, testPlacement(), styles)
		assert.Contains(t, block, "✓")
	})
}

func TestPopupOrigin(t *testing.T) {
	t.Run("anchors the popup corner on the target anchor", func(t *testing.T) {
		pl := placement.Placement{
			TargetAnchor: placement.Point{X: 40, Y: 20},
			PopupCorner:  placement.CornerBottomRight,
		}
		block := strings.Repeat(strings.Repeat("x", 10)+"\n", 4) + strings.Repeat("x", 10)
		x, y := popupOrigin(pl, block, 120, 60)
		assert.Equal(t, 30, x)
		assert.Equal(t, 15, y)
	})

	t.Run("clamps to the screen", func(t *testing.T) {
		pl := placement.Placement{
			TargetAnchor: placement.Point{X: 2, Y: 1},
			PopupCorner:  placement.CornerBottomRight,
		}
		block := "xxxx\nxxxx"
		x, y := popupOrigin(pl, block, 10, 5)
		assert.GreaterOrEqual(t, x, 0)
		assert.GreaterOrEqual(t, y, 0)
	})
}
