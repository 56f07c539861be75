package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tourtip/internal/model"
)

func demoPage(ids ...string) model.Page {
	p := model.Page{Name: "demo"}
	for _, id := range ids {
		p.Popups = append(p.Popups, model.Popup{ID: id})
	}
	return p
}

func TestLayoutWidgets(t *testing.T) {
	t.Run("one widget per popup", func(t *testing.T) {
		widgets := layoutWidgets(demoPage("a", "b", "c"), 80, 24)
		require.Len(t, widgets, 3)
		assert.Equal(t, "a", widgets[0].id)
		assert.Equal(t, "c", widgets[2].id)
	})

	t.Run("widgets stay inside the content area", func(t *testing.T) {
		widgets := layoutWidgets(demoPage("a", "b", "c", "d", "e"), 80, 24)
		for _, w := range widgets {
			assert.GreaterOrEqual(t, w.rect.MinX(), 0.0)
			assert.LessOrEqual(t, w.rect.MaxX(), 80.0)
			assert.GreaterOrEqual(t, w.rect.MinY(), float64(headerRows))
			assert.LessOrEqual(t, w.rect.MaxY(), float64(24-footerRows)+1)
		}
	})

	t.Run("successive widgets land in different columns", func(t *testing.T) {
		widgets := layoutWidgets(demoPage("a", "b"), 80, 24)
		require.Len(t, widgets, 2)
		assert.Less(t, widgets[0].rect.X, widgets[1].rect.X)
	})

	t.Run("titles become labels, ids are the fallback", func(t *testing.T) {
		page := model.Page{Name: "demo", Popups: []model.Popup{
			{ID: "a", Title: "Attach files"},
			{ID: "b"},
		}}
		widgets := layoutWidgets(page, 80, 24)
		assert.Equal(t, "Attach files", widgets[0].label)
		assert.Equal(t, "b", widgets[1].label)
	})

	t.Run("degenerate sizes yield no widgets", func(t *testing.T) {
		assert.Empty(t, layoutWidgets(demoPage("a"), 0, 24))
		assert.Empty(t, layoutWidgets(demoPage("a"), 80, headerRows+footerRows))
		assert.Empty(t, layoutWidgets(model.Page{Name: "empty"}, 80, 24))
	})
}

func TestWidgetByID(t *testing.T) {
	widgets := layoutWidgets(demoPage("a", "b"), 80, 24)

	w, ok := widgetByID(widgets, "b")
	require.True(t, ok)
	assert.Equal(t, "b", w.id)

	_, ok = widgetByID(widgets, "missing")
	assert.False(t, ok)
}
