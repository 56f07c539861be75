package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestComposite(t *testing.T) {
	base := strings.Join([]string{
		"..........",
		"..........",
		"..........",
		"..........",
	}, "\n")

	t.Run("splices a block at the given cell", func(t *testing.T) {
		out := Composite(base, "AB\nCD", 3, 1)
		lines := strings.Split(out, "\n")
		assert.Equal(t, "..........", lines[0])
		assert.Equal(t, "...AB.....", lines[1])
		assert.Equal(t, "...CD.....", lines[2])
		assert.Equal(t, "..........", lines[3])
	})

	t.Run("keeps every line at its original width", func(t *testing.T) {
		out := Composite(base, "XY", 8, 0)
		for _, line := range strings.Split(out, "\n") {
			assert.Equal(t, 10, ansi.StringWidth(line))
		}
	})

	t.Run("drops overlay rows outside the base", func(t *testing.T) {
		out := Composite(base, "AA\nBB\nCC", 0, 3)
		lines := strings.Split(out, "\n")
		assert.Len(t, lines, 4)
		assert.Equal(t, "AA........", lines[3])
	})

	t.Run("negative coordinates clamp to the origin", func(t *testing.T) {
		out := Composite(base, "ZZ", -5, 0)
		lines := strings.Split(out, "\n")
		assert.Equal(t, "ZZ........", lines[0])
	})

	t.Run("pads when the base line is shorter than the offset", func(t *testing.T) {
		out := Composite("ab", "XY", 5, 0)
		assert.Equal(t, "ab   XY", out)
	})

	t.Run("preserves styled overlays", func(t *testing.T) {
		styled := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("hi")
		out := Composite(base, styled, 2, 2)
		lines := strings.Split(out, "\n")
		assert.Equal(t, 10, ansi.StringWidth(lines[2]))
		assert.Contains(t, lines[2], "hi")
	})

	t.Run("empty overlay is a no-op", func(t *testing.T) {
		assert.Equal(t, base, Composite(base, "", 2, 2))
	})
}
