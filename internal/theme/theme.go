// Package theme builds the lipgloss styles for popup rendering. The
// border of a popup is rounded on three corners and square on the one
// pointing at its target, so the box reads as a speech bubble.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/tourtip/internal/config"
	"github.com/jmylchreest/tourtip/internal/model"
	"github.com/jmylchreest/tourtip/internal/placement"
)

// Theme holds the palette shared by every popup. Individual popups may
// override Background and Foreground per instance.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
	Title      lipgloss.Color
	Highlight  lipgloss.Color
}

// Default returns the built-in palette.
func Default() Theme {
	return FromConfig(config.ThemeConfig{})
}

// FromConfig builds a theme from configured colors. Empty values fall
// back to the defaults.
func FromConfig(tc config.ThemeConfig) Theme {
	pick := func(v, fallback string) lipgloss.Color {
		if v == "" {
			v = fallback
		}
		return lipgloss.Color(v)
	}
	return Theme{
		Background: pick(tc.Background, config.DefaultBackground),
		Foreground: pick(tc.Foreground, config.DefaultForeground),
		Border:     pick(tc.Border, config.DefaultBorder),
		Accent:     pick(tc.Accent, config.DefaultAccent),
		Title:      pick(tc.Title, config.DefaultTitle),
		Highlight:  pick(tc.Highlight, config.DefaultHighlight),
	}
}

// Styles derives render styles from a theme.
type Styles struct {
	theme Theme
}

// NewStyles returns a style factory for the theme.
func NewStyles(t Theme) *Styles {
	return &Styles{theme: t}
}

// Theme returns the underlying palette.
func (s *Styles) Theme() Theme {
	return s.theme
}

// PopupStyle returns the box style for one popup instance. squareCorner
// is the corner anchored to the target; the other three stay rounded.
// Per-popup color overrides win over the theme palette.
func (s *Styles) PopupStyle(pop model.Popup, squareCorner placement.Corner) lipgloss.Style {
	bg := s.theme.Background
	if pop.Background != "" {
		bg = lipgloss.Color(pop.Background)
	}
	fg := s.theme.Foreground
	if pop.Foreground != "" {
		fg = lipgloss.Color(pop.Foreground)
	}

	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Border(popupBorder(squareCorner)).
		BorderForeground(s.theme.Border).
		Padding(0, 1)
}

// TitleStyle returns the style for a popup's title line.
func (s *Styles) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(s.theme.Title)
}

// IndicatorStyle returns the style for the arrow/check glyph.
func (s *Styles) IndicatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(s.theme.Accent)
}

// TargetStyle returns the style for a widget whose popup is visible.
func (s *Styles) TargetStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(s.theme.Highlight).
		Foreground(s.theme.Highlight).
		Bold(true)
}

// WidgetStyle returns the style for an idle widget box.
func (s *Styles) WidgetStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("8")).
		Foreground(lipgloss.Color("7"))
}

// HeaderStyle returns the style for the screen header line.
func (s *Styles) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(s.theme.Title)
}

// FooterStyle returns the style for the status/help footer.
func (s *Styles) FooterStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))
}

// popupBorder returns a rounded border with one corner squared off.
func popupBorder(square placement.Corner) lipgloss.Border {
	b := lipgloss.RoundedBorder()
	switch square {
	case placement.CornerTopLeft:
		b.TopLeft = "┌"
	case placement.CornerTopRight:
		b.TopRight = "┐"
	case placement.CornerBottomLeft:
		b.BottomLeft = "└"
	case placement.CornerBottomRight:
		b.BottomRight = "┘"
	}
	return b
}

// IndicatorGlyph returns the pointer glyph for a popup, aimed per the
// resolved arrow direction. Empty when the popup shows no indicator.
func IndicatorGlyph(indicator model.Indicator, arrow placement.ArrowDirection) string {
	switch indicator {
	case model.IndicatorCheck:
		return "✓"
	case model.IndicatorArrow:
		switch arrow {
		case placement.ArrowUpLeft:
			return "↖"
		case placement.ArrowUpRight:
			return "↗"
		case placement.ArrowDownLeft:
			return "↙"
		default:
			return "↘"
		}
	default:
		return ""
	}
}
