// Package model defines the popup and page payloads shared by the
// engine, the configuration loader, and the CLI.
package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyPopupID indicates a popup without an id.
	ErrEmptyPopupID = errors.New("popup id is empty")

	// ErrInvalidIndicator indicates an unrecognized indicator value.
	ErrInvalidIndicator = errors.New("invalid indicator")

	// ErrNegativeWigglePeriod indicates a wiggle period below zero.
	ErrNegativeWigglePeriod = errors.New("wiggle period is negative")

	// ErrEmptyPageName indicates a page without a name.
	ErrEmptyPageName = errors.New("page name is empty")

	// ErrPageNoPopups indicates a page without popups.
	ErrPageNoPopups = errors.New("page has no popups")

	// ErrDuplicatePopup indicates a popup id repeated within a page.
	ErrDuplicatePopup = errors.New("duplicate popup id")
)

// Indicator selects the pointer glyph rendered alongside popup content:
// a directional arrow aimed at the target, a checkmark, or nothing.
type Indicator string

const (
	IndicatorNone  Indicator = "none"
	IndicatorArrow Indicator = "arrow"
	IndicatorCheck Indicator = "check"
)

// ValidIndicators returns the accepted indicator values.
func ValidIndicators() []Indicator {
	return []Indicator{IndicatorNone, IndicatorArrow, IndicatorCheck}
}

// IsValid reports whether the indicator is an accepted value.
func (i Indicator) IsValid() bool {
	switch i {
	case IndicatorNone, IndicatorArrow, IndicatorCheck:
		return true
	default:
		return false
	}
}

// Popup is one spotlight popup: its identity, content, and per-instance
// presentation overrides.
type Popup struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`

	// Background and Foreground override the theme colors when set. Any
	// color string the renderer accepts is allowed ("#5e81ac", "212").
	Background string `json:"background,omitempty"`
	Foreground string `json:"foreground,omitempty"`

	// Wiggle enables the periodic attention nudge while the popup is
	// visible. A zero period falls back to the host default.
	Wiggle       bool          `json:"wiggle,omitempty"`
	WigglePeriod time.Duration `json:"wiggle_period,omitempty"`

	Indicator Indicator `json:"indicator,omitempty"`
}

// Validate checks the popup for structural problems.
func (p *Popup) Validate() error {
	if p.ID == "" {
		return ErrEmptyPopupID
	}
	if p.Indicator != "" && !p.Indicator.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidIndicator, p.Indicator)
	}
	if p.WigglePeriod < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeWigglePeriod, p.WigglePeriod)
	}
	return nil
}

// Clone returns a copy of the popup.
func (p *Popup) Clone() Popup {
	return *p
}

// Page is a named, ordered group of popups shown in sequence; the slice
// order is the display order.
type Page struct {
	Name   string  `json:"name"`
	Popups []Popup `json:"popups"`
}

// Validate checks the page and every popup on it.
func (p *Page) Validate() error {
	if p.Name == "" {
		return ErrEmptyPageName
	}
	if len(p.Popups) == 0 {
		return fmt.Errorf("%w: %q", ErrPageNoPopups, p.Name)
	}

	ids := make(map[string]struct{}, len(p.Popups))
	for i := range p.Popups {
		if err := p.Popups[i].Validate(); err != nil {
			return fmt.Errorf("page %q popup %d: %w", p.Name, i, err)
		}
		id := p.Popups[i].ID
		if _, ok := ids[id]; ok {
			return fmt.Errorf("%w: %q on page %q", ErrDuplicatePopup, id, p.Name)
		}
		ids[id] = struct{}{}
	}
	return nil
}

// IDs returns the popup ids in display order.
func (p *Page) IDs() []string {
	ids := make([]string, len(p.Popups))
	for i := range p.Popups {
		ids[i] = p.Popups[i].ID
	}
	return ids
}

// Popup returns the popup with the given id, or nil when the page does
// not contain it.
func (p *Page) Popup(id string) *Popup {
	for i := range p.Popups {
		if p.Popups[i].ID == id {
			return &p.Popups[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() Page {
	out := Page{Name: p.Name, Popups: make([]Popup, len(p.Popups))}
	copy(out.Popups, p.Popups)
	return out
}
