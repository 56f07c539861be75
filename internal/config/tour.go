package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/tourtip/internal/model"
)

var (
	// ErrNoPages indicates a tour file without any pages.
	ErrNoPages = errors.New("tour has no pages")

	// ErrPopupIDReused indicates a popup id appearing on two pages. Seen
	// state is tracked per id across the whole tour, so a reused id
	// would be skipped everywhere after its first dismissal.
	ErrPopupIDReused = errors.New("popup id reused across pages")
)

// TourFile is the on-disk tour definition.
type TourFile struct {
	Pages []TourPage `toml:"page"`
}

// TourPage is one page entry in a tour file.
type TourPage struct {
	Name   string      `toml:"name"`
	Popups []TourPopup `toml:"popup"`
}

// TourPopup is one popup entry in a tour file.
type TourPopup struct {
	ID           string   `toml:"id"`
	Title        string   `toml:"title"`
	Body         string   `toml:"body"`
	Background   string   `toml:"background"`
	Foreground   string   `toml:"foreground"`
	Wiggle       bool     `toml:"wiggle"`
	WigglePeriod Duration `toml:"wiggle_period"`
	Indicator    string   `toml:"indicator"`
}

// LoadTour reads and parses a tour definition file. If path is empty the
// default tour path is used; a missing file falls back to the built-in
// tour.
func LoadTour(path string) ([]model.Page, error) {
	if path == "" {
		path = TourPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTour()
		}
		return nil, fmt.Errorf("failed to read tour file: %w", err)
	}

	pages, err := ParseTour(data)
	if err != nil {
		return nil, fmt.Errorf("tour file %s: %w", path, err)
	}
	return pages, nil
}

// ParseTour parses tour TOML into validated pages.
func ParseTour(data []byte) ([]model.Page, error) {
	var file TourFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tour file: %w", err)
	}
	return file.Build()
}

// Build converts the file representation into validated model pages.
// Popups without an indicator get the arrow; popups with wiggle enabled
// but no period inherit the default wiggle period.
func (f *TourFile) Build() ([]model.Page, error) {
	if len(f.Pages) == 0 {
		return nil, ErrNoPages
	}

	pages := make([]model.Page, 0, len(f.Pages))
	owner := make(map[string]string) // popup id -> page name
	for _, tp := range f.Pages {
		page := model.Page{
			Name:   tp.Name,
			Popups: make([]model.Popup, 0, len(tp.Popups)),
		}
		for _, pop := range tp.Popups {
			indicator := model.Indicator(pop.Indicator)
			if pop.Indicator == "" {
				indicator = model.IndicatorArrow
			}
			period := pop.WigglePeriod.Duration()
			if pop.Wiggle && period == 0 {
				period = DefaultWigglePeriod.Duration()
			}
			page.Popups = append(page.Popups, model.Popup{
				ID:           pop.ID,
				Title:        pop.Title,
				Body:         pop.Body,
				Background:   pop.Background,
				Foreground:   pop.Foreground,
				Wiggle:       pop.Wiggle,
				WigglePeriod: period,
				Indicator:    indicator,
			})
		}

		if err := page.Validate(); err != nil {
			return nil, err
		}
		for _, id := range page.IDs() {
			if other, ok := owner[id]; ok {
				return nil, fmt.Errorf("%w: %q on pages %q and %q", ErrPopupIDReused, id, other, page.Name)
			}
			owner[id] = page.Name
		}
		pages = append(pages, page)
	}
	return pages, nil
}
