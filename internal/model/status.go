package model

import (
	"time"
)

// PopupStatus reports one popup's seen state.
type PopupStatus struct {
	ID     string     `json:"id" yaml:"id"`
	Title  string     `json:"title,omitempty" yaml:"title,omitempty"`
	Seen   bool       `json:"seen" yaml:"seen"`
	SeenAt *time.Time `json:"seen_at,omitempty" yaml:"seen_at,omitempty"`
}

// PageStatus reports progress through one page.
type PageStatus struct {
	Name   string        `json:"name" yaml:"name"`
	Total  int           `json:"total" yaml:"total"`
	Seen   int           `json:"seen" yaml:"seen"`
	Popups []PopupStatus `json:"popups,omitempty" yaml:"popups,omitempty"`
}

// Remaining returns how many popups on the page are still unseen.
func (p PageStatus) Remaining() int {
	return p.Total - p.Seen
}

// Complete reports whether every popup on the page has been seen.
func (p PageStatus) Complete() bool {
	return p.Seen >= p.Total
}

// TourStatus is the full progress report for a tour, in page order.
type TourStatus struct {
	GeneratedAt time.Time    `json:"generated_at" yaml:"generated_at"`
	Pages       []PageStatus `json:"pages" yaml:"pages"`
}

// Totals returns the popup and seen counts across all pages.
func (t TourStatus) Totals() (total, seen int) {
	for _, p := range t.Pages {
		total += p.Total
		seen += p.Seen
	}
	return total, seen
}

// BuildTourStatus assembles a status report from the tour's pages and
// the seen timestamps keyed by popup id. Ids seen but no longer present
// in any page are ignored.
func BuildTourStatus(pages []Page, seenAt map[string]time.Time) TourStatus {
	status := TourStatus{
		GeneratedAt: time.Now(),
		Pages:       make([]PageStatus, 0, len(pages)),
	}

	for _, page := range pages {
		ps := PageStatus{
			Name:   page.Name,
			Total:  len(page.Popups),
			Popups: make([]PopupStatus, 0, len(page.Popups)),
		}
		for _, pop := range page.Popups {
			st := PopupStatus{ID: pop.ID, Title: pop.Title}
			if at, ok := seenAt[pop.ID]; ok {
				st.Seen = true
				st.SeenAt = &at
				ps.Seen++
			}
			ps.Popups = append(ps.Popups, st)
		}
		status.Pages = append(status.Pages, ps)
	}
	return status
}
