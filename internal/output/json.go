package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/tourtip/internal/model"
)

// JSONFormatter formats a status report as indented JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes the status report as JSON.
func (f *JSONFormatter) Format(w io.Writer, status model.TourStatus) error {
	if !f.opts.ShowPopups {
		status = stripPopups(status)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(status)
}

// stripPopups drops the per-popup rows, keeping page summaries only.
func stripPopups(status model.TourStatus) model.TourStatus {
	pages := make([]model.PageStatus, len(status.Pages))
	for i, p := range status.Pages {
		p.Popups = nil
		pages[i] = p
	}
	status.Pages = pages
	return status
}
