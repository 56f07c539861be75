// Package output provides output formatters for tour status reports.
package output

import (
	"io"

	"github.com/jmylchreest/tourtip/internal/model"
)

// Formatter formats a tour status report for output.
type Formatter interface {
	// Format writes the formatted status to the writer.
	Format(w io.Writer, status model.TourStatus) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// ValidFormats returns the accepted format names.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	ShowPopups bool // Show per-popup rows, not just page summaries
}
