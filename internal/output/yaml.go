package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tourtip/internal/model"
)

// YAMLFormatter formats a status report as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes the status report as YAML.
func (f *YAMLFormatter) Format(w io.Writer, status model.TourStatus) error {
	if !f.opts.ShowPopups {
		status = stripPopups(status)
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(status)
}
