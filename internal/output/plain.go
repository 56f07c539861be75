package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/tourtip/internal/model"
)

// PlainFormatter formats a status report as aligned plain text.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// Format writes the status report as plain text.
func (f *PlainFormatter) Format(w io.Writer, status model.TourStatus) error {
	var sb strings.Builder

	for _, page := range status.Pages {
		sb.WriteString(fmt.Sprintf("%s  %d/%d seen", page.Name, page.Seen, page.Total))
		if page.Complete() {
			sb.WriteString("  (complete)")
		}
		sb.WriteString("\n")

		if !f.opts.ShowPopups {
			continue
		}

		for _, pop := range page.Popups {
			mark := " "
			when := ""
			if pop.Seen {
				mark = "x"
				if pop.SeenAt != nil {
					when = "  " + humanize.Time(*pop.SeenAt)
				}
			}
			label := pop.ID
			if pop.Title != "" {
				label = fmt.Sprintf("%s  %q", pop.ID, pop.Title)
			}
			sb.WriteString(fmt.Sprintf("    [%s] %s%s\n", mark, label, when))
		}
	}

	total, seen := status.Totals()
	sb.WriteString(fmt.Sprintf("total  %d/%d seen\n", seen, total))

	_, err := w.Write([]byte(sb.String()))
	return err
}
