package output

import (
	"context"
	"encoding/json"
	"io"

	"github.com/ccollicutt/pdbdiff/pkg/compare"
)

// JSONFormatter writes the report as one indented JSON document.
type JSONFormatter struct {
	opts FormatOptions
}

// CountsOnly is the quiet-mode JSON document: who was compared and how many
// entries each view holds, without the entries themselves.
type CountsOnly struct {
	First   NetworkInfo     `json:"first"`
	Second  NetworkInfo     `json:"second"`
	Mode    string          `json:"mode"`
	Summary compare.Summary `json:"summary"`
}

// NewJSONFormatter creates a JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format encodes report to w. Quiet mode writes a CountsOnly document instead.
func (f *JSONFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if f.opts.Quiet {
		return enc.Encode(CountsOnly{
			First:   report.First,
			Second:  report.Second,
			Mode:    report.Mode,
			Summary: report.Summary,
		})
	}
	return enc.Encode(report)
}
