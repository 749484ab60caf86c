package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
)

const (
	ruleWidth       = 89
	facNameWidth    = 60
	facCityWidth    = 20
	facCountryWidth = 5
)

// TextFormatter formats reports as fixed-width text tables.
type TextFormatter struct {
	opts FormatOptions
	au   aurora.Aurora
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts, au: aurora.NewAurora(opts.Color)}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	for _, s := range report.Sections {
		if err := f.formatSection(&s, w); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	for _, s := range report.Sections {
		if _, err := fmt.Fprintf(w, "%s: %d\n", s.Title, s.Count); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatSection(s *Section, w io.Writer) error {
	var b strings.Builder

	b.WriteString(f.au.Bold(s.Title).String())
	b.WriteByte('\n')

	switch s.Kind {
	case KindExchanges:
		b.WriteString("Name\n")
		b.WriteString(strings.Repeat("-", ruleWidth))
		b.WriteByte('\n')
		for _, x := range s.Exchanges {
			b.WriteString(x.Name)
			b.WriteByte('\n')
		}
	case KindFacilities:
		b.WriteString(facilityRow("Name", "City", "Country"))
		b.WriteString(strings.Repeat("-", ruleWidth))
		b.WriteByte('\n')
		for _, fac := range s.Facilities {
			b.WriteString(facilityRow(truncate(fac.Name, facNameWidth), fac.City, fac.Country))
		}
	default:
		return fmt.Errorf("unknown section kind %q", s.Kind)
	}

	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func facilityRow(name, city, country string) string {
	return fmt.Sprintf("%-*s %-*s %-*s\n", facNameWidth, name, facCityWidth, city, facCountryWidth, country)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
