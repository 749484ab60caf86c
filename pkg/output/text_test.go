package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ccollicutt/pdbdiff/pkg/peeringdb"
)

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTextFormatter() returned nil")
	}
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want %q", f.Name(), "text")
	}
}

func TestTextFormatter_Format_Exchanges(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := NewReport(createTestComparator(), Selection{Common: true, Exchanges: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "Common exchanges\n" +
		"Name\n" +
		strings.Repeat("-", 89) + "\n" +
		"DE-CIX Frankfurt\n" +
		"\n"
	if buf.String() != want {
		t.Errorf("Format() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestTextFormatter_Format_Facilities(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := NewReport(createTestComparator(), Selection{Facilities: true, Second: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "Unique facilities for AS15169" {
		t.Errorf("title = %q", lines[0])
	}

	header := "Name" + strings.Repeat(" ", 57) + "City" + strings.Repeat(" ", 17) + "Country"
	if lines[1] != header {
		t.Errorf("header = %q, want %q", lines[1], header)
	}
	if lines[2] != strings.Repeat("-", 89) {
		t.Errorf("rule = %q", lines[2])
	}

	row := "Equinix FR5 - Frankfurt, KleyerStrasse" + strings.Repeat(" ", 23) +
		"Frankfurt" + strings.Repeat(" ", 12) + "DE   "
	if lines[3] != row {
		t.Errorf("row = %q, want %q", lines[3], row)
	}
	if lines[4] != "" {
		t.Errorf("expected blank line after table, got %q", lines[4])
	}
}

func TestTextFormatter_Format_TruncatesName(t *testing.T) {
	long := strings.Repeat("é", 75)
	report := &Report{Sections: []Section{{
		Kind:       KindFacilities,
		Scope:      ScopeCommon,
		Title:      "Common facilities",
		Facilities: []peeringdb.Facility{{FacID: 1, Name: long, City: "Paris", Country: "FR"}},
	}}}

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	row := strings.Split(buf.String(), "\n")[3]
	if !strings.HasPrefix(row, strings.Repeat("é", 60)+" Paris") {
		t.Errorf("name not truncated to 60 characters: %q", row)
	}
}

func TestTextFormatter_Format_EmptySection(t *testing.T) {
	report := &Report{Sections: []Section{{Kind: KindExchanges, Scope: ScopeFirst, ASN: 1, Title: "Unique exchanges for AS1"}}}

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "Unique exchanges for AS1\nName\n" + strings.Repeat("-", 89) + "\n\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Quiet output has %d lines, want 4", len(lines))
	}
	if lines[0] != "Unique exchanges for AS13335: 1" {
		t.Errorf("lines[0] = %q", lines[0])
	}
}

func TestTextFormatter_Format_Color(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Color: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Error("expected ANSI escape in colored output")
	}
}

func TestTextFormatter_Format_UnknownKind(t *testing.T) {
	report := &Report{Sections: []Section{{Kind: "routes", Title: "x"}}}
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown section kind")
	}
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"", "text", "json"} {
		if _, err := NewFormatter(name, FormatOptions{}); err != nil {
			t.Errorf("NewFormatter(%q) error = %v", name, err)
		}
	}
	if _, err := NewFormatter("yaml", FormatOptions{}); err == nil {
		t.Error("NewFormatter(yaml) expected error")
	}
}
