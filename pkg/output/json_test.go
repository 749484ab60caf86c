package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/ccollicutt/pdbdiff/pkg/compare"
	"github.com/ccollicutt/pdbdiff/pkg/peeringdb"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := createTestReport()

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.First.ASN != 13335 || parsed.Second.ASN != 15169 {
		t.Errorf("ASNs = %d, %d", parsed.First.ASN, parsed.Second.ASN)
	}
	if parsed.Mode != "unique" {
		t.Errorf("Mode = %q, want unique", parsed.Mode)
	}
	if len(parsed.Sections) != 4 {
		t.Fatalf("Sections = %d, want 4", len(parsed.Sections))
	}
	if got := parsed.Sections[3].Facilities[0].City; got != "Frankfurt" {
		t.Errorf("Sections[3] city = %q, want Frankfurt", got)
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed CountsOnly
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.First.ASN != 13335 || parsed.Mode != "unique" {
		t.Errorf("unexpected header: %+v", parsed)
	}
	want := compare.Summary{FirstUniqueExchanges: 1, CommonFacilities: 1}
	if parsed.Summary.FirstUniqueExchanges != want.FirstUniqueExchanges || parsed.Summary.CommonFacilities != want.CommonFacilities {
		t.Errorf("unexpected summary: %+v", parsed.Summary)
	}
	if bytes.Contains(buf.Bytes(), []byte(`"sections"`)) {
		t.Error("quiet output should not include sections")
	}
}

func TestJSONFormatter_NoHTMLEscaping(t *testing.T) {
	report := createTestReport()
	report.First.Name = "Foo & Bar <IX>"

	var buf bytes.Buffer
	if err := NewJSONFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Foo & Bar <IX>")) {
		t.Errorf("expected names to be written verbatim, got:\n%s", buf.String())
	}
}

func TestJSONFormatter_EmptySectionHasEntryList(t *testing.T) {
	report := &Report{
		Mode: "common",
		Sections: []Section{
			{Kind: KindExchanges, Scope: ScopeCommon, Title: "Common exchanges"},
			{Kind: KindFacilities, Scope: ScopeCommon, Title: "Common facilities", Facilities: []peeringdb.Facility{}},
		},
	}

	var buf bytes.Buffer
	if err := NewJSONFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed struct {
		Sections []map[string]json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(parsed.Sections) != 2 {
		t.Fatalf("Sections = %d, want 2", len(parsed.Sections))
	}

	if got := string(parsed.Sections[0]["exchanges"]); got != "[]" {
		t.Errorf("empty exchange section: exchanges = %q, want []", got)
	}
	if _, ok := parsed.Sections[0]["facilities"]; ok {
		t.Error("exchange section should not carry a facilities key")
	}
	if got := string(parsed.Sections[1]["facilities"]); got != "[]" {
		t.Errorf("empty facility section: facilities = %q, want []", got)
	}
	if _, ok := parsed.Sections[1]["exchanges"]; ok {
		t.Error("facility section should not carry an exchanges key")
	}
}
