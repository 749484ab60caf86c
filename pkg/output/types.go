// Package output provides report building and formatting for comparison results.
package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ccollicutt/pdbdiff/pkg/compare"
	"github.com/ccollicutt/pdbdiff/pkg/peeringdb"
)

// Kind is the membership kind a section lists.
type Kind string

const (
	// KindExchanges sections list exchange-LAN memberships.
	KindExchanges Kind = "exchanges"
	// KindFacilities sections list facility memberships.
	KindFacilities Kind = "facilities"
)

// Scope says whose entries a section lists.
type Scope string

const (
	// ScopeCommon lists entries both networks share.
	ScopeCommon Scope = "common"
	// ScopeFirst lists entries only the first network has.
	ScopeFirst Scope = "first"
	// ScopeSecond lists entries only the second network has.
	ScopeSecond Scope = "second"
)

// Selection picks which views are reported. Zero value shows every unique view.
type Selection struct {
	// Common shows shared entries instead of unique ones.
	Common bool

	// Exchanges and Facilities restrict the kinds shown. Neither set means both.
	Exchanges  bool
	Facilities bool

	// First and Second restrict unique views to one side. Neither set means both.
	// Ignored when Common is set.
	First  bool
	Second bool
}

func (s Selection) showExchanges() bool  { return s.Exchanges || !s.Facilities }
func (s Selection) showFacilities() bool { return s.Facilities || !s.Exchanges }
func (s Selection) showFirst() bool      { return s.First || !s.Second }
func (s Selection) showSecond() bool     { return s.Second || !s.First }

// Mode returns "common" or "unique".
func (s Selection) Mode() string {
	if s.Common {
		return "common"
	}
	return "unique"
}

// Report is the complete comparison output.
type Report struct {
	First    NetworkInfo     `json:"first"`
	Second   NetworkInfo     `json:"second"`
	Mode     string          `json:"mode"`
	Sections []Section       `json:"sections"`
	Summary  compare.Summary `json:"summary"`
	Metadata Metadata        `json:"metadata"`
}

// NetworkInfo identifies one compared network.
type NetworkInfo struct {
	ASN  int    `json:"asn"`
	Name string `json:"name,omitempty"`
}

// Section is one printed table.
type Section struct {
	Kind  Kind   `json:"kind"`
	Scope Scope  `json:"scope"`
	ASN   int    `json:"asn,omitempty"`
	Title string `json:"title"`
	Count int    `json:"count"`

	Facilities []peeringdb.Facility `json:"facilities"`
	Exchanges  []peeringdb.Exchange `json:"exchanges"`
}

// MarshalJSON writes only the entry list matching the section kind, as an
// array even when the section is empty.
func (s Section) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind       Kind                  `json:"kind"`
		Scope      Scope                 `json:"scope"`
		ASN        int                   `json:"asn,omitempty"`
		Title      string                `json:"title"`
		Count      int                   `json:"count"`
		Facilities *[]peeringdb.Facility `json:"facilities,omitempty"`
		Exchanges  *[]peeringdb.Exchange `json:"exchanges,omitempty"`
	}{Kind: s.Kind, Scope: s.Scope, ASN: s.ASN, Title: s.Title, Count: s.Count}

	switch s.Kind {
	case KindFacilities:
		fs := s.Facilities
		if fs == nil {
			fs = []peeringdb.Facility{}
		}
		out.Facilities = &fs
	case KindExchanges:
		xs := s.Exchanges
		if xs == nil {
			xs = []peeringdb.Exchange{}
		}
		out.Exchanges = &xs
	}
	return json.Marshal(out)
}

// Metadata provides context about the run.
type Metadata struct {
	Registry    string        `json:"registry,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`
}

// NewReport builds the sections chosen by sel, exchanges before facilities
// and first network before second.
func NewReport(c *compare.Comparator, sel Selection) *Report {
	first, second := c.First(), c.Second()
	r := &Report{
		First:    NetworkInfo{ASN: first.ASN, Name: first.Name},
		Second:   NetworkInfo{ASN: second.ASN, Name: second.Name},
		Mode:     sel.Mode(),
		Sections: []Section{},
		Summary:  c.Summary(),
		Metadata: Metadata{GeneratedAt: time.Now()},
	}

	if sel.Common {
		if sel.showExchanges() {
			r.Sections = append(r.Sections, exchangeSection(ScopeCommon, 0, c.CommonExchanges()))
		}
		if sel.showFacilities() {
			r.Sections = append(r.Sections, facilitySection(ScopeCommon, 0, c.CommonFacilities()))
		}
		return r
	}

	if sel.showExchanges() {
		if sel.showFirst() {
			r.Sections = append(r.Sections, exchangeSection(ScopeFirst, first.ASN, c.FirstUniqueExchanges()))
		}
		if sel.showSecond() {
			r.Sections = append(r.Sections, exchangeSection(ScopeSecond, second.ASN, c.SecondUniqueExchanges()))
		}
	}
	if sel.showFacilities() {
		if sel.showFirst() {
			r.Sections = append(r.Sections, facilitySection(ScopeFirst, first.ASN, c.FirstUniqueFacilities()))
		}
		if sel.showSecond() {
			r.Sections = append(r.Sections, facilitySection(ScopeSecond, second.ASN, c.SecondUniqueFacilities()))
		}
	}
	return r
}

func exchangeSection(scope Scope, asn int, xs []peeringdb.Exchange) Section {
	return Section{
		Kind:      KindExchanges,
		Scope:     scope,
		ASN:       asn,
		Title:     sectionTitle(KindExchanges, scope, asn),
		Count:     len(xs),
		Exchanges: xs,
	}
}

func facilitySection(scope Scope, asn int, fs []peeringdb.Facility) Section {
	return Section{
		Kind:       KindFacilities,
		Scope:      scope,
		ASN:        asn,
		Title:      sectionTitle(KindFacilities, scope, asn),
		Count:      len(fs),
		Facilities: fs,
	}
}

func sectionTitle(kind Kind, scope Scope, asn int) string {
	if scope == ScopeCommon {
		return fmt.Sprintf("Common %s", kind)
	}
	return fmt.Sprintf("Unique %s for AS%d", kind, asn)
}

// HasEntries returns true if any reported section lists at least one entry.
func (r *Report) HasEntries() bool {
	for _, s := range r.Sections {
		if s.Count > 0 {
			return true
		}
	}
	return false
}
