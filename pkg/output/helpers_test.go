package output

import (
	"github.com/ccollicutt/pdbdiff/pkg/compare"
	"github.com/ccollicutt/pdbdiff/pkg/peeringdb"
)

func createTestComparator() *compare.Comparator {
	first := &peeringdb.Network{
		ASN:  13335,
		Name: "Cloudflare",
		Facilities: []peeringdb.Facility{
			{FacID: 1, Name: "Equinix DC1-DC15 - Ashburn", City: "Ashburn", Country: "US"},
			{FacID: 18, Name: "Telehouse - London (Docklands North)", City: "London", Country: "GB"},
		},
		Exchanges: []peeringdb.Exchange{
			{IXLanID: 26, Name: "AMS-IX"},
			{IXLanID: 31, Name: "DE-CIX Frankfurt"},
		},
	}
	second := &peeringdb.Network{
		ASN:  15169,
		Name: "Google LLC",
		Facilities: []peeringdb.Facility{
			{FacID: 18, Name: "Telehouse London", City: "London", Country: "GB"},
			{FacID: 35, Name: "Equinix FR5 - Frankfurt, KleyerStrasse", City: "Frankfurt", Country: "DE"},
		},
		Exchanges: []peeringdb.Exchange{
			{IXLanID: 31, Name: "DE-CIX Frankfurt"},
			{IXLanID: 18, Name: "LINX LON1"},
		},
	}
	return compare.New(first, second)
}

func createTestReport() *Report {
	return NewReport(createTestComparator(), Selection{})
}
