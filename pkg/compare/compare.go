// Package compare computes facility and exchange membership differences between two networks.
package compare

import (
	"github.com/ccollicutt/pdbdiff/pkg/peeringdb"
)

// Comparator holds two fetched networks and their identifier sets.
// Results are sub-sequences of the owning network's lists in registry order.
type Comparator struct {
	first  *peeringdb.Network
	second *peeringdb.Network

	firstFacIDs    idSet
	secondFacIDs   idSet
	firstIXLanIDs  idSet
	secondIXLanIDs idSet
}

// New builds a Comparator. Neither network is modified.
func New(first, second *peeringdb.Network) *Comparator {
	return &Comparator{
		first:          first,
		second:         second,
		firstFacIDs:    keys(first.Facilities, facilityKey),
		secondFacIDs:   keys(second.Facilities, facilityKey),
		firstIXLanIDs:  keys(first.Exchanges, exchangeKey),
		secondIXLanIDs: keys(second.Exchanges, exchangeKey),
	}
}

// First returns the first network.
func (c *Comparator) First() *peeringdb.Network { return c.first }

// Second returns the second network.
func (c *Comparator) Second() *peeringdb.Network { return c.second }

// FirstUniqueFacilities returns the first network's facilities the second does not list.
func (c *Comparator) FirstUniqueFacilities() []peeringdb.Facility {
	return filter(c.first.Facilities, facilityKey, c.firstFacIDs.difference(c.secondFacIDs))
}

// SecondUniqueFacilities returns the second network's facilities the first does not list.
func (c *Comparator) SecondUniqueFacilities() []peeringdb.Facility {
	return filter(c.second.Facilities, facilityKey, c.secondFacIDs.difference(c.firstFacIDs))
}

// CommonFacilities returns the first network's records for facilities both networks share.
func (c *Comparator) CommonFacilities() []peeringdb.Facility {
	return filter(c.first.Facilities, facilityKey, c.firstFacIDs.intersection(c.secondFacIDs))
}

// FirstUniqueExchanges returns the first network's exchange LANs the second does not list.
func (c *Comparator) FirstUniqueExchanges() []peeringdb.Exchange {
	return filter(c.first.Exchanges, exchangeKey, c.firstIXLanIDs.difference(c.secondIXLanIDs))
}

// SecondUniqueExchanges returns the second network's exchange LANs the first does not list.
func (c *Comparator) SecondUniqueExchanges() []peeringdb.Exchange {
	return filter(c.second.Exchanges, exchangeKey, c.secondIXLanIDs.difference(c.firstIXLanIDs))
}

// CommonExchanges returns the first network's records for exchange LANs both networks share.
func (c *Comparator) CommonExchanges() []peeringdb.Exchange {
	return filter(c.first.Exchanges, exchangeKey, c.firstIXLanIDs.intersection(c.secondIXLanIDs))
}

// Summary counts entries in each view.
type Summary struct {
	FirstUniqueFacilities  int `json:"first_unique_facilities"`
	SecondUniqueFacilities int `json:"second_unique_facilities"`
	CommonFacilities       int `json:"common_facilities"`
	FirstUniqueExchanges   int `json:"first_unique_exchanges"`
	SecondUniqueExchanges  int `json:"second_unique_exchanges"`
	CommonExchanges        int `json:"common_exchanges"`
}

// Summary computes all six views and returns their sizes.
func (c *Comparator) Summary() Summary {
	return Summary{
		FirstUniqueFacilities:  len(c.FirstUniqueFacilities()),
		SecondUniqueFacilities: len(c.SecondUniqueFacilities()),
		CommonFacilities:       len(c.CommonFacilities()),
		FirstUniqueExchanges:   len(c.FirstUniqueExchanges()),
		SecondUniqueExchanges:  len(c.SecondUniqueExchanges()),
		CommonExchanges:        len(c.CommonExchanges()),
	}
}

func facilityKey(f peeringdb.Facility) int { return f.FacID }

func exchangeKey(x peeringdb.Exchange) int { return x.IXLanID }

// filter keeps entries whose key is in keep. Never returns nil.
func filter[T any](entries []T, key func(T) int, keep idSet) []T {
	out := make([]T, 0, len(keep))
	for _, e := range entries {
		if keep.has(key(e)) {
			out = append(out, e)
		}
	}
	return out
}
