package peeringdb

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Wire shapes. Required fields are pointers so absence can be told apart from zero values.
type netResponse struct {
	Data []rawNetwork `json:"data"`
}

type rawNetwork struct {
	ID          int            `json:"id"`
	ASN         int            `json:"asn"`
	Name        string         `json:"name"`
	NetfacSet   *[]rawFacility `json:"netfac_set"`
	NetixlanSet *[]rawExchange `json:"netixlan_set"`
}

type rawFacility struct {
	FacID   *int    `json:"fac_id"`
	Name    *string `json:"name"`
	City    *string `json:"city"`
	Country *string `json:"country"`
}

type rawExchange struct {
	IXLanID *int    `json:"ixlan_id"`
	IXID    int     `json:"ix_id"`
	Name    *string `json:"name"`
	Speed   int     `json:"speed"`
	IPAddr4 *string `json:"ipaddr4"`
	IPAddr6 *string `json:"ipaddr6"`
}

// decodeNetwork parses a "net" response body and returns its first record.
func decodeNetwork(body []byte) (*Network, error) {
	var resp netResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal registry response as JSON")
	}
	if len(resp.Data) == 0 {
		return nil, ErrNotFound
	}
	return resp.Data[0].toNetwork()
}

func (r *rawNetwork) toNetwork() (*Network, error) {
	if r.NetfacSet == nil {
		return nil, &MissingFieldError{Set: "net", Field: "netfac_set"}
	}
	if r.NetixlanSet == nil {
		return nil, &MissingFieldError{Set: "net", Field: "netixlan_set"}
	}

	n := &Network{
		ID:         r.ID,
		ASN:        r.ASN,
		Name:       r.Name,
		Facilities: make([]Facility, 0, len(*r.NetfacSet)),
		Exchanges:  make([]Exchange, 0, len(*r.NetixlanSet)),
	}

	for i, f := range *r.NetfacSet {
		fac, err := f.toFacility(i)
		if err != nil {
			return nil, err
		}
		n.Facilities = append(n.Facilities, fac)
	}

	for i, x := range *r.NetixlanSet {
		ix, err := x.toExchange(i)
		if err != nil {
			return nil, err
		}
		n.Exchanges = append(n.Exchanges, ix)
	}

	return n, nil
}

func (f *rawFacility) toFacility(i int) (Facility, error) {
	missing := func(field string) error {
		return &MissingFieldError{Set: "netfac_set", Index: i, Field: field}
	}
	switch {
	case f.FacID == nil:
		return Facility{}, missing("fac_id")
	case f.Name == nil:
		return Facility{}, missing("name")
	case f.City == nil:
		return Facility{}, missing("city")
	case f.Country == nil:
		return Facility{}, missing("country")
	}
	return Facility{
		FacID:   *f.FacID,
		Name:    *f.Name,
		City:    *f.City,
		Country: *f.Country,
	}, nil
}

func (x *rawExchange) toExchange(i int) (Exchange, error) {
	if x.IXLanID == nil {
		return Exchange{}, &MissingFieldError{Set: "netixlan_set", Index: i, Field: "ixlan_id"}
	}
	if x.Name == nil {
		return Exchange{}, &MissingFieldError{Set: "netixlan_set", Index: i, Field: "name"}
	}
	return Exchange{
		IXLanID: *x.IXLanID,
		IXID:    x.IXID,
		Name:    *x.Name,
		Speed:   x.Speed,
		IPAddr4: deref(x.IPAddr4),
		IPAddr6: deref(x.IPAddr6),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
