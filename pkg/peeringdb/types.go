// Package peeringdb fetches autonomous system records from the PeeringDB REST API.
package peeringdb

// Network is one AS record from the registry "net" resource.
type Network struct {
	ID   int    `json:"id"`
	ASN  int    `json:"asn"`
	Name string `json:"name"`

	// Facilities is netfac_set in registry order.
	Facilities []Facility `json:"facilities"`

	// Exchanges is netixlan_set in registry order.
	Exchanges []Exchange `json:"exchanges"`
}

// Facility is a network's presence at a colocation facility.
type Facility struct {
	FacID   int    `json:"fac_id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Exchange is a network's connection to an exchange LAN.
type Exchange struct {
	IXLanID int    `json:"ixlan_id"`
	IXID    int    `json:"ix_id,omitempty"`
	Name    string `json:"name"`
	Speed   int    `json:"speed,omitempty"`
	IPAddr4 string `json:"ipaddr4,omitempty"`
	IPAddr6 string `json:"ipaddr6,omitempty"`
}

// DisplayName returns "AS<asn>" followed by the network name when known.
func (n *Network) DisplayName() string {
	if n.Name == "" {
		return asLabel(n.ASN)
	}
	return asLabel(n.ASN) + " (" + n.Name + ")"
}
