package peeringdb

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when the registry has no record for an ASN.
var ErrNotFound = errors.New("AS not found in registry")

// HTTPError is returned for non-2xx registry responses.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (he *HTTPError) Error() string {
	if he.StatusCode == 429 {
		return "registry rate limit exceeded (status 429), try again later"
	}
	return fmt.Sprintf("registry returned status %d", he.StatusCode)
}

// MissingFieldError reports a required field absent from a registry record.
type MissingFieldError struct {
	// Set is the containing list ("netfac_set", "netixlan_set") or "net" for the record itself.
	Set   string
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Set == "net" {
		return fmt.Sprintf("registry record is missing required field %q", e.Field)
	}
	return fmt.Sprintf("%s[%d] is missing required field %q", e.Set, e.Index, e.Field)
}

func asLabel(asn int) string {
	return "AS" + strconv.Itoa(asn)
}
