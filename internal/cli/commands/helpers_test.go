package commands

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
)

// registryFixtures maps an AS number to the /net response body served for it.
var registryFixtures = map[string]string{
	"64500": `{"data": [{"id": 1, "asn": 64500, "name": "Alpha Networks",
		"netfac_set": [
			{"fac_id": 1, "name": "Equinix DC1", "city": "Ashburn", "country": "US"},
			{"fac_id": 2, "name": "Telehouse North", "city": "London", "country": "GB"}
		],
		"netixlan_set": [
			{"ixlan_id": 10, "ix_id": 10, "name": "AMS-IX", "speed": 10000},
			{"ixlan_id": 11, "ix_id": 11, "name": "LINX LON1", "speed": 10000}
		]}], "meta": {}}`,
	"64501": `{"data": [{"id": 2, "asn": 64501, "name": "Beta Transit",
		"netfac_set": [
			{"fac_id": 2, "name": "Telehouse North", "city": "London", "country": "GB"},
			{"fac_id": 3, "name": "CoreSite LA1", "city": "Los Angeles", "country": "US"}
		],
		"netixlan_set": [
			{"ixlan_id": 11, "ix_id": 11, "name": "LINX LON1", "speed": 10000},
			{"ixlan_id": 12, "ix_id": 12, "name": "DE-CIX Frankfurt", "speed": 10000}
		]}], "meta": {}}`,
	"64502": `{"data": [{"id": 3, "asn": 64502, "name": "Gamma Access",
		"netfac_set": [],
		"netixlan_set": []}], "meta": {}}`,
}

// newFakeRegistry serves registryFixtures and answers unknown ASNs with empty data.
func newFakeRegistry(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/net" {
			w.WriteHeader(http.StatusOK)
			return
		}
		body, ok := registryFixtures[r.URL.Query().Get("asn")]
		if !ok {
			body = `{"data": [], "meta": {}}`
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// isolateEnv keeps the user's config and environment out of a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PDBDIFF_CONFIG", "")
	t.Setenv("PDBDIFF_REGISTRY_URL", "")
	t.Setenv("PDBDIFF_OUTPUT", "")
	ExitCode = 0
	t.Cleanup(func() { ExitCode = 0 })
}

func execute(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
