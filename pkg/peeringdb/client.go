package peeringdb

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ccollicutt/pdbdiff/pkg/printer"
)

const (
	// DefaultBaseURL is the public PeeringDB API root.
	DefaultBaseURL = "https://www.peeringdb.com/api"

	// DefaultUserAgent is sent when no other agent is configured.
	DefaultUserAgent = "pdbdiff"

	// QueryDepth expands netfac_set and netixlan_set into full objects.
	QueryDepth = 2
)

// Client fetches AS records from the registry.
type Client struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds each fetch. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a registry client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client queries.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UserAgent returns the User-Agent header the client sends.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// Ping sends a HEAD request to the API root with the client's headers and
// returns the response status. Any status means the registry answered.
func (c *Client) Ping(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create HTTP HEAD request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "connecting to %s", c.baseURL)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// NetURL returns the query URL for an ASN.
func (c *Client) NetURL(asn int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid registry URL %q", c.baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/net"

	q := url.Values{}
	q.Set("depth", strconv.Itoa(QueryDepth))
	q.Set("asn", strconv.Itoa(asn))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Fetch returns the registry record for asn.
func (c *Client) Fetch(ctx context.Context, asn int) (*Network, error) {
	target, err := c.NetURL(asn)
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create HTTP GET request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	printer.Debugf("GET %s\n", target)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", asLabel(asn))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading registry response for %s", asLabel(asn))
	}
	printer.Debugf("%s: status %d, %d bytes in %s\n", asLabel(asn), resp.StatusCode, len(body), time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Wrapf(&HTTPError{StatusCode: resp.StatusCode, Body: body}, "fetching %s", asLabel(asn))
	}

	n, err := decodeNetwork(body)
	if err != nil {
		return nil, errors.Wrap(err, asLabel(asn))
	}
	if n.ASN == 0 {
		n.ASN = asn
	}
	return n, nil
}

// FetchPair fetches two records in order, first then second.
func (c *Client) FetchPair(ctx context.Context, first, second int) (*Network, *Network, error) {
	a, err := c.Fetch(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := c.Fetch(ctx, second)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
