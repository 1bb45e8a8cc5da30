// Package restclient provides a storeapi.Client backed by the store
// service's REST endpoints.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"storefront/pkg/domain"
	"storefront/pkg/serrors"
	"storefront/pkg/storeapi"
	"strings"

	"github.com/go-faster/jx"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Endpoints are the absolute URLs of the store service operations.
type Endpoints struct {
	// DomainCheckURL is the prefix the fully-qualified domain is appended to.
	DomainCheckURL string
	// StoreCreateURL receives store creation requests.
	StoreCreateURL string
}

// Client fulfills storeapi.Client over HTTP. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
}

// CheckDomain issues GET <DomainCheckURL>/<fqdn> and interprets the body.
// A literal false is claimable; any other JSON value is not. Network errors,
// non-2xx statuses and bodies that are not a single JSON value are errors.
func (c *Client) CheckDomain(ctx context.Context, fqdn string) (storeapi.DomainVerdict, error) {
	verdict := storeapi.DomainVerdict{FQDN: fqdn}

	endpoint := strings.TrimRight(c.endpoints.DomainCheckURL, "/") + "/" + url.PathEscape(fqdn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return verdict, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	b, status, err := c.do(req)
	if err != nil {
		return verdict, err
	}
	if status < 200 || status >= 300 {
		return verdict, serrors.With(serrors.ErrUnavailable,
			"domain check failed with status %d: %s", status, strings.TrimSpace(string(b)))
	}

	body := bytes.TrimSpace(b)
	verdict.Raw = string(body)
	if !jx.Valid(body) {
		return verdict, serrors.With(serrors.ErrBadRequest, "malformed domain check response: %q", verdict.Raw)
	}

	d := jx.DecodeBytes(body)
	if d.Next() == jx.Bool {
		taken, err := d.Bool()
		if err != nil {
			return verdict, serrors.Wrap(serrors.ErrBadRequest, err, "could not decode domain check response")
		}
		verdict.Claimable = !taken
	}

	return verdict, nil
}

// CreateStore POSTs store as JSON to StoreCreateURL. Any 2xx answer is a
// success; the body is returned as is when it is valid JSON.
func (c *Client) CreateStore(ctx context.Context, store domain.Store) (storeapi.CreateRes, error) {
	bodyBytes, err := json.Marshal(store)
	if err != nil {
		return storeapi.CreateRes{}, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.StoreCreateURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return storeapi.CreateRes{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	b, status, err := c.do(req)
	if err != nil {
		return storeapi.CreateRes{}, err
	}
	if status < 200 || status >= 300 {
		return storeapi.CreateRes{}, serrors.With(serrors.ErrUnavailable,
			"store creation failed with status %d: %s", status, strings.TrimSpace(string(b)))
	}

	// successful
	var res storeapi.CreateRes
	if body := bytes.TrimSpace(b); jx.Valid(body) {
		res.Body = json.RawMessage(body)
	}

	return res, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("could not read response body: %w", err)
	}

	return b, resp.StatusCode, nil
}

// Ensure Client conforms to the storeapi.Client interface at compile time.
var _ storeapi.Client = (*Client)(nil)

// New constructs a Client sending requests through httpClient.
func New(httpClient *http.Client, endpoints Endpoints) *Client {
	return &Client{
		httpClient: httpClient,
		endpoints:  endpoints,
	}
}
