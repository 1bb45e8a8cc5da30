// Package restclient provides a productapi.Client backed by the product
// service's REST collection endpoint.
package restclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"storefront/pkg/domain"
	"storefront/pkg/productapi"
	"storefront/pkg/serrors"
	"strings"
)

// maxBodyBytes caps how much of the catalog response is read.
const maxBodyBytes = 8 << 20

// Client fulfills productapi.Client over HTTP. It is safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	productsURL string
}

// Products issues GET <productsURL> and decodes a JSON array of products.
// The array is returned as sent: no filtering, sorting or deduplication.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.productsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serrors.With(serrors.ErrUnavailable,
			"product fetch failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	// successful
	var products []domain.Product
	if err := json.Unmarshal(b, &products); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not decode response")
	}
	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

// Ensure Client conforms to the productapi.Client interface at compile time.
var _ productapi.Client = (*Client)(nil)

// New constructs a Client reading the catalog from productsURL.
func New(httpClient *http.Client, productsURL string) *Client {
	return &Client{
		httpClient:  httpClient,
		productsURL: productsURL,
	}
}
