package restclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"storefront/pkg/productapi/restclient"
	"storefront/pkg/serrors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(status int, body string) *restclient.Client {
	return restclient.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})}, "https://products.test/api/product")
}

func TestClient_Products_success(t *testing.T) {
	var seen *http.Request
	c := restclient.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		seen = r

		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body: io.NopCloser(strings.NewReader(`[
				{"_id":"b2","name":"Shirt","price":25,"image":"https://img.test/shirt.png"},
				{"_id":"a1","name":"Mug","price":"7.5","image":"https://img.test/mug.png","stock":3}
			]`)),
		}, nil
	})}, "https://products.test/api/product")

	products, err := c.Products(context.Background())
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, seen.Method)
	require.Equal(t, "/api/product", seen.URL.Path)

	require.Len(t, products, 2)
	// order is kept as sent
	require.Equal(t, "b2", products[0].ID)
	require.Equal(t, "Shirt", products[0].Name)
	require.Equal(t, "25", products[0].PriceText())
	require.Equal(t, "https://img.test/shirt.png", products[0].Image)
	require.Equal(t, "a1", products[1].ID)
	require.Equal(t, "7.5", products[1].PriceText())
}

func TestClient_Products_mixedPriceTypes(t *testing.T) {
	products, err := newTestClient(http.StatusOK, `[
		{"_id":"1","name":"Cap","price":10,"image":"https://img.test/cap.png"},
		{"_id":"2","name":"Bag","price":"N/A","image":"https://img.test/bag.png"},
		{"_id":"3","name":"Pin","price":"","image":"https://img.test/pin.png"},
		{"_id":"4","name":"Box","price":null,"image":"https://img.test/box.png"},
		{"_id":"5","name":"Tag","image":"https://img.test/tag.png"}
	]`).Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 5)

	prices := make([]string, 0, len(products))
	for _, p := range products {
		prices = append(prices, p.PriceText())
	}
	require.Equal(t, []string{"10", "N/A", "", "", ""}, prices)
}

func TestClient_Products_empty(t *testing.T) {
	for _, body := range []string{"[]", "null"} {
		products, err := newTestClient(http.StatusOK, body).Products(context.Background())
		require.NoError(t, err)
		require.NotNil(t, products)
		require.Empty(t, products)
	}
}

func TestClient_Products_malformed(t *testing.T) {
	for _, body := range []string{"", "{}", `{"error":"nope"}`, "<html/>"} {
		_, err := newTestClient(http.StatusOK, body).Products(context.Background())
		require.Error(t, err, "body %q", body)
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	}
}

func TestClient_Products_non2xx(t *testing.T) {
	_, err := newTestClient(http.StatusInternalServerError, "db down").Products(context.Background())
	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.Contains(t, err.Error(), "db down")
}

func TestClient_Products_networkError(t *testing.T) {
	boom := errors.New("timeout")
	c := restclient.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		return nil, boom
	})}, "https://products.test/api/product")

	_, err := c.Products(context.Background())
	require.ErrorIs(t, err, boom)
}
