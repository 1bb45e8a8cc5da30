// Package catalog implements the product listing page: one fetch of the
// product collection per page load, rendered as a grid of cards.
package catalog

import (
	"context"
	"net/url"
	"storefront/pkg/diag"
	"storefront/pkg/domain"
	"storefront/pkg/logger"
	"storefront/pkg/productapi"

	"go.uber.org/zap"
)

// component is the diag.Event component of this package.
const component = "catalog"

// Card is one tile of the product grid.
type Card struct {
	Name  string
	Price string
	Image string
	Href  string
}

// Page is the state of one listing page load.
type Page struct {
	// Products holds the collection exactly as the product service sent it.
	// It is empty, never nil, when the fetch failed.
	Products []domain.Product
}

// Cards returns one card per product, in collection order.
func (p Page) Cards() []Card {
	cards := make([]Card, 0, len(p.Products))
	for _, product := range p.Products {
		cards = append(cards, Card{
			Name:  product.Name,
			Price: product.PriceText(),
			Image: product.Image,
			Href:  ProductPath(product.ID),
		})
	}

	return cards
}

// ProductPath is the detail page a card links to.
func ProductPath(id string) string {
	return "/products/" + url.PathEscape(id)
}

// Listing loads listing pages. It is safe for concurrent use.
type Listing struct {
	products productapi.Client
	sink     diag.Sink
}

// New constructs a Listing. A nil sink discards diagnostic events.
func New(products productapi.Client, sink diag.Sink) *Listing {
	if sink == nil {
		sink = diag.Discard
	}

	return &Listing{
		products: products,
		sink:     sink,
	}
}

// Load fetches the collection once. A failed fetch is published to the
// diagnostics sink and yields an empty page; the visitor sees no error.
func (l *Listing) Load(ctx context.Context) Page {
	products, err := l.products.Products(ctx)
	if err != nil {
		l.sink.Emit(ctx, diag.Event{
			Component: component,
			Operation: "fetch_products",
			Err:       err,
		})

		return Page{Products: []domain.Product{}}
	}
	if products == nil {
		products = []domain.Product{}
	}

	logger.Debug(ctx, "products loaded", zap.Int("count", len(products)))

	return Page{Products: products}
}
