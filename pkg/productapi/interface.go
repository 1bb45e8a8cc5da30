// Package productapi defines the client used by the listing page to read the
// product catalog from the remote product service.
package productapi

import (
	"context"
	"storefront/pkg/domain"
)

// Client reads the product catalog.
//
//go:generate mockgen -package mockproductapi -source=interface.go -destination=mock/mockproductapi.go *
type Client interface {
	// Products returns the whole catalog in the order the service sent it.
	Products(ctx context.Context) ([]domain.Product, error)
}
