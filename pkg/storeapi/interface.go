// Package storeapi defines the client used by the store form to talk to the
// remote store service: the subdomain availability check and store creation.
package storeapi

import (
	"context"
	"encoding/json"
	"storefront/pkg/domain"
)

// DomainVerdict is the outcome of a domain availability check.
//
// The remote service answers with a JSON value. Only the literal boolean
// false lets the store be created; every other value (true, objects,
// strings, numbers) stops the workflow. That polarity belongs to the remote
// service and is kept as is.
type DomainVerdict struct {
	FQDN      string // FQDN is the fully-qualified domain that was checked.
	Claimable bool   // Claimable is true only when the service answered exactly false.
	Raw       string // Raw is the trimmed response body, for logging.
}

// CreateRes is the representation returned by a successful store creation.
// Its shape is owned by the remote service, so it is kept undecoded.
type CreateRes struct {
	Body json.RawMessage
}

// Client talks to the remote store service.
//
//go:generate mockgen -package mockstoreapi -source=interface.go -destination=mock/mockstoreapi.go *
type Client interface {
	// CheckDomain asks whether fqdn can be used for a new store.
	CheckDomain(ctx context.Context, fqdn string) (DomainVerdict, error)
	// CreateStore submits a store creation request.
	CreateStore(ctx context.Context, store domain.Store) (CreateRes, error)
}
