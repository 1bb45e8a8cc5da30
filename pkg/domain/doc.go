// Package domain holds the storefront entities shared between the remote
// clients, the store form workflow and the page handlers: the store creation
// payload with its enumerations, and the catalog product.
package domain
