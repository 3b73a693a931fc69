// Package catalog implements the read side of the storefront: listing
// products and fetching a single product from the upstream catalog.
//
// The service depends on the narrow Provider interface so handlers and
// tests can run against stubs; the production implementation is
// internal/square. Products are rebuilt from the upstream response on
// every request; there is no local cache to invalidate.
package catalog
