// Package httputil provides the shared JSON request/response helpers for
// API handlers.
//
// All success responses carry a `success:true` envelope and all errors an
// `{error, timestamp}` envelope; handlers should use these helpers instead
// of writing to http.ResponseWriter directly so the wire format stays
// uniform across endpoints.
package httputil
