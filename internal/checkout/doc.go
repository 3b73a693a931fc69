// Package checkout implements payment submission: request validation,
// idempotency-key generation, and the upstream payment call.
//
// Validation failures never reach the upstream provider. Every attempt
// gets a fresh idempotency key, so a client that retries a submission
// cannot be double-charged by the upstream.
package checkout
