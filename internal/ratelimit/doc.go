// Package ratelimit bounds request frequency per client address.
//
// Each route group runs under one of three independent policies (general
// reads, contact submission, checkout). A policy is enforced by a fixed
// window counter, either in process memory or in Redis when the gateway
// runs with more than one instance. Limiter state is best-effort: losing
// it on restart resets the counters and nothing more.
package ratelimit
