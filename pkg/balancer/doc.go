// Package balancer selects a provider instance for each logical request,
// enforces per-instance rate limits, drives retries and the circuit
// breaker, and runs the background health-check loop.
package balancer
