// Package providers defines the adapter contract and the live provider
// instance state that the load balancer selects and dispatches against.
//
// An Adapter is stateless and shared across every ProviderInstance in its
// family; a ProviderInstance is stateful and owned exclusively by the load
// balancer. Six family adapters live in this package's family_*.go files,
// one per upstream wire shape.
package providers
