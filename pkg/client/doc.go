// Package client is the small stateless surface callers use: Chat,
// Generate, Embed, Batch, and Stats, each delegating to a Load Balancer and
// then, for chat/generate, looping through an optional Validator.
package client
