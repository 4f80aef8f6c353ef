// Package config loads the YAML file describing which provider families are
// enabled and which key entries back each one. It applies defaults, expands
// ${VAR} environment references inside api_key fields, and validates the
// result before it ever reaches pkg/providers.NewPool.
package config
