// Package secrets resolves api_key values from outside the YAML config
// file: from the process environment, or from a file that can be watched
// for live rotation without a process restart.
package secrets
