// Package tokens provides a character-based fallback token count for
// replies whose upstream response omitted usage data. It is never used to
// override a usage figure the provider actually reported.
package tokens
