// Package validator implements the post-dispatch reply validators: a
// tagged variant of Structured, FreeText, and Pattern checks behind one
// Validate(text) entry point, each producing a retry-prompt addendum on
// failure.
package validator
