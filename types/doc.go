// Package types defines shared types for corpusflow: structured errors
// with unified error codes used across the data, vocab, and tokenize
// packages.
package types
