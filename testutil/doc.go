// Package testutil provides shared helpers for corpusflow tests:
// bounded test contexts, SHA-1 digests, and zip fixtures used by the
// vocab loader tests.
package testutil
