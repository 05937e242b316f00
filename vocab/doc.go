// Package vocab retrieves pretrained vocabulary files for hosted
// datasets. Files are cached locally and verified by SHA-1 content
// hash; a cache miss or mismatch triggers a zip download from the
// configured repository, extraction, and re-verification.
//
// The vocabulary serialization format is not interpreted here: Load
// returns the raw file bytes and LoadAs hands them to a caller-supplied
// parse function.
package vocab
