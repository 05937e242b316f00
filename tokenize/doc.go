// Package tokenize provides token counting and encoding over raw text,
// backed by tiktoken BPE encodings with a character-ratio estimator as
// fallback. It feeds the sequence and counting utilities in the data
// package.
package tokenize
