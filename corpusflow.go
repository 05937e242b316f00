// Package corpusflow provides a top-level convenience entry point for
// the most common dataset-preparation operations.
//
// Usage:
//
//	import "github.com/BaSui01/corpusflow"
//
//	windows, err := corpusflow.SliceSequence(tokens, 128, 16)
//	counter := corpusflow.CountTokens(tokens, true, nil)
//
// These are thin wrappers around the data package; use that package
// directly when you need padding options or non-string tokens.
package corpusflow

import (
	"math/rand"

	"github.com/BaSui01/corpusflow/data"
)

// SliceSequence slices tokens into windows of exactly length items,
// with consecutive windows sharing overlap items. The uneven tail is
// dropped; see [data.SliceSequence] for padding.
func SliceSequence[T any](tokens []T, length, overlap int) ([][]T, error) {
	return data.SliceSequence(tokens, length, data.SliceOptions[T]{Overlap: overlap})
}

// CountTokens counts string tokens into counter; see [data.CountTokens].
func CountTokens(tokens []string, toLower bool, counter *data.Counter[string]) *data.Counter[string] {
	return data.CountTokens(tokens, toLower, counter)
}

// TrainValidSplit shuffle-splits items into train and validation
// datasets; see [data.TrainValidSplit].
func TrainValidSplit[T any](items []T, validRatio float64, rng *rand.Rand) (train, valid *data.Dataset[T], err error) {
	return data.TrainValidSplit(items, validRatio, rng)
}
